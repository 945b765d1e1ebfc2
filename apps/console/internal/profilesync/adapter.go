// Package profilesync は編集結果の送信と一覧の再読み込みを組み合わせる。
//
// 変更操作が成功した後は必ずReloaderを呼び出す。変更操作が失敗した場合は再読み込みを行わない。
// 再試行は行わない。
package profilesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/audit"
	"github.com/lvdund/ueprofiles/apps/console/internal/editor"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/logging"
)

// ErrReloadFailed は変更操作は成功したが一覧の再読み込みに失敗した場合のエラー
var ErrReloadFailed = errors.New("reload after mutation failed")

// Adapter はUEプロファイルの送信と再読み込みを行う。
type Adapter struct {
	service  ProfileService
	reloader Reloader
	audit    *audit.Logger
	fields   *logging.CommonFields
}

// NewAdapter は新しいAdapterを生成する。auditLoggerはnilでもよい。
func NewAdapter(service ProfileService, reloader Reloader, auditLogger *audit.Logger, masker *logging.Masker) *Adapter {
	return &Adapter{
		service:  service,
		reloader: reloader,
		audit:    auditLogger,
		fields:   logging.NewCommonFields(masker),
	}
}

// Submit はDraftの内容を送信する。
// 新規作成モードでは作成、編集モードでは初期化時のSUPIに対する更新を行う。
func (a *Adapter) Submit(ctx context.Context, sess *api.Session, d editor.Draft) error {
	doc := d.Doc

	if d.Editing {
		supi := d.Identifier
		if err := a.service.UpdateProfile(ctx, sess, supi, doc); err != nil {
			a.logFailure("ue profile update failed", logging.EventProfileUpdate, supi, err)
			return err
		}
		a.audit.LogUpdate(supi)
		slog.Info("ue profile updated", logging.WithEventID(logging.EventProfileUpdate), a.fields.WithSUPI(supi))
		return a.reload(ctx, sess)
	}

	supi := record.Identifier(doc)
	if supi == "" {
		return apperr.ErrSUPIRequired
	}
	if err := a.service.CreateProfile(ctx, sess, doc); err != nil {
		a.logFailure("ue profile create failed", logging.EventProfileCreate, supi, err)
		return err
	}
	a.audit.LogCreate(supi)
	slog.Info("ue profile created", logging.WithEventID(logging.EventProfileCreate), a.fields.WithSUPI(supi))
	return a.reload(ctx, sess)
}

// Delete はUEプロファイルを削除する。
func (a *Adapter) Delete(ctx context.Context, sess *api.Session, supi string) error {
	if err := a.service.DeleteProfile(ctx, sess, supi); err != nil {
		a.logFailure("ue profile delete failed", logging.EventProfileDelete, supi, err)
		return err
	}
	a.audit.LogDelete(supi)
	slog.Info("ue profile deleted", logging.WithEventID(logging.EventProfileDelete), a.fields.WithSUPI(supi))
	return a.reload(ctx, sess)
}

// Generate はサーバー側でn件のUEプロファイルを生成し、生成件数を返す。
func (a *Adapter) Generate(ctx context.Context, sess *api.Session, n int) (int, error) {
	resp, err := a.service.GenerateProfiles(ctx, sess, n)
	if err != nil {
		slog.Warn("ue profile generate failed",
			logging.WithEventID(logging.EventProfileGenerate),
			logging.WithCount(n),
			logging.WithError(err),
		)
		return 0, err
	}

	count := len(resp.Profiles)
	a.audit.LogGenerate(count)
	slog.Info("ue profiles generated", logging.WithEventID(logging.EventProfileGenerate), logging.WithCount(count))
	return count, a.reload(ctx, sess)
}

// Reload は一覧を再読み込みする。
func (a *Adapter) Reload(ctx context.Context, sess *api.Session) error {
	return a.reloader.Reload(ctx, sess)
}

func (a *Adapter) reload(ctx context.Context, sess *api.Session) error {
	if err := a.reloader.Reload(ctx, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return nil
}

func (a *Adapter) logFailure(msg, eventID, supi string, err error) {
	slog.Warn(msg,
		logging.WithEventID(eventID),
		a.fields.WithSUPI(supi),
		logging.WithError(err),
	)
}
