// Package console は管理コンソールの実行時構成を組み立てる。
// TUIとCLIはどちらもRuntimeを経由してサービスにアクセスする。
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/audit"
	"github.com/lvdund/ueprofiles/apps/console/internal/catalog"
	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/profilesync"
	"github.com/lvdund/ueprofiles/apps/console/internal/store"
	"github.com/lvdund/ueprofiles/pkg/logging"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

// AppName はログのapp属性
const AppName = "ueconsole"

// Runtime は管理コンソールの依存関係をまとめて保持する。
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	Masker   *logging.Masker
	Audit    *audit.Logger
	Client   *api.Client
	Catalog  *catalog.Catalog
	Adapter  *profilesync.Adapter
	Sessions *profilesync.Sessions

	redisClient *redis.Client
	closers     []io.Closer
}

// New は設定からRuntimeを組み立てる。
// 資格情報の保存先はConnectCredentialsまたはUseMemoryCredentialsで別途初期化する。
func New(cfg *config.Config) (*Runtime, error) {
	r := &Runtime{Config: cfg}

	// 1. ログ出力先（TUIが端末を占有するためファイルに出力する）
	logFile, err := r.open(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	r.Logger = logging.NewJSONLogger(logFile, cfg.LogLevel, AppName)
	slog.SetDefault(r.Logger)

	// 2. 監査ログ
	auditWriter := logFile
	if cfg.AuditLogFile != "" {
		if auditWriter, err = r.open(cfg.AuditLogFile); err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	r.Masker = logging.NewMasker(cfg.LogMaskSUPI)
	r.Audit = audit.NewLoggerWithWriter(auditWriter, "")
	r.Audit.SetMasker(r.Masker)

	// 3. UEプロファイルAPIクライアント
	r.Client = api.NewClient(cfg)

	// 4. 一覧ビューと同期アダプタ
	r.Catalog = catalog.New(r.Client,
		catalog.WithDateLayout(cfg.DateLayout),
		catalog.WithLocation(cfg.Location()),
	)
	r.Adapter = profilesync.NewAdapter(r.Client, r.Catalog, r.Audit, r.Masker)

	slog.Info("console runtime initialized",
		"profile_api_url", cfg.ProfileAPIURL,
		"credential_store", r.credentialStoreName(),
	)
	return r, nil
}

// ConnectCredentials は資格情報の保存先を初期化する。
// VALKEY_ADDR未設定の場合はメモリ上に保持する。
func (r *Runtime) ConnectCredentials(ctx context.Context) error {
	if !r.Config.UseValkey() {
		r.UseMemoryCredentials()
		return nil
	}

	opts := valkey.ConsoleOptions(r.Config.ValkeyAddr, r.Config.ValkeyPassword)
	client, err := valkey.NewClient(ctx, opts)
	if err != nil {
		slog.Error("credential store connection failed",
			"addr", r.Config.ValkeyAddr,
			logging.WithError(err),
		)
		return fmt.Errorf("failed to connect to %s: %w", r.Config.ValkeyAddr, err)
	}

	if r.redisClient != nil {
		_ = r.redisClient.Close()
	}
	r.redisClient = client
	r.useCredentials(store.NewValkeyCredentialStore(client))
	return nil
}

// UseMemoryCredentials は資格情報をプロセス内のメモリに保持する構成にする。
func (r *Runtime) UseMemoryCredentials() {
	r.useCredentials(store.NewMemoryCredentialStore())
}

// PersistentCredentials は資格情報がプロセス終了後も残るかどうかを返す。
func (r *Runtime) PersistentCredentials() bool {
	return r.redisClient != nil
}

func (r *Runtime) useCredentials(cs profilesync.CredentialStore) {
	r.Sessions = profilesync.NewSessions(r.Client, cs, r.Config.Profile, config.CredentialTTL, r.Audit)
}

// OperationContext は1操作分のタイムアウト付きコンテキストを返す。
func (r *Runtime) OperationContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, config.OperationTimeout)
}

// Close は保持しているリソースを解放する。
func (r *Runtime) Close() error {
	var errs []error
	if r.redisClient != nil {
		errs = append(errs, r.redisClient.Close())
		r.redisClient = nil
	}
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	r.closers = nil
	return errors.Join(errs...)
}

func (r *Runtime) open(path string) (io.Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r.closers = append(r.closers, f)
	return f, nil
}

func (r *Runtime) credentialStoreName() string {
	if r.Config.UseValkey() {
		return "valkey"
	}
	return "memory"
}
