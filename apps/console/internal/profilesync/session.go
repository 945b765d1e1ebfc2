package profilesync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/audit"
	"github.com/lvdund/ueprofiles/pkg/logging"
)

// Sessions はログイン状態を管理する。
// 資格情報はCredentialStoreのslot名で保存され、呼び出し側へは*api.Sessionとして明示的に渡す。
type Sessions struct {
	auth  Authenticator
	store CredentialStore
	slot  string
	ttl   time.Duration
	audit *audit.Logger
}

// NewSessions は新しいSessionsを生成する。
func NewSessions(auth Authenticator, store CredentialStore, slot string, ttl time.Duration, auditLogger *audit.Logger) *Sessions {
	return &Sessions{
		auth:  auth,
		store: store,
		slot:  slot,
		ttl:   ttl,
		audit: auditLogger,
	}
}

// Login はログインして資格情報を保存する。
func (s *Sessions) Login(ctx context.Context, username, password string) (*api.Session, error) {
	sess, err := s.auth.Login(ctx, username, password)
	if err != nil {
		slog.Warn("login failed",
			logging.WithEventID(logging.EventAuthLogin),
			logging.WithUsername(username),
			logging.WithError(err),
		)
		return nil, err
	}
	if err := s.store.Save(ctx, s.slot, sess, s.ttl); err != nil {
		return nil, err
	}

	s.audit.SetAdminUser(sess.Username)
	s.audit.LogAccount(audit.OpLogin, sess.Username)
	slog.Info("logged in", logging.WithEventID(logging.EventAuthLogin), logging.WithUsername(sess.Username))
	return sess, nil
}

// Resume は保存済みの資格情報を返す。
func (s *Sessions) Resume(ctx context.Context) (*api.Session, error) {
	sess, err := s.store.Load(ctx, s.slot)
	if err != nil {
		return nil, err
	}
	s.audit.SetAdminUser(sess.Username)
	return sess, nil
}

// Logout はトークンを失効させ、保存済みの資格情報を削除する。
// サービス側の失効に失敗しても資格情報は削除し、失効のエラーを返す。
func (s *Sessions) Logout(ctx context.Context, sess *api.Session) error {
	logoutErr := s.auth.Logout(ctx, sess)
	if logoutErr != nil {
		slog.Warn("logout request failed",
			logging.WithEventID(logging.EventAuthLogout),
			logging.WithError(logoutErr),
		)
	}
	deleteErr := s.store.Delete(ctx, s.slot)

	if sess != nil {
		s.audit.LogAccount(audit.OpLogout, sess.Username)
		slog.Info("logged out", logging.WithEventID(logging.EventAuthLogout), logging.WithUsername(sess.Username))
	}
	s.audit.SetAdminUser("")
	return errors.Join(logoutErr, deleteErr)
}

// Register は新しいアカウントを作成する。
func (s *Sessions) Register(ctx context.Context, username, password string) error {
	if err := s.auth.Register(ctx, username, password); err != nil {
		slog.Warn("register failed",
			logging.WithEventID(logging.EventAuthRegister),
			logging.WithUsername(username),
			logging.WithError(err),
		)
		return err
	}
	s.audit.LogAccount(audit.OpRegister, username)
	slog.Info("account registered", logging.WithEventID(logging.EventAuthRegister), logging.WithUsername(username))
	return nil
}
