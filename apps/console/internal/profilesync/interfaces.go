package profilesync

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=profilesync

import (
	"context"
	"time"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
)

// ProfileService はUEプロファイルの変更操作を定義する。
type ProfileService interface {
	CreateProfile(ctx context.Context, sess *api.Session, doc record.Document) error
	UpdateProfile(ctx context.Context, sess *api.Session, supi string, doc record.Document) error
	DeleteProfile(ctx context.Context, sess *api.Session, supi string) error
	GenerateProfiles(ctx context.Context, sess *api.Session, n int) (*api.GenerateResponse, error)
}

// Reloader は変更後の一覧再取得を定義する。
type Reloader interface {
	Reload(ctx context.Context, sess *api.Session) error
}

// Authenticator はアカウントとトークンの操作を定義する。
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.Session, error)
	Logout(ctx context.Context, sess *api.Session) error
	Register(ctx context.Context, username, password string) error
}

// CredentialStore はログイン済み資格情報の保存先を定義する。
type CredentialStore interface {
	Save(ctx context.Context, name string, sess *api.Session, ttl time.Duration) error
	Load(ctx context.Context, name string) (*api.Session, error)
	Delete(ctx context.Context, name string) error
}
