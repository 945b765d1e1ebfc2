package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/model"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

// ユーザーHashのフィールド名
const (
	fieldPasswordHash = "password_hash"
	fieldCreatedAt    = "created_at"
)

// UserStore はアカウントデータへのアクセスを提供する。
type UserStore struct {
	client *redis.Client
	cost   int
	now    func() time.Time
}

// NewUserStore は新しいUserStoreを生成する。
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client, cost: bcrypt.DefaultCost, now: time.Now}
}

// Register はアカウントを作成する。
// 同名のアカウントが存在する場合はapperr.ErrUserExistsを返す。
func (s *UserStore) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	key := UserKey(username)
	ok, err := s.client.HSetNX(ctx, key, fieldPasswordHash, user.PasswordHash).Result()
	if err != nil {
		return nil, valkey.WrapError("HSETNX", key, err)
	}
	if !ok {
		return nil, apperr.ErrUserExists
	}
	if err := s.client.HSet(ctx, key, fieldCreatedAt, user.CreatedAt).Err(); err != nil {
		return nil, valkey.WrapError("HSET", key, err)
	}
	return user, nil
}

// Get はアカウントを取得する。
func (s *UserStore) Get(ctx context.Context, username string) (*model.User, error) {
	key := UserKey(username)
	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.WrapError("HGETALL", key, err)
	}
	hash, ok := result[fieldPasswordHash]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	return &model.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    result[fieldCreatedAt],
	}, nil
}

// Authenticate はユーザー名とパスワードを検証する。
// アカウントが存在しない場合もapperr.ErrInvalidCredentialsを返す。
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}
