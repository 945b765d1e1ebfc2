package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/model"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

// トークンHashのフィールド名
const (
	fieldUsername = "username"
	fieldIssuedAt = "issued_at"
)

// TokenStore はBearerトークンへのアクセスを提供する。
// トークンはTTL付きで保存し、失効はキー削除で行う。
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenStore は新しいTokenStoreを生成する。
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl, now: time.Now}
}

// Issue はユーザーに新しいトークンを発行する。
func (s *TokenStore) Issue(ctx context.Context, username string) (*model.AuthToken, error) {
	token := model.NewAuthToken(uuid.NewString(), username, s.now().Unix())
	key := TokenKey(token.Token)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldUsername, token.Username,
			fieldIssuedAt, token.IssuedAt,
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return nil, valkey.WrapError("HSET", key, err)
	}
	return token, nil
}

// Resolve はトークンを検証し、発行先を返す。
func (s *TokenStore) Resolve(ctx context.Context, token string) (*model.AuthToken, error) {
	if token == "" {
		return nil, apperr.ErrTokenNotFound
	}
	key := TokenKey(token)
	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.WrapError("HGETALL", key, err)
	}
	username, ok := result[fieldUsername]
	if !ok {
		return nil, apperr.ErrTokenNotFound
	}
	issuedAt, _ := strconv.ParseInt(result[fieldIssuedAt], 10, 64)
	return model.NewAuthToken(token, username, issuedAt), nil
}

// Revoke はトークンを失効させる。
// 既に存在しないトークンはapperr.ErrTokenNotFoundを返す。
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	key := TokenKey(token)
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return valkey.WrapError("DEL", key, err)
	}
	if n == 0 {
		return apperr.ErrTokenNotFound
	}
	return nil
}
