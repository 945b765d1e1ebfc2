package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

// ErrCredentialNotFound は保存済みの資格情報がない場合のエラー
var ErrCredentialNotFound = errors.New("credential not found")

// 資格情報Hashのフィールド名
const (
	fieldUsername = "username"
	fieldToken    = "token"
	fieldSavedAt  = "saved_at"
)

// ValkeyCredentialStore は資格情報をValkeyのHashとして保存する。
type ValkeyCredentialStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewValkeyCredentialStore は新しいValkeyCredentialStoreを生成する。
func NewValkeyCredentialStore(client *redis.Client) *ValkeyCredentialStore {
	return &ValkeyCredentialStore{client: client, now: time.Now}
}

// Save は資格情報を保存する。ttlが0以下の場合は期限を設定しない。
func (s *ValkeyCredentialStore) Save(ctx context.Context, name string, sess *api.Session, ttl time.Duration) error {
	if !sess.Valid() {
		return api.ErrNotAuthenticated
	}
	key := CredentialKey(name)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		fieldUsername: sess.Username,
		fieldToken:    sess.Token,
		fieldSavedAt:  strconv.FormatInt(s.now().Unix(), 10),
	})
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.WrapError("HSET", key, err)
	}
	return nil
}

// Load は資格情報を読み込む。
func (s *ValkeyCredentialStore) Load(ctx context.Context, name string) (*api.Session, error) {
	key := CredentialKey(name)
	m, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.WrapError("HGETALL", key, err)
	}
	if len(m) == 0 || m[fieldToken] == "" {
		return nil, ErrCredentialNotFound
	}
	return &api.Session{Username: m[fieldUsername], Token: m[fieldToken]}, nil
}

// Delete は資格情報を削除する。存在しない場合もエラーにしない。
func (s *ValkeyCredentialStore) Delete(ctx context.Context, name string) error {
	key := CredentialKey(name)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return valkey.WrapError("DEL", key, err)
	}
	return nil
}

// SavedAt は資格情報の保存時刻を返す。
func (s *ValkeyCredentialStore) SavedAt(ctx context.Context, name string) (time.Time, error) {
	key := CredentialKey(name)
	v, err := s.client.HGet(ctx, key, fieldSavedAt).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, ErrCredentialNotFound
	}
	if err != nil {
		return time.Time{}, valkey.WrapError("HGET", key, err)
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, valkey.WrapError("HGET", key, err)
	}
	return time.Unix(sec, 0), nil
}

type memoryEntry struct {
	sess      api.Session
	expiresAt time.Time
}

// MemoryCredentialStore はプロセス内に資格情報を保持する。
// Valkeyを使わない構成で使う。
type MemoryCredentialStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCredentialStore は新しいMemoryCredentialStoreを生成する。
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{entries: map[string]memoryEntry{}, now: time.Now}
}

// Save は資格情報を保存する。
func (s *MemoryCredentialStore) Save(_ context.Context, name string, sess *api.Session, ttl time.Duration) error {
	if !sess.Valid() {
		return api.ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{sess: *sess}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[name] = e
	return nil
}

// Load は資格情報を読み込む。期限切れのものは削除してErrCredentialNotFoundを返す。
func (s *MemoryCredentialStore) Load(_ context.Context, name string) (*api.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, name)
		return nil, ErrCredentialNotFound
	}
	sess := e.sess
	return &sess, nil
}

// Delete は資格情報を削除する。
func (s *MemoryCredentialStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
	return nil
}
