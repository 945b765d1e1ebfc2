package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/model"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

// 更新で変更できないキー
var immutableKeys = []string{"supi", "userId"}

// ProfileStore はUEプロファイルデータへのアクセスを提供する。
// レコードはJSONとして ue:{owner}:{supi} に保存し、
// 作成順を ue_idx:{owner} のSorted Setで管理する。
type ProfileStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewProfileStore は新しいProfileStoreを生成する。
func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client, now: time.Now}
}

// List はオーナーのUEプロファイルを作成順に返す。
func (s *ProfileStore) List(ctx context.Context, owner string) ([]*model.UEProfile, error) {
	idxKey := ProfileIndexKey(owner)
	supis, err := s.client.ZRange(ctx, idxKey, 0, -1).Result()
	if err != nil {
		return nil, valkey.WrapError("ZRANGE", idxKey, err)
	}
	if len(supis) == 0 {
		return []*model.UEProfile{}, nil
	}

	keys := make([]string, len(supis))
	for i, supi := range supis {
		keys[i] = ProfileKey(owner, supi)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, valkey.WrapError("MGET", idxKey, err)
	}

	profiles := make([]*model.UEProfile, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// インデックスだけが残っている
			continue
		}
		p, err := decodeProfile([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keys[i], err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Get はUEプロファイルを取得する。
func (s *ProfileStore) Get(ctx context.Context, owner, supi string) (*model.UEProfile, error) {
	key := ProfileKey(owner, supi)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, valkey.WrapError("GET", key, err)
	}
	return decodeProfile(data)
}

// Create はUEプロファイルをまとめて作成する。
// 1件でもSUPIが重複している場合は何も保存しない。
// createdAtはここで付与する。
func (s *ProfileStore) Create(ctx context.Context, owner string, profiles []*model.UEProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	keys := make([]string, len(profiles))
	seen := make(map[string]bool, len(profiles))
	for i, p := range profiles {
		if p.SUPI == "" {
			return apperr.ErrSUPIRequired
		}
		if seen[p.SUPI] {
			return fmt.Errorf("%w: %s", apperr.ErrProfileExists, p.SUPI)
		}
		seen[p.SUPI] = true
		keys[i] = ProfileKey(owner, p.SUPI)
	}

	now := s.now().UTC()
	createdAt := now.Format(time.RFC3339)
	idxKey := ProfileIndexKey(owner)
	seqKey := ProfileSeqKey(owner)

	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, keys...).Result()
		if err != nil {
			return valkey.WrapError("EXISTS", idxKey, err)
		}
		if n > 0 {
			return apperr.ErrProfileExists
		}

		last, err := tx.IncrBy(ctx, seqKey, int64(len(profiles))).Result()
		if err != nil {
			return valkey.WrapError("INCRBY", seqKey, err)
		}
		first := last - int64(len(profiles)) + 1

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, p := range profiles {
				p.Normalize()
				p.CreatedAt = createdAt
				data, err := json.Marshal(p)
				if err != nil {
					return fmt.Errorf("failed to encode profile: %w", err)
				}
				pipe.Set(ctx, keys[i], data, 0)
				pipe.ZAdd(ctx, idxKey, redis.Z{
					Score:  float64(first + int64(i)),
					Member: p.SUPI,
				})
			}
			return nil
		})
		return err
	}

	return s.watch(ctx, txf, keys...)
}

// Update はtop-levelのキーを既存レコードにマージして保存する。
// supiとuserIdは変更できず、createdAtは元の値を保持する。
func (s *ProfileStore) Update(ctx context.Context, owner, supi string, fields map[string]any) (*model.UEProfile, error) {
	for _, k := range immutableKeys {
		if _, ok := fields[k]; ok {
			return nil, fmt.Errorf("%w: %s", apperr.ErrImmutableKey, k)
		}
	}

	key := ProfileKey(owner, supi)
	var updated *model.UEProfile

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if valkey.IsKeyNotFound(err) {
				return apperr.ErrProfileNotFound
			}
			return valkey.WrapError("GET", key, err)
		}

		var current map[string]any
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		createdAt := current["createdAt"]
		maps.Copy(current, fields)
		current["supi"] = supi
		current["createdAt"] = createdAt

		merged, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrInvalidProfile, err)
		}
		p, err := decodeProfile(merged)
		if err != nil {
			return err
		}
		out, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err == nil {
			updated = p
		}
		return err
	}

	if err := s.watch(ctx, txf, key); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete はUEプロファイルを削除する。
func (s *ProfileStore) Delete(ctx context.Context, owner, supi string) error {
	key := ProfileKey(owner, supi)
	idxKey := ProfileIndexKey(owner)

	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, key)
		pipe.ZRem(ctx, idxKey, supi)
		return nil
	})
	if err != nil {
		return valkey.WrapError("DEL", key, err)
	}
	if del.Val() == 0 {
		return apperr.ErrProfileNotFound
	}
	return nil
}

// watch は楽観ロック付きでtxfを実行する。
func (s *ProfileStore) watch(ctx context.Context, txf func(tx *redis.Tx) error, keys ...string) error {
	err := s.client.Watch(ctx, txf, keys...)
	if errors.Is(err, redis.TxFailedErr) {
		return valkey.WrapError("EXEC", keys[0], err)
	}
	return err
}

func decodeProfile(data []byte) (*model.UEProfile, error) {
	var p model.UEProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidProfile, err)
	}
	p.Normalize()
	return &p, nil
}
