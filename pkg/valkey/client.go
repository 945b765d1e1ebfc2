package valkey

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// NewClient はoptsのクライアントを生成し、PINGで接続を確認する。
// PINGはctxとDialTimeoutの短い方で打ち切られる。
func NewClient(ctx context.Context, opts *Options) (*redis.Client, error) {
	if opts == nil {
		return nil, errors.New("valkey: options are required")
	}

	client := redis.NewClient(opts.redisOptions())

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, WrapError("PING", "", err)
	}
	return client, nil
}

// IsKeyNotFound はキーが見つからないエラーかどうかを判定する。
func IsKeyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// WrapError はValkey操作のエラーをapperr.ValkeyErrorに変換する。
// 接続系はErrValkeyConnection、それ以外はErrValkeyCommandで検出できる。
func WrapError(operation, key string, err error) error {
	if err == nil {
		return nil
	}
	sentinel := apperr.ErrValkeyCommand
	if isConnectionError(err) {
		sentinel = apperr.ErrValkeyConnection
	}
	return apperr.NewValkeyError(operation, key, fmt.Errorf("%w: %w", sentinel, err))
}

// isConnectionError はダイヤル失敗、タイムアウト、コンテキスト終了を接続エラーとみなす。
func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
