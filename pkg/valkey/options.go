// Package valkey はprofile-apiと管理コンソールが共有するValkey接続を提供する。
package valkey

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Options はValkeyクライアントの接続オプション。
// 読み取りと書き込みのタイムアウトは共通のIOTimeoutを使う。
type Options struct {
	Addr         string
	Password     string
	DialTimeout  time.Duration
	IOTimeout    time.Duration
	PoolSize     int
	MinIdleConns int
}

// ServiceOptions はprofile-api向けのOptionsを返す。
// 全リクエストがValkeyを経由するため、接続3秒、読み書き2秒、プール10/最小アイドル2。
func ServiceOptions(addr, password string) *Options {
	return &Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  3 * time.Second,
		IOTimeout:    2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// ConsoleOptions は管理コンソールの資格情報ストア向けのOptionsを返す。
// 接続5秒、読み書き5秒、プール5/最小アイドル1。
func ConsoleOptions(addr, password string) *Options {
	return &Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		IOTimeout:    5 * time.Second,
		PoolSize:     5,
		MinIdleConns: 1,
	}
}

func (o *Options) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.IOTimeout,
		WriteTimeout: o.IOTimeout,
		PoolSize:     o.PoolSize,
		MinIdleConns: o.MinIdleConns,
	}
}
