// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はUEプロファイルAPIの設定を保持する。
type Config struct {
	// Valkey設定
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPass string `envconfig:"REDIS_PASS"`

	// サーバー設定
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskSUPI bool   `envconfig:"LOG_MASK_SUPI" default:"true"`
	GinMode     string `envconfig:"GIN_MODE" default:"release"`

	// 認証設定
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// 生成設定
	OperatorConfig string `envconfig:"OPERATOR_CONFIG"`
	MaxGenerate    int    `envconfig:"MAX_GENERATE" default:"1000"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// RedisAddr はValkey接続文字列を返す。
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxGenerate < 1 {
		return fmt.Errorf("MAX_GENERATE must be at least 1")
	}
	return nil
}
