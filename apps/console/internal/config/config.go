// Package config は管理コンソールの設定管理を提供する。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config は管理コンソールの設定を表す。
type Config struct {
	// UEプロファイルAPI設定
	ProfileAPIURL string `envconfig:"PROFILE_API_URL" default:"http://localhost:8080"`

	// 資格情報の保存先（空の場合はメモリ上に保持）
	ValkeyAddr     string `envconfig:"VALKEY_ADDR"`
	ValkeyPassword string `envconfig:"VALKEY_PASSWORD"`
	Profile        string `envconfig:"CONSOLE_PROFILE" default:"default"`

	// ログ設定
	LogLevel     string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFile      string `envconfig:"LOG_FILE" default:"console.log"`
	LogMaskSUPI  bool   `envconfig:"LOG_MASK_SUPI" default:"true"`
	AuditLogFile string `envconfig:"AUDIT_LOG_FILE"`

	// 一覧のグループ化設定
	DateLayout string `envconfig:"DATE_LAYOUT" default:"2006-01-02"`
	Timezone   string `envconfig:"TIMEZONE"`
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

// UseValkey はValkeyに資格情報を保存するかどうかを返す。
func (c *Config) UseValkey() bool {
	return c.ValkeyAddr != ""
}

// Location はグループ化に使うタイムゾーンを返す。
// TIMEZONE未設定の場合はローカルタイムゾーン。
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !strings.HasPrefix(c.ProfileAPIURL, "http://") && !strings.HasPrefix(c.ProfileAPIURL, "https://") {
		return fmt.Errorf("PROFILE_API_URL must start with http:// or https://")
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return fmt.Errorf("DATE_LAYOUT must not be empty")
	}
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("CONSOLE_PROFILE must not be empty")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE is invalid: %w", err)
		}
	}
	return nil
}
