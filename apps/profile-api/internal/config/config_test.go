package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("REDIS_HOST", "valkey")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASS", "secret")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_MASK_SUPI", "false")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("OPERATOR_CONFIG", "/etc/ueprofile/operator.yaml")
	t.Setenv("MAX_GENERATE", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.RedisAddr() != "valkey:6380" {
		t.Errorf("RedisAddr() = %q, want valkey:6380", cfg.RedisAddr())
	}
	if cfg.RedisPass != "secret" {
		t.Errorf("RedisPass = %q", cfg.RedisPass)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogMaskSUPI {
		t.Error("LogMaskSUPI = true, want false")
	}
	if cfg.GinMode != "debug" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.OperatorConfig != "/etc/ueprofile/operator.yaml" {
		t.Errorf("OperatorConfig = %q", cfg.OperatorConfig)
	}
	if cfg.MaxGenerate != 50 {
		t.Errorf("MaxGenerate = %d, want 50", cfg.MaxGenerate)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.RedisAddr() != "localhost:6379" {
		t.Errorf("RedisAddr() = %q", cfg.RedisAddr())
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if !cfg.LogMaskSUPI {
		t.Error("LogMaskSUPI = false, want true")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.MaxGenerate != 1000 {
		t.Errorf("MaxGenerate = %d, want 1000", cfg.MaxGenerate)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero token ttl", "TOKEN_TTL", "0s"},
		{"bad token ttl", "TOKEN_TTL", "forever"},
		{"zero max generate", "MAX_GENERATE", "0"},
		{"bad max generate", "MAX_GENERATE", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}
