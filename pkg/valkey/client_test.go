package valkey

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lvdund/ueprofiles/pkg/apperr"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewClient(ctx, ServiceOptions(mr.Addr(), ""))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "test-key", "test-value", 0).Err(); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	got, err := mr.Get("test-key")
	if err != nil {
		t.Fatalf("mr.Get() error = %v", err)
	}
	if got != "test-value" {
		t.Errorf("stored value = %q, want %q", got, "test-value")
	}
}

func TestNewClientPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	if _, err := NewClient(context.Background(), ConsoleOptions(mr.Addr(), "wrong")); err == nil {
		t.Error("NewClient() with wrong password should fail")
	}

	client, err := NewClient(context.Background(), ConsoleOptions(mr.Addr(), "secret"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.Close()
}

func TestNewClientNilOptions(t *testing.T) {
	if _, err := NewClient(context.Background(), nil); err == nil {
		t.Error("NewClient(nil) should fail")
	}
}

func TestNewClientConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts := ServiceOptions(addr, "")
	opts.DialTimeout = 100 * time.Millisecond

	_, err := NewClient(context.Background(), opts)
	if !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Errorf("NewClient() error = %v, want ErrValkeyConnection", err)
	}
}

func TestNewClientCanceledContext(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ctx, ServiceOptions(mr.Addr(), ""))
	if !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Errorf("NewClient() error = %v, want ErrValkeyConnection", err)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"regular error", errors.New("some error"), false},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsKeyNotFound(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewClient(ctx, ServiceOptions(mr.Addr(), ""))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	_, err = client.Get(ctx, "non-existent-key").Result()
	if !IsKeyNotFound(err) {
		t.Errorf("IsKeyNotFound(%v) = false, want true", err)
	}
	if !IsKeyNotFound(redis.Nil) {
		t.Error("IsKeyNotFound(redis.Nil) = false, want true")
	}
	if IsKeyNotFound(errors.New("other error")) || IsKeyNotFound(nil) {
		t.Error("IsKeyNotFound should be false for other errors and nil")
	}
}

func TestWrapError(t *testing.T) {
	if err := WrapError("GET", "k", nil); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"timeout", context.DeadlineExceeded, apperr.ErrValkeyConnection},
		{"command", errors.New("WRONGTYPE"), apperr.ErrValkeyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError("HSET", "user:alice", tt.err)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.sentinel)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("wrapped error should keep cause %v", tt.err)
			}
			var ve *apperr.ValkeyError
			if !errors.As(err, &ve) {
				t.Fatal("errors.As(*ValkeyError) = false")
			}
			if ve.Operation != "HSET" || ve.Key != "user:alice" {
				t.Errorf("ValkeyError = %+v", ve)
			}
		})
	}
}
