package model

import "testing"

func TestNewAuthToken(t *testing.T) {
	tok := NewAuthToken("3f0c9a6e-0000-4000-8000-000000000001", "alice", 1700000000)

	if tok.Token != "3f0c9a6e-0000-4000-8000-000000000001" {
		t.Errorf("Token = %q", tok.Token)
	}
	if tok.Username != "alice" {
		t.Errorf("Username = %q, want %q", tok.Username, "alice")
	}
	if tok.IssuedAt != 1700000000 {
		t.Errorf("IssuedAt = %d, want %d", tok.IssuedAt, 1700000000)
	}
}
