package format

import (
	"testing"
	"time"
)

func TestDateLabel(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name   string
		ts     string
		layout string
		loc    *time.Location
		want   string
		wantOK bool
	}{
		{"rfc3339 start of day", "2024-01-01T00:00:00Z", "", time.UTC, "2024-01-01", true},
		{"rfc3339 end of day", "2024-01-01T23:00:00Z", "", time.UTC, "2024-01-01", true},
		{"rfc3339 nano", "2024-01-01T10:00:00.123456789Z", "", time.UTC, "2024-01-01", true},
		{"shifted by location", "2024-01-01T23:00:00Z", "", tokyo, "2024-01-02", true},
		{"offset timestamp", "2024-03-05T01:00:00+09:00", "", time.UTC, "2024-03-04", true},
		{"date only", "2024-02-29", "", time.UTC, "2024-02-29", true},
		{"date time", "2024-02-29 12:00:00", "", time.UTC, "2024-02-29", true},
		{"custom layout", "2024-01-05T00:00:00Z", "02/01/2006", time.UTC, "05/01/2024", true},
		{"empty", "", "", time.UTC, "", false},
		{"invalid", "not-a-date", "", time.UTC, "", false},
		{"invalid month", "2024-13-01T00:00:00Z", "", time.UTC, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateLabel(tt.ts, tt.layout, tt.loc)
			if ok != tt.wantOK {
				t.Fatalf("DateLabel(%q) ok = %v, want %v", tt.ts, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DateLabel(%q) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

func TestDateLabelNilLocation(t *testing.T) {
	if _, ok := DateLabel("2024-01-01T00:00:00Z", "", nil); !ok {
		t.Error("DateLabel() with nil location should fall back to local time")
	}
}

func TestCreated(t *testing.T) {
	if got := Created(""); got != "-" {
		t.Errorf("Created(\"\") = %q, want -", got)
	}
	if got := Created("garbage"); got != "-" {
		t.Errorf("Created(garbage) = %q, want -", got)
	}

	got := Created("2024-01-15T12:00:00Z")
	if _, err := time.Parse(time.DateTime, got); err != nil {
		t.Errorf("Created() = %q, not in expected format: %v", got, err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"", 5, ""},
		{"日本語テスト", 5, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestKeySummary(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"465b5ce8b199b49faa5f0a2ee238a6bc", "465b****a6bc"},
		{"12345678", "********"},
		{"abc", "***"},
		{"", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := KeySummary(tt.input); got != tt.want {
				t.Errorf("KeySummary(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
