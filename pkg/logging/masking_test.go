package logging

import "testing"

func TestMaskSUPI(t *testing.T) {
	tests := []struct {
		name    string
		supi    string
		enabled bool
		want    string
	}{
		{
			name:    "IMSI-type SUPI with masking enabled",
			supi:    "imsi-208930000000001",
			enabled: true,
			want:    "imsi-20893*********1",
		},
		{
			name:    "IMSI-type SUPI with masking disabled",
			supi:    "imsi-208930000000001",
			enabled: false,
			want:    "imsi-208930000000001",
		},
		{
			name:    "Bare digits",
			supi:    "208930000000001",
			enabled: true,
			want:    "20893*********1",
		},
		{
			name:    "Short value",
			supi:    "imsi-1",
			enabled: true,
			want:    "imsi-1",
		},
		{
			name:    "Empty SUPI",
			supi:    "",
			enabled: true,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskSUPI(tt.supi, tt.enabled)
			if got != tt.want {
				t.Errorf("MaskSUPI(%q, %v) = %q, want %q", tt.supi, tt.enabled, got, tt.want)
			}
		})
	}
}

func TestMaskPartial(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		keepPrefix int
		keepSuffix int
		maskChar   rune
		want       string
	}{
		{"Standard masking", "1234567890", 3, 2, '*', "123*****90"},
		{"Different mask character", "abcdefghij", 2, 3, 'X', "abXXXXXhij"},
		{"String too short", "abc", 2, 2, '*', "abc"},
		{"Exact length", "abcd", 2, 2, '*', "abcd"},
		{"One character to mask", "abcde", 2, 2, '*', "ab*de"},
		{"Empty string", "", 2, 2, '*', ""},
		{"Unicode string", "あいうえおかきく", 2, 2, '＊', "あい＊＊＊＊きく"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskPartial(tt.s, tt.keepPrefix, tt.keepSuffix, tt.maskChar)
			if got != tt.want {
				t.Errorf("MaskPartial(%q, %d, %d, %q) = %q, want %q",
					tt.s, tt.keepPrefix, tt.keepSuffix, string(tt.maskChar), got, tt.want)
			}
		})
	}
}

func TestMasker(t *testing.T) {
	t.Run("Masking enabled", func(t *testing.T) {
		m := NewMasker(true)
		if got := m.SUPI("imsi-208930000000001"); got != "imsi-20893*********1" {
			t.Errorf("SUPI() = %q, want %q", got, "imsi-20893*********1")
		}
	})

	t.Run("Masking disabled", func(t *testing.T) {
		m := NewMasker(false)
		if got := m.SUPI("imsi-208930000000001"); got != "imsi-208930000000001" {
			t.Errorf("SUPI() = %q, want %q", got, "imsi-208930000000001")
		}
	})
}
