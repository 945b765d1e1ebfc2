package format

import (
	"strings"
	"unicode/utf8"
)

// Truncate は文字列を指定した長さに切り詰める。
// 切り詰めた場合は末尾に "..." を付加する。
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// KeySummary は鍵値の先頭と末尾4文字のみを表示し、間を伏せる。
// 例: "465b5ce8b199b49faa5f0a2ee238a6bc" -> "465b****a6bc"
func KeySummary(key string) string {
	if key == "" {
		return "-"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "****" + key[len(key)-4:]
}
