// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// supiPrefix はIMSI型SUPIのプレフィックス。
const supiPrefix = "imsi-"

// MaskSUPI はSUPIをマスキングする。
// "imsi-" + MCC/MNC（先頭10文字）と末尾1桁を残す。
// 例: imsi-208930000000001 → imsi-20893*********1
// プレフィックスがない場合はIMSI同様に先頭5桁と末尾1桁を残す。
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskSUPI(supi string, enabled bool) string {
	if !enabled {
		return supi
	}
	if strings.HasPrefix(supi, supiPrefix) {
		return MaskPartial(supi, len(supiPrefix)+5, 1, '*')
	}
	return MaskPartial(supi, 5, 1, '*')
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	copy(result, runes[:keepPrefix])
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	copy(result[length-keepSuffix:], runes[length-keepSuffix:])

	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// SUPI はSUPIをマスキングする。
func (m *Masker) SUPI(supi string) string {
	return MaskSUPI(supi, m.enabled)
}
