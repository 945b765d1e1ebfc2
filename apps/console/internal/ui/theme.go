package ui

import "github.com/gdamore/tcell/v2"

// 色定義
var (
	ColorPrimary = tcell.ColorBlue
	ColorSuccess = tcell.ColorGreen
	ColorWarning = tcell.ColorYellow
	ColorError   = tcell.ColorRed
	ColorInfo    = tcell.ColorTeal

	ColorText      = tcell.ColorWhite
	ColorTextMuted = tcell.ColorGray
	ColorBorder    = tcell.ColorWhite

	// ColorHeader は一覧のカラム見出し
	ColorHeader = tcell.ColorYellow
	// ColorGroup は作成日グループの見出し
	ColorGroup = tcell.ColorTeal
	// ColorUnknownGroup は作成日不明グループの見出し
	ColorUnknownGroup = tcell.ColorOrange
)

// インジケーター
const (
	IndicatorGroup = '▼'
	IndicatorItem  = '•'
)

// StyleBold は太字スタイルを適用した文字列を返す。
func StyleBold(text string) string {
	return "[::b]" + text + "[::-]"
}
