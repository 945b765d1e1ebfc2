package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// キーバインド定義
var (
	// Navigation keys
	KeyUp       = tcell.KeyUp
	KeyDown     = tcell.KeyDown
	KeyPageUp   = tcell.KeyPgUp
	KeyPageDown = tcell.KeyPgDn
	KeyTab      = tcell.KeyTab
	KeyBacktab  = tcell.KeyBacktab
	KeyEnter    = tcell.KeyEnter
	KeyEscape   = tcell.KeyEsc

	// Action keys
	KeyCreate = tcell.KeyF2
	KeyEdit   = tcell.KeyF3
	KeyDelete = tcell.KeyF4
	KeyReload = tcell.KeyF5
	KeyHelp   = tcell.KeyF1
	KeyQuit   = tcell.KeyCtrlQ
	KeySave   = tcell.KeyCtrlS

	// KeyNextPane はフォームと配列セクションの間でフォーカスを移す
	KeyNextPane = tcell.KeyF6
)

// Rune keys
const (
	RuneCreate   = 'n'
	RuneEdit     = 'e'
	RuneDelete   = 'd'
	RuneReload   = 'r'
	RuneGenerate = 'g'
	RuneSearch   = '/'
	RuneAdd      = 'a'
)

// KeyBinding はキーバインドの情報を表す。
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
}

// Label はキーの表示名を返す。
func (b KeyBinding) Label() string {
	if b.Key != 0 {
		return keyToString(b.Key)
	}
	return string(b.Rune)
}

// GetGlobalKeyBindings はグローバルキーバインドのリストを返す。
func GetGlobalKeyBindings() []KeyBinding {
	return []KeyBinding{
		{KeyHelp, 0, "Help"},
		{KeyQuit, 0, "Exit"},
		{KeyEscape, 0, "Back"},
	}
}

// GetListKeyBindings はプロファイル一覧のキーバインドのリストを返す。
func GetListKeyBindings() []KeyBinding {
	return []KeyBinding{
		{KeyUp, 0, "Move up"},
		{KeyDown, 0, "Move down"},
		{KeyPageUp, 0, "Previous page"},
		{KeyPageDown, 0, "Next page"},
		{KeyCreate, 0, "Create"},
		{0, RuneCreate, "Create"},
		{KeyEdit, 0, "Edit"},
		{0, RuneEdit, "Edit"},
		{KeyDelete, 0, "Delete"},
		{0, RuneDelete, "Delete"},
		{KeyReload, 0, "Reload"},
		{0, RuneReload, "Reload"},
		{0, RuneGenerate, "Generate"},
		{0, RuneSearch, "Search SUPI"},
		{KeyEscape, 0, "Clear search / Back"},
	}
}

// GetFormKeyBindings はフォーム画面のキーバインドのリストを返す。
func GetFormKeyBindings() []KeyBinding {
	return []KeyBinding{
		{KeyTab, 0, "Next field"},
		{KeyBacktab, 0, "Previous field"},
		{KeySave, 0, "Save"},
		{KeyNextPane, 0, "Next pane"},
		{KeyEscape, 0, "Cancel"},
	}
}

// GetSectionKeyBindings は配列セクションのキーバインドのリストを返す。
func GetSectionKeyBindings() []KeyBinding {
	return []KeyBinding{
		{0, RuneAdd, "Add item"},
		{KeyEnter, 0, "Edit item"},
		{0, RuneDelete, "Remove item"},
	}
}

// FormatKeyBindingHint はキーバインドのヒント文字列を生成する。
func FormatKeyBindingHint(bindings []KeyBinding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, b.Label()+": "+b.Description)
	}
	return strings.Join(hints, " | ")
}

// keyToString はキーコードを文字列に変換する。
func keyToString(key tcell.Key) string {
	switch key {
	case tcell.KeyF1:
		return "F1"
	case tcell.KeyF2:
		return "F2"
	case tcell.KeyF3:
		return "F3"
	case tcell.KeyF4:
		return "F4"
	case tcell.KeyF5:
		return "F5"
	case tcell.KeyF6:
		return "F6"
	case tcell.KeyUp:
		return "↑"
	case tcell.KeyDown:
		return "↓"
	case tcell.KeyPgUp:
		return "PgUp"
	case tcell.KeyPgDn:
		return "PgDn"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBacktab:
		return "Shift+Tab"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEsc:
		return "Esc"
	case tcell.KeyCtrlQ:
		return "Ctrl+Q"
	case tcell.KeyCtrlS:
		return "Ctrl+S"
	default:
		return "?"
	}
}
