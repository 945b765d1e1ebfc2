package ui

import (
	"strings"

	"github.com/rivo/tview"
)

// HelpModal はヘルプモーダルを表示する。
type HelpModal struct {
	modal *tview.Modal
}

// HelpSection はヘルプのセクションを表す。
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// NewHelpModal は新しいHelpModalを生成する。
func NewHelpModal(sections []HelpSection, onClose func()) *HelpModal {
	modal := tview.NewModal().
		SetText(FormatHelp(sections)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" Help ").
		SetBorder(true).
		SetBorderColor(ColorInfo)

	return &HelpModal{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (h *HelpModal) GetModal() *tview.Modal {
	return h.modal
}

// FormatHelp はヘルプセクションを表示用テキストに変換する。
func FormatHelp(sections []HelpSection) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleBold(section.Title) + "\n")
		for _, kb := range section.Bindings {
			b.WriteString("  " + kb.Label() + "  " + kb.Description + "\n")
		}
	}
	return b.String()
}

// GetDefaultHelpSections はデフォルトのヘルプセクションを返す。
func GetDefaultHelpSections() []HelpSection {
	return []HelpSection{
		{Title: "Profile List", Bindings: GetListKeyBindings()},
		{Title: "Profile Form", Bindings: GetFormKeyBindings()},
		{Title: "Collections", Bindings: GetSectionKeyBindings()},
		{Title: "Global", Bindings: GetGlobalKeyBindings()},
	}
}
