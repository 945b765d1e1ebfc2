package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StartupErrorScreen は起動エラー画面を表す。
type StartupErrorScreen struct {
	modal *tview.Modal
}

// NewStartupErrorScreen は新しいStartupErrorScreenを生成する。
// Retryで再接続を試み、Continueで資格情報を保存しない構成のまま続行する。
func NewStartupErrorScreen(errorMessage, addr string, onRetry, onContinue, onExit func()) *StartupErrorScreen {
	modal := tview.NewModal().
		SetText("Failed to connect to the credential store:\n\n" + errorMessage +
			"\n\nPlease check:\n- Valkey is running on " + addr +
			"\n- VALKEY_PASSWORD environment variable is set correctly" +
			"\n\nContinue keeps the login for this session only.").
		AddButtons([]string{"Retry", "Continue", "Exit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			var handler func()
			switch buttonLabel {
			case "Retry":
				handler = onRetry
			case "Continue":
				handler = onContinue
			default:
				handler = onExit
			}
			if handler != nil {
				handler()
			}
		})

	modal.SetTitle(" Connection Error ").
		SetBorder(true).
		SetBorderColor(ColorError)
	modal.SetBackgroundColor(tcell.ColorBlack)

	return &StartupErrorScreen{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (s *StartupErrorScreen) GetModal() *tview.Modal {
	return s.modal
}
