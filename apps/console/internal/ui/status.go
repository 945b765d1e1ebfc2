package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusType はステータスメッセージの種類を表す。
type StatusType int

const (
	// StatusInfo は情報メッセージ
	StatusInfo StatusType = iota
	// StatusSuccess は成功メッセージ
	StatusSuccess
	// StatusWarning は警告メッセージ
	StatusWarning
	// StatusError はエラーメッセージ
	StatusError
)

// DefaultStatusText はステータスバーの既定テキスト
const DefaultStatusText = " F1:Help | Esc:Back | Ctrl+Q:Exit"

// StatusBar はステータスバーを管理する。
type StatusBar struct {
	view        *tview.TextView
	app         *tview.Application
	clearTimer  *time.Timer
	defaultText string
	user        string
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	view.SetBackgroundColor(tcell.ColorDarkBlue)
	view.SetTextColor(tcell.ColorWhite)

	return &StatusBar{
		view:        view,
		defaultText: DefaultStatusText,
	}
}

// SetApp はtview.Applicationへの参照を設定する。
func (s *StatusBar) SetApp(app *tview.Application) {
	s.app = app
	s.ShowDefault()
}

// SetUser はログイン中のユーザー名を既定テキストに表示する。
func (s *StatusBar) SetUser(user string) {
	s.user = user
	s.ShowDefault()
}

// ShowDefault はデフォルトのステータスメッセージを表示する。
func (s *StatusBar) ShowDefault() {
	s.view.SetText(s.DefaultText())
}

// DefaultText は現在の既定テキストを返す。
func (s *StatusBar) DefaultText() string {
	if s.user == "" {
		return s.defaultText
	}
	return s.defaultText + " | User: " + s.user
}

// Show はステータスメッセージを表示する。
func (s *StatusBar) Show(statusType StatusType, message string) {
	s.ShowWithDuration(statusType, message, 5*time.Second)
}

// ShowWithDuration は指定された時間後にデフォルトに戻るステータスメッセージを表示する。
func (s *StatusBar) ShowWithDuration(statusType StatusType, message string, duration time.Duration) {
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}

	s.view.SetText(colorize(statusType, message))

	if duration > 0 {
		s.clearTimer = time.AfterFunc(duration, func() {
			if s.app != nil {
				s.app.QueueUpdateDraw(func() {
					s.ShowDefault()
				})
			}
		})
	}
}

func colorize(statusType StatusType, message string) string {
	switch statusType {
	case StatusSuccess:
		return "[green::b] ✓ " + message + " [-::-]"
	case StatusWarning:
		return "[yellow::b] ⚠ " + message + " [-::-]"
	case StatusError:
		return "[red::b] ✗ " + message + " [-::-]"
	default:
		return "[cyan] ℹ " + message + " [-]"
	}
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.Show(StatusSuccess, message)
}

// ShowWarning は警告メッセージを表示する。
func (s *StatusBar) ShowWarning(message string) {
	s.Show(StatusWarning, message)
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.Show(StatusError, message)
}

// ShowFailure は操作名とエラー分類を付けてエラーを表示する。
func (s *StatusBar) ShowFailure(action string, err error) {
	s.Show(StatusError, action+": "+ErrorMessage(err))
}

// ShowPersistent は自動的に消えないメッセージを表示する。
func (s *StatusBar) ShowPersistent(statusType StatusType, message string) {
	s.ShowWithDuration(statusType, message, 0)
}
