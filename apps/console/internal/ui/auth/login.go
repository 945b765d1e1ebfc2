// Package auth はログイン画面を提供する。
package auth

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

// フォーム項目のインデックス
const (
	usernameIndex = 0
	passwordIndex = 1
)

// LoginScreen はログイン/ユーザー登録画面を表す。
type LoginScreen struct {
	form       *tview.Form
	app        *ui.App
	onLogin    func(username, password string)
	onRegister func(username, password string)
	onExit     func()
}

// NewLoginScreen は新しいLoginScreenを生成する。
func NewLoginScreen(app *ui.App) *LoginScreen {
	s := &LoginScreen{
		form: tview.NewForm(),
		app:  app,
	}

	s.form.AddInputField("Username", "", 30, nil, nil)
	s.form.AddPasswordField("Password", "", 30, '*', nil)
	s.form.AddButton("Login", func() { s.submit(s.onLogin) })
	s.form.AddButton("Register", func() { s.submit(s.onRegister) })
	s.form.AddButton("Exit", func() {
		if s.onExit != nil {
			s.onExit()
		}
	})

	s.form.SetBorder(true).
		SetTitle(" UE Profile Console ").
		SetBorderColor(ui.ColorPrimary)

	s.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			if s.onExit != nil {
				s.onExit()
			}
			return nil
		}
		return event
	})

	return s
}

// SetOnLogin はログインボタン押下時のコールバックを設定する。
func (s *LoginScreen) SetOnLogin(handler func(username, password string)) {
	s.onLogin = handler
}

// SetOnRegister は登録ボタン押下時のコールバックを設定する。
func (s *LoginScreen) SetOnRegister(handler func(username, password string)) {
	s.onRegister = handler
}

// SetOnExit は終了時のコールバックを設定する。
func (s *LoginScreen) SetOnExit(handler func()) {
	s.onExit = handler
}

// GetForm は内部のtview.Formを返す。
func (s *LoginScreen) GetForm() *tview.Form {
	return s.form
}

// Credentials は入力中のユーザー名とパスワードを返す。
func (s *LoginScreen) Credentials() (string, string) {
	username := s.form.GetFormItem(usernameIndex).(*tview.InputField).GetText()
	password := s.form.GetFormItem(passwordIndex).(*tview.InputField).GetText()
	return strings.TrimSpace(username), password
}

// ClearPassword はパスワード欄を空にする。
func (s *LoginScreen) ClearPassword() {
	s.form.GetFormItem(passwordIndex).(*tview.InputField).SetText("")
}

func (s *LoginScreen) submit(handler func(username, password string)) {
	username, password := s.Credentials()
	if err := validation.ValidateCredentials(username, password); err != nil {
		s.app.GetStatusBar().ShowError(ui.ErrorMessage(err))
		return
	}
	if handler != nil {
		handler(username, password)
	}
}
