// Package ui は管理コンソールのTUI層を提供する。
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App はTUIアプリケーションを管理する。
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	statusBar *StatusBar
	layout    *tview.Flex
}

// NewApp は新しいAppを生成する。
func NewApp() *App {
	app := tview.NewApplication()
	pages := tview.NewPages()
	statusBar := NewStatusBar()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(pages, 0, 1, true).
		AddItem(statusBar.view, 1, 0, false)

	statusBar.SetApp(app)

	return &App{
		app:       app,
		pages:     pages,
		statusBar: statusBar,
		layout:    layout,
	}
}

// Run はアプリケーションを実行する。
func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(false).Run()
}

// Stop はアプリケーションを停止する。
func (a *App) Stop() {
	a.app.Stop()
}

// GetStatusBar はステータスバーを返す。
func (a *App) GetStatusBar() *StatusBar {
	return a.statusBar
}

// AddPage はページを追加する。
func (a *App) AddPage(name string, page tview.Primitive, resize, visible bool) {
	a.pages.AddPage(name, page, resize, visible)
}

// SwitchToPage は指定されたページに切り替える。
func (a *App) SwitchToPage(name string) {
	a.pages.SwitchToPage(name)
}

// HasPage は指定されたページが存在するかどうかを返す。
func (a *App) HasPage(name string) bool {
	return a.pages.HasPage(name)
}

// ClosePage はページを非表示にして削除する。
func (a *App) ClosePage(name string) {
	a.pages.HidePage(name)
	a.pages.RemovePage(name)
}

// SetFocus はフォーカスを設定する。
func (a *App) SetFocus(p tview.Primitive) {
	a.app.SetFocus(p)
}

// QueueUpdateDraw はUIの更新をキューに追加する。
func (a *App) QueueUpdateDraw(f func()) {
	a.app.QueueUpdateDraw(f)
}

// Background はfnを別のgoroutineで実行し、完了後にdoneをUIスレッドで呼び出す。
// fnの中でUIを操作してはならない。
func (a *App) Background(fn func() error, done func(err error)) {
	go func() {
		err := fn()
		a.app.QueueUpdateDraw(func() {
			done(err)
		})
	}()
}

// SetInputCapture はグローバルなキー入力ハンドラを設定する。
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	a.app.SetInputCapture(capture)
}

// Centered はpを画面中央に配置する。
func Centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
