package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem はメニュー項目を表す。
type MenuItem struct {
	Label       string
	Description string
	Key         rune
	Action      func()
}

// メインメニューの項目位置
const (
	MenuProfiles = iota
	MenuGenerate
	MenuExport
	MenuLogout
	MenuExit
)

// MainMenu はメインメニューを表示する。
type MainMenu struct {
	list   *tview.List
	onQuit func()
}

// NewMainMenu は新しいMainMenuを生成する。
func NewMainMenu(items []MenuItem) *MainMenu {
	list := tview.NewList().
		ShowSecondaryText(true)

	menu := &MainMenu{list: list}

	for _, item := range items {
		list.AddItem(item.Label, item.Description, item.Key, item.Action)
	}

	list.SetTitle(" UE Profile Console - Main Menu ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ColorPrimary)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			if menu.onQuit != nil {
				menu.onQuit()
			}
			return nil
		}
		return event
	})

	return menu
}

// SetOnQuit は終了時のコールバックを設定する。
func (m *MainMenu) SetOnQuit(handler func()) {
	m.onQuit = handler
}

// GetList は内部のtview.Listを返す。
func (m *MainMenu) GetList() *tview.List {
	return m.list
}

// GetDefaultMenuItems はデフォルトのメニュー項目を返す。
// Actionは呼び出し側で設定する。
func GetDefaultMenuItems() []MenuItem {
	return []MenuItem{
		MenuProfiles: {
			Label:       "UE Profiles",
			Description: "Browse, search and edit UE profiles",
			Key:         '1',
		},
		MenuGenerate: {
			Label:       "Generate Profiles",
			Description: "Generate UE profiles on the service",
			Key:         '2',
		},
		MenuExport: {
			Label:       "Export CSV",
			Description: "Export the current profile list to a CSV file",
			Key:         '3',
		},
		MenuLogout: {
			Label:       "Logout",
			Description: "Revoke the token and forget the stored credential",
			Key:         '4',
		},
		MenuExit: {
			Label:       "Exit",
			Description: "Exit the application",
			Key:         'q',
		},
	}
}
