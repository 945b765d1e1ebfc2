// Package tui は管理コンソールの画面遷移を管理する。
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/console"
	"github.com/lvdund/ueprofiles/apps/console/internal/csv"
	"github.com/lvdund/ueprofiles/apps/console/internal/editor"
	"github.com/lvdund/ueprofiles/apps/console/internal/profilesync"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/apps/console/internal/store"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui/auth"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui/profile"
	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

// ページ名
const (
	pageStartupError = "startup-error"
	pageLogin        = "login"
	pageMainMenu     = "main-menu"
	pageProfileList  = "profile-list"
	pageProfileForm  = "profile-form"
	pageConfirm      = "confirm"
	pageInput        = "input"
	pageHelp         = "help"
)

// 入力ダイアログの既定値
const (
	defaultGenerateCount = "10"
	defaultExportFile    = "ue_profiles.csv"
)

// Application はTUI全体を管理する。
type Application struct {
	app     *ui.App
	rt      *console.Runtime
	session *api.Session
	list    *profile.ListScreen
}

// Run はTUIを起動し、終了するまでブロックする。
// connectErrが非nilの場合は資格情報の保存先への接続エラー画面から開始する。
func Run(rt *console.Runtime, connectErr error) error {
	a := &Application{
		app: ui.NewApp(),
		rt:  rt,
	}

	a.setupGlobalKeyBindings()

	if connectErr != nil {
		a.showStartupError(connectErr)
	} else {
		a.start()
	}

	return a.app.Run()
}

// start は保存済みの資格情報があればメインメニューへ、なければログイン画面へ進む。
func (a *Application) start() {
	var sess *api.Session
	a.app.Background(func() error {
		ctx, cancel := a.operation()
		defer cancel()
		var err error
		sess, err = a.rt.Sessions.Resume(ctx)
		return err
	}, func(err error) {
		if err != nil {
			if !errors.Is(err, store.ErrCredentialNotFound) {
				a.status().ShowFailure("Resume failed", err)
			}
			a.showLogin()
			return
		}
		a.onLoggedIn(sess)
	})
}

func (a *Application) operation() (context.Context, context.CancelFunc) {
	return a.rt.OperationContext(context.Background())
}

func (a *Application) status() *ui.StatusBar {
	return a.app.GetStatusBar()
}

func (a *Application) quit() {
	a.app.Stop()
}

func (a *Application) showStartupError(err error) {
	screen := ui.NewStartupErrorScreen(
		err.Error(),
		a.rt.Config.ValkeyAddr,
		func() {
			a.app.Background(func() error {
				ctx, cancel := a.operation()
				defer cancel()
				return a.rt.ConnectCredentials(ctx)
			}, func(err error) {
				if err != nil {
					a.status().ShowFailure("Connection failed", err)
					return
				}
				a.app.ClosePage(pageStartupError)
				a.start()
			})
		},
		func() {
			a.rt.UseMemoryCredentials()
			a.app.ClosePage(pageStartupError)
			a.status().ShowWarning("Credentials are kept for this session only")
			a.start()
		},
		a.quit,
	)

	a.app.AddPage(pageStartupError, screen.GetModal(), true, true)
}

func (a *Application) setupGlobalKeyBindings() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case ui.KeyQuit:
			a.quit()
			return nil
		case ui.KeyHelp:
			a.showHelp()
			return nil
		}
		return event
	})
}

func (a *Application) showHelp() {
	if a.app.HasPage(pageHelp) {
		return
	}
	helpModal := ui.NewHelpModal(ui.GetDefaultHelpSections(), func() {
		a.app.ClosePage(pageHelp)
	})
	a.app.AddPage(pageHelp, helpModal.GetModal(), true, true)
}

// Authentication

func (a *Application) showLogin() {
	screen := auth.NewLoginScreen(a.app)

	screen.SetOnLogin(func(username, password string) {
		var sess *api.Session
		a.app.Background(func() error {
			ctx, cancel := a.operation()
			defer cancel()
			var err error
			sess, err = a.rt.Sessions.Login(ctx, username, password)
			return err
		}, func(err error) {
			if err != nil {
				screen.ClearPassword()
				a.status().ShowFailure("Login failed", err)
				return
			}
			a.app.ClosePage(pageLogin)
			a.onLoggedIn(sess)
		})
	})

	screen.SetOnRegister(func(username, password string) {
		a.app.Background(func() error {
			ctx, cancel := a.operation()
			defer cancel()
			return a.rt.Sessions.Register(ctx, username, password)
		}, func(err error) {
			if err != nil {
				a.status().ShowFailure("Register failed", err)
				return
			}
			a.status().ShowSuccess("Account created: " + username)
		})
	})

	screen.SetOnExit(a.quit)

	a.app.AddPage(pageLogin, ui.Centered(screen.GetForm(), 50, 9), true, true)
	a.app.SetFocus(screen.GetForm())
}

func (a *Application) onLoggedIn(sess *api.Session) {
	a.session = sess
	a.status().SetUser(sess.Username)
	a.showMainMenu()
}

func (a *Application) logout() {
	sess := a.session
	a.app.Background(func() error {
		ctx, cancel := a.operation()
		defer cancel()
		return a.rt.Sessions.Logout(ctx, sess)
	}, func(err error) {
		a.session = nil
		a.list = nil
		a.status().SetUser("")
		for _, page := range []string{pageProfileList, pageProfileForm, pageMainMenu} {
			a.app.ClosePage(page)
		}
		if err != nil {
			a.status().ShowFailure("Logout", err)
		} else {
			a.status().ShowSuccess("Logged out")
		}
		a.showLogin()
	})
}

// Main Menu

func (a *Application) showMainMenu() {
	menuItems := ui.GetDefaultMenuItems()

	menuItems[ui.MenuProfiles].Action = a.showProfileList
	menuItems[ui.MenuGenerate].Action = a.showGenerateDialog
	menuItems[ui.MenuExport].Action = a.showExportDialog
	menuItems[ui.MenuLogout].Action = a.logout
	menuItems[ui.MenuExit].Action = a.quit

	menu := ui.NewMainMenu(menuItems)
	menu.SetOnQuit(a.quit)

	a.app.ClosePage(pageMainMenu)
	a.app.AddPage(pageMainMenu, menu.GetList(), true, true)
	a.app.SetFocus(menu.GetList())
}

// Profile Management

func (a *Application) showProfileList() {
	screen := profile.NewListScreen(a.app, a.rt.Catalog, a.rt.Audit)
	a.list = screen

	screen.SetOnCreate(func() {
		a.showProfileForm(nil)
	})

	screen.SetOnEdit(func(supi string) {
		doc, ok := a.rt.Catalog.Find(supi)
		if !ok {
			a.status().ShowError("Profile not found: " + supi)
			return
		}
		a.showProfileForm(doc)
	})

	screen.SetOnDelete(func(supi string) {
		a.showDeleteConfirm(supi)
	})

	screen.SetOnReload(a.reload)
	screen.SetOnGenerate(a.showGenerateDialog)

	screen.SetOnBack(func() {
		a.app.SwitchToPage(pageMainMenu)
	})

	a.app.ClosePage(pageProfileList)
	a.app.AddPage(pageProfileList, screen.GetFlex(), true, false)
	a.app.SwitchToPage(pageProfileList)
	a.app.SetFocus(screen.GetTable())

	screen.Render()
	a.reload()
}

// reload は一覧を再取得して表示を更新する。
func (a *Application) reload() {
	sess := a.session
	a.app.Background(func() error {
		ctx, cancel := a.operation()
		defer cancel()
		return a.rt.Adapter.Reload(ctx, sess)
	}, func(err error) {
		if err != nil {
			a.status().ShowFailure("Failed to load", err)
		}
		a.renderList()
	})
}

func (a *Application) renderList() {
	if a.list != nil {
		a.list.Render()
	}
}

func (a *Application) backToList() {
	if a.list == nil {
		a.app.SwitchToPage(pageMainMenu)
		return
	}
	a.app.SwitchToPage(pageProfileList)
	a.app.SetFocus(a.list.GetTable())
}

func (a *Application) showProfileForm(doc record.Document) {
	screen := profile.NewFormScreen(a.app)

	screen.SetOnSubmit(func(d editor.Draft) {
		sess := a.session
		a.app.Background(func() error {
			ctx, cancel := a.operation()
			defer cancel()
			return a.rt.Adapter.Submit(ctx, sess, d)
		}, func(err error) {
			screen.FinishSave()
			if err != nil && !errors.Is(err, profilesync.ErrReloadFailed) {
				a.status().ShowFailure("Failed to save", err)
				return
			}
			a.app.ClosePage(pageProfileForm)
			a.backToList()
			a.renderList()
			if err != nil {
				a.status().ShowFailure("Save", err)
				return
			}
			a.status().ShowSuccess("Profile saved: " + record.Identifier(d.Doc))
		})
	})

	screen.SetOnCancel(func() {
		a.app.ClosePage(pageProfileForm)
		a.backToList()
	})

	if doc != nil {
		screen.SetupEdit(doc)
	} else {
		screen.SetupCreate()
	}

	a.app.AddPage(pageProfileForm, screen.GetFlex(), true, true)
	a.app.SetFocus(screen.GetForm())
}

func (a *Application) showDeleteConfirm(supi string) {
	dialog := ui.NewConfirmDialog(
		"Confirm Delete",
		fmt.Sprintf("Are you sure you want to delete profile %s?", supi),
		func() {
			a.app.ClosePage(pageConfirm)
			a.backToList()
			sess := a.session
			a.app.Background(func() error {
				ctx, cancel := a.operation()
				defer cancel()
				return a.rt.Adapter.Delete(ctx, sess, supi)
			}, func(err error) {
				a.renderList()
				if err != nil {
					a.status().ShowFailure("Failed to delete", err)
					return
				}
				a.status().ShowSuccess("Profile deleted: " + supi)
			})
		},
		func() {
			a.app.ClosePage(pageConfirm)
			a.backToList()
		},
	)

	a.app.AddPage(pageConfirm, dialog.GetModal(), true, true)
}

// Generate / Export

func (a *Application) showInput(title, label, value string, onSubmit func(string), integer bool) {
	var back tview.Primitive
	if a.list != nil && a.app.HasPage(pageProfileList) {
		back = a.list.GetTable()
	}
	closeDialog := func() {
		a.app.ClosePage(pageInput)
		if back != nil {
			a.app.SetFocus(back)
		}
	}

	dialog := ui.NewInputDialog(title, label, value, func(v string) {
		onSubmit(v)
	}, closeDialog)
	if integer {
		dialog.SetAcceptance(tview.InputFieldInteger)
	}

	a.app.AddPage(pageInput, ui.Centered(dialog.GetForm(), 50, 7), true, true)
	a.app.SetFocus(dialog.GetForm())
}

func (a *Application) showGenerateDialog() {
	a.showInput("Generate Profiles", "Count", defaultGenerateCount, func(value string) {
		n, err := validation.ParseGenerateCount(value)
		if err != nil {
			a.status().ShowError(ui.ErrorMessage(err))
			return
		}
		a.app.ClosePage(pageInput)
		a.status().ShowPersistent(ui.StatusInfo, fmt.Sprintf("Generating %d profiles...", n))

		var generated int
		sess := a.session
		a.app.Background(func() error {
			ctx, cancel := a.operation()
			defer cancel()
			var err error
			generated, err = a.rt.Adapter.Generate(ctx, sess, n)
			return err
		}, func(err error) {
			a.renderList()
			if err != nil {
				a.status().ShowFailure("Failed to generate", err)
				return
			}
			a.status().ShowSuccess(fmt.Sprintf("Generated %d profiles", generated))
		})
	}, true)
}

func (a *Application) showExportDialog() {
	a.showInput("Export CSV", "File", defaultExportFile, func(path string) {
		if path == "" {
			a.status().ShowError("File: required")
			return
		}
		a.app.ClosePage(pageInput)

		var exported int
		sess := a.session
		a.app.Background(func() error {
			ctx, cancel := a.operation()
			defer cancel()
			if err := a.rt.Adapter.Reload(ctx, sess); err != nil {
				return err
			}
			docs := a.rt.Catalog.Filtered()
			exported = len(docs)
			return csv.WriteProfileFile(path, docs)
		}, func(err error) {
			if err != nil {
				a.status().ShowFailure("Failed to export", err)
				return
			}
			a.rt.Audit.LogExport(exported, path)
			a.status().ShowSuccess(fmt.Sprintf("Exported %d profiles to %s", exported, path))
		})
	}, false)
}
