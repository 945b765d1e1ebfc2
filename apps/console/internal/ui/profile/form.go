package profile

import (
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lvdund/ueprofiles/apps/console/internal/editor"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

// FormScreen はUEプロファイルの作成/編集画面を表す。
// 各入力はeditor.Storeのパスに結び付いており、変更のたびにStoreへ反映する。
type FormScreen struct {
	flex     *tview.Flex
	form     *tview.Form
	lists    []*tview.List
	panes    []tview.Primitive
	app      *ui.App
	store    *editor.Store
	invalid  map[string]string
	saving   bool
	onSubmit func(d editor.Draft)
	onCancel func()
}

// NewFormScreen は新しいFormScreenを生成する。
func NewFormScreen(app *ui.App) *FormScreen {
	form := tview.NewForm()
	form.SetBorder(true).
		SetTitle(" Profile ").
		SetBorderColor(ui.ColorPrimary)

	sectionFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	s := &FormScreen{
		form:    form,
		app:     app,
		store:   editor.NewStore(),
		invalid: map[string]string{},
		panes:   []tview.Primitive{form},
	}

	for _, sec := range Sections {
		list := tview.NewList().ShowSecondaryText(false)
		list.SetBorder(true).
			SetTitle(" " + sec.Title + " ").
			SetBorderColor(ui.ColorTextMuted)
		s.lists = append(s.lists, list)
		s.panes = append(s.panes, list)
		sectionFlex.AddItem(list, 0, 1, false)
	}

	s.flex = tview.NewFlex().
		AddItem(form, 0, 3, true).
		AddItem(sectionFlex, 0, 2, false)

	s.setupKeyBindings()
	return s
}

// SetOnSubmit は保存時のコールバックを設定する。
// コールバックにはUIゴルーチン上で取り出したDraftが渡される。
// 保存完了後はFinishSaveを呼ぶまで再度の保存を受け付けない。
func (s *FormScreen) SetOnSubmit(handler func(d editor.Draft)) {
	s.onSubmit = handler
}

// FinishSave は保存中の状態を解除し、Saveボタンを再度有効にする。
func (s *FormScreen) FinishSave() {
	s.setSaving(false)
}

// Saving は保存処理の完了待ちかどうかを返す。
func (s *FormScreen) Saving() bool {
	return s.saving
}

func (s *FormScreen) setSaving(on bool) {
	s.saving = on
	if i := s.form.GetButtonIndex("Save"); i >= 0 {
		s.form.GetButton(i).SetDisabled(on)
	}
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *FormScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *FormScreen) GetFlex() *tview.Flex {
	return s.flex
}

// GetForm は内部のtview.Formを返す。
func (s *FormScreen) GetForm() *tview.Form {
	return s.form
}

// Store は編集中のStoreを返す。
func (s *FormScreen) Store() *editor.Store {
	return s.store
}

// SetupCreate は新規作成モードでフォームをセットアップする。
func (s *FormScreen) SetupCreate() {
	s.store.Initialize(nil)
	s.flex.SetTitle(" Create Profile ")
	s.form.SetTitle(" Create Profile ")
	s.build()
}

// SetupEdit は既存レコードの編集モードでフォームをセットアップする。
func (s *FormScreen) SetupEdit(doc record.Document) {
	s.store.Initialize(doc)
	s.form.SetTitle(" Edit Profile: " + s.store.Identifier() + " ")
	s.build()
}

func (s *FormScreen) build() {
	s.form.Clear(true)
	clear(s.invalid)
	s.saving = false
	doc := s.store.Snapshot()

	for _, f := range ScalarFields {
		s.addField(doc, f)
	}

	s.form.AddButton("Save", s.handleSave)
	s.form.AddButton("Cancel", s.handleCancel)

	for i := range Sections {
		s.renderSection(i)
	}
}

func (s *FormScreen) addField(doc record.Document, f ScalarField) {
	path := f.Path

	switch f.Kind {
	case KindFlag:
		cb := tview.NewCheckbox().
			SetLabel(f.Label).
			SetChecked(record.Bool(doc, path))
		cb.SetChangedFunc(func(checked bool) {
			s.apply(path, s.store.SetFlag(path, checked))
		})
		s.form.AddFormItem(cb)

	case KindChoice:
		dd := tview.NewDropDown().
			SetLabel(f.Label).
			SetOptions(f.Options, nil).
			SetCurrentOption(slices.Index(f.Options, record.String(doc, path)))
		dd.SetSelectedFunc(func(text string, index int) {
			s.apply(path, s.store.SetScalar(path, text))
		})
		s.form.AddFormItem(dd)

	case KindInt:
		input := tview.NewInputField().
			SetLabel(f.Label).
			SetFieldWidth(f.Width).
			SetText(strconv.Itoa(record.Int(doc, path))).
			SetAcceptanceFunc(tview.InputFieldInteger)
		label := f.Label
		input.SetChangedFunc(func(text string) {
			n, err := validation.ParseIntField(label, text)
			if err != nil {
				s.invalid[path] = ui.ErrorMessage(err)
				return
			}
			delete(s.invalid, path)
			s.apply(path, s.store.SetScalar(path, n))
		})
		s.form.AddFormItem(input)

	default:
		input := tview.NewInputField().
			SetLabel(f.Label).
			SetFieldWidth(f.Width).
			SetText(record.String(doc, path))
		input.SetChangedFunc(func(text string) {
			s.apply(path, s.store.SetScalar(path, text))
		})
		if path == record.FieldSUPI && s.store.Editing() {
			input.SetDisabled(true)
		}
		s.form.AddFormItem(input)
	}
}

// apply はStoreの更新結果をステータスバーに反映する。
func (s *FormScreen) apply(path string, err error) {
	if err != nil {
		s.app.GetStatusBar().ShowFailure("Cannot set "+path, err)
	}
}

func (s *FormScreen) renderSection(i int) {
	sec := Sections[i]
	list := s.lists[i]
	current := list.GetCurrentItem()
	list.Clear()

	items := s.store.Items(sec.Field)
	for idx, item := range items {
		list.AddItem(ItemText(sec.Field, idx, item), "", 0, nil)
	}
	list.SetTitle(" " + sec.Title + " (" + strconv.Itoa(len(items)) + ") ")
	if len(items) > 0 {
		list.SetCurrentItem(min(current, len(items)-1))
	}
}

func (s *FormScreen) handleSave() {
	if s.saving {
		return
	}
	for _, msg := range s.invalid {
		s.app.GetStatusBar().ShowError("Validation error: " + msg)
		return
	}
	if !s.store.Editing() {
		if err := validation.ValidateNewProfile(s.store.Snapshot()); err != nil {
			s.app.GetStatusBar().ShowFailure("Validation error", err)
			return
		}
	}
	if s.onSubmit != nil {
		s.setSaving(true)
		s.onSubmit(s.store.Draft())
	}
}

func (s *FormScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}

func (s *FormScreen) focusedPane() int {
	for i, p := range s.panes {
		if p.HasFocus() {
			return i
		}
	}
	return 0
}

func (s *FormScreen) cyclePane(delta int) {
	next := (s.focusedPane() + delta + len(s.panes)) % len(s.panes)
	s.app.SetFocus(s.panes[next])
}

func (s *FormScreen) setupKeyBindings() {
	s.flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case ui.KeySave:
			s.handleSave()
			return nil
		case ui.KeyNextPane:
			s.cyclePane(1)
			return nil
		case tcell.KeyEsc:
			if s.focusedPane() != 0 {
				s.app.SetFocus(s.form)
				return nil
			}
			s.handleCancel()
			return nil
		}
		return event
	})

	for i, list := range s.lists {
		idx := i
		list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch {
			case event.Key() == tcell.KeyEnter:
				s.editItem(idx, list.GetCurrentItem())
				return nil
			case event.Rune() == ui.RuneAdd:
				s.addItem(idx)
				return nil
			case event.Rune() == ui.RuneDelete:
				s.removeItem(idx, list.GetCurrentItem())
				return nil
			}
			return event
		})
	}
}

func (s *FormScreen) addItem(i int) {
	field := Sections[i].Field
	if err := s.store.AddDefaultItem(field); err != nil {
		s.app.GetStatusBar().ShowFailure("Cannot add item", err)
		return
	}
	s.renderSection(i)
	index := s.store.Len(field) - 1
	s.lists[i].SetCurrentItem(index)
	s.editItem(i, index)
}

func (s *FormScreen) removeItem(i, index int) {
	field := Sections[i].Field
	if s.store.Len(field) == 0 {
		return
	}
	if err := s.store.RemoveItem(field, index); err != nil {
		s.app.GetStatusBar().ShowFailure("Cannot remove item", err)
		return
	}
	s.renderSection(i)
}

func (s *FormScreen) editItem(i, index int) {
	field := Sections[i].Field
	items := s.store.Items(field)
	if index < 0 || index >= len(items) {
		return
	}

	dialog := NewItemDialog(field, index, items[index], func(edits []ItemEdit) {
		if err := ApplyItemEdits(s.store, field, index, edits); err != nil {
			s.app.GetStatusBar().ShowFailure("Cannot update item", err)
			return
		}
		s.app.ClosePage(itemDialogPage)
		s.renderSection(i)
		s.app.SetFocus(s.lists[i])
	}, func() {
		s.app.ClosePage(itemDialogPage)
		s.app.SetFocus(s.lists[i])
	})

	s.app.AddPage(itemDialogPage, ui.Centered(dialog.GetForm(), 60, dialog.Height()), true, true)
	s.app.SetFocus(dialog.GetForm())
}

const itemDialogPage = "item-dialog"
