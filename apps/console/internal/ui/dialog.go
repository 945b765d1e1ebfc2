package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ConfirmDialog は確認ダイアログを表示する。
type ConfirmDialog struct {
	modal *tview.Modal
}

// NewConfirmDialog は新しいConfirmDialogを生成する。
func NewConfirmDialog(title, message string, onConfirm, onCancel func()) *ConfirmDialog {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Yes" {
				if onConfirm != nil {
					onConfirm()
				}
			} else {
				if onCancel != nil {
					onCancel()
				}
			}
		})

	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(ColorBorder)

	return &ConfirmDialog{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (d *ConfirmDialog) GetModal() *tview.Modal {
	return d.modal
}

// InputDialog は1項目の入力ダイアログを表示する。
type InputDialog struct {
	form  *tview.Form
	input *tview.InputField
}

// NewInputDialog は新しいInputDialogを生成する。
func NewInputDialog(title, label, defaultValue string, onSubmit func(value string), onCancel func()) *InputDialog {
	form := tview.NewForm()
	input := tview.NewInputField().
		SetLabel(label).
		SetText(defaultValue).
		SetFieldWidth(20)

	form.AddFormItem(input)
	form.AddButton("OK", func() {
		if onSubmit != nil {
			onSubmit(input.GetText())
		}
	})
	form.AddButton("Cancel", func() {
		if onCancel != nil {
			onCancel()
		}
	})

	form.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(ColorBorder)

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			if onCancel != nil {
				onCancel()
			}
			return nil
		}
		return event
	})

	return &InputDialog{form: form, input: input}
}

// GetForm は内部のtview.Formを返す。
func (d *InputDialog) GetForm() *tview.Form {
	return d.form
}

// SetAcceptance は入力可能な文字を制限する。
func (d *InputDialog) SetAcceptance(f func(text string, ch rune) bool) *InputDialog {
	d.input.SetAcceptanceFunc(f)
	return d
}
