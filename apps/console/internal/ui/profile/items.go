package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lvdund/ueprofiles/apps/console/internal/editor"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

// ItemEdit は配列要素に対する1件の変更を表す。
// Subfieldが空の場合は要素全体を置き換える。SessionSliceがtrueの場合はsessions[i].sliceのキーを変更する。
type ItemEdit struct {
	Subfield     string
	Value        any
	SessionSlice bool
}

// ApplyItemEdits はeditsを順にStoreへ適用する。
// いずれかの適用に失敗した場合、Storeは呼び出し前の状態に戻る。
func ApplyItemEdits(st *editor.Store, field string, index int, edits []ItemEdit) error {
	before := st.Draft()
	for _, e := range edits {
		var err error
		if e.SessionSlice {
			err = st.UpdateSessionSlice(index, e.Subfield, e.Value)
		} else {
			err = st.UpdateItemField(field, index, e.Subfield, e.Value)
		}
		if err != nil {
			st.Restore(before)
			return err
		}
	}
	return nil
}

// itemInput はダイアログの入力項目
type itemInput struct {
	label    string
	subfield string
	slice    bool
	numeric  bool
	options  []string
	value    string
}

// ItemDialog は配列要素の編集ダイアログを表す。
type ItemDialog struct {
	form   *tview.Form
	inputs []itemInput
}

// NewItemDialog は新しいItemDialogを生成する。
func NewItemDialog(field string, index int, item any, onSubmit func([]ItemEdit), onCancel func()) *ItemDialog {
	d := &ItemDialog{
		form:   tview.NewForm(),
		inputs: itemInputs(field, item),
	}

	for _, in := range d.inputs {
		if in.options != nil {
			d.form.AddDropDown(in.label, in.options, slices.Index(in.options, in.value), nil)
			continue
		}
		input := tview.NewInputField().
			SetLabel(in.label).
			SetText(in.value).
			SetFieldWidth(40)
		if in.numeric {
			input.SetAcceptanceFunc(tview.InputFieldInteger)
		}
		d.form.AddFormItem(input)
	}

	d.form.AddButton("OK", func() {
		edits, err := d.edits()
		if err != nil {
			d.form.SetTitle(" " + ui.ErrorMessage(err) + " ")
			return
		}
		if onSubmit != nil {
			onSubmit(edits)
		}
	})
	d.form.AddButton("Cancel", func() {
		if onCancel != nil {
			onCancel()
		}
	})

	d.form.SetTitle(fmt.Sprintf(" %s [%d] ", field, index+1)).
		SetBorder(true).
		SetBorderColor(ui.ColorInfo)

	d.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			if onCancel != nil {
				onCancel()
			}
			return nil
		}
		return event
	})

	return d
}

// GetForm は内部のtview.Formを返す。
func (d *ItemDialog) GetForm() *tview.Form {
	return d.form
}

// Height はダイアログの表示高さを返す。
func (d *ItemDialog) Height() int {
	return len(d.inputs)*2 + 5
}

func (d *ItemDialog) edits() ([]ItemEdit, error) {
	values := make([]string, len(d.inputs))
	for i, in := range d.inputs {
		switch item := d.form.GetFormItem(i).(type) {
		case *tview.InputField:
			values[i] = item.GetText()
		case *tview.DropDown:
			_, values[i] = item.GetCurrentOption()
		default:
			values[i] = in.value
		}
	}
	return buildItemEdits(d.inputs, values)
}

// buildItemEdits は入力値をItemEditに変換する。
func buildItemEdits(inputs []itemInput, values []string) ([]ItemEdit, error) {
	edits := make([]ItemEdit, 0, len(inputs))
	for i, in := range inputs {
		var v any = strings.TrimSpace(values[i])
		if in.numeric {
			n, err := validation.ParseIntField(in.label, values[i])
			if err != nil {
				return nil, err
			}
			v = n
		}
		edits = append(edits, ItemEdit{Subfield: in.subfield, Value: v, SessionSlice: in.slice})
	}
	return edits, nil
}

func itemInputs(field string, item any) []itemInput {
	m, _ := record.AsObject(item)
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	num := func(obj map[string]any, key string) string {
		n, _ := record.AsInt(obj[key])
		return strconv.Itoa(n)
	}

	switch field {
	case record.FieldConfiguredSlice, record.FieldDefaultSlice:
		return []itemInput{
			{label: "SST", subfield: "sst", numeric: true, value: num(m, "sst")},
			{label: "SD", subfield: "sd", value: str("sd")},
		}
	case record.FieldGnbSearchList:
		s, _ := item.(string)
		return []itemInput{{label: "Address", value: s}}
	case record.FieldProfiles:
		return []itemInput{
			{label: "Scheme", subfield: "scheme", numeric: true, value: num(m, "scheme")},
			{label: "Private Key", subfield: "privateKey", value: str("privateKey")},
			{label: "Public Key", subfield: "publicKey", value: str("publicKey")},
		}
	case record.FieldSessions:
		slice, _ := record.AsObject(m["slice"])
		sd, _ := slice["sd"].(string)
		return []itemInput{
			{label: "Type", subfield: "type", options: SessionTypeOptions, value: str("type")},
			{label: "APN", subfield: "apn", value: str("apn")},
			{label: "SST", subfield: "sst", slice: true, numeric: true, value: num(slice, "sst")},
			{label: "SD", subfield: "sd", slice: true, value: sd},
		}
	}
	return nil
}
