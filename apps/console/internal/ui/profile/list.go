package profile

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lvdund/ueprofiles/apps/console/internal/audit"
	"github.com/lvdund/ueprofiles/apps/console/internal/catalog"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
)

// ListScreen はUEプロファイル一覧画面を表す。
// 表示内容はCatalogから取得し、ネットワークアクセスは行わない。
type ListScreen struct {
	flex        *tview.Flex
	table       *tview.Table
	search      *tview.InputField
	app         *ui.App
	catalog     *catalog.Catalog
	auditLogger *audit.Logger
	pagination  *ui.Pagination
	pageRows    []Row

	onCreate   func()
	onEdit     func(supi string)
	onDelete   func(supi string)
	onReload   func()
	onGenerate func()
	onBack     func()
}

// NewListScreen は新しいListScreenを生成する。
func NewListScreen(app *ui.App, cat *catalog.Catalog, auditLogger *audit.Logger) *ListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" UE Profiles ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ui.ColorPrimary)

	search := tview.NewInputField().
		SetLabel(" Search SUPI: ").
		SetFieldWidth(0)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(search, 1, 0, false).
		AddItem(table, 0, 1, true)

	screen := &ListScreen{
		flex:        flex,
		table:       table,
		search:      search,
		app:         app,
		catalog:     cat,
		auditLogger: auditLogger,
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	search.SetText(cat.SearchTerm())
	screen.setupSearch()
	screen.setupKeyBindings()
	return screen
}

// SetOnCreate は新規作成時のコールバックを設定する。
func (s *ListScreen) SetOnCreate(handler func()) {
	s.onCreate = handler
}

// SetOnEdit は編集時のコールバックを設定する。
func (s *ListScreen) SetOnEdit(handler func(supi string)) {
	s.onEdit = handler
}

// SetOnDelete は削除時のコールバックを設定する。
func (s *ListScreen) SetOnDelete(handler func(supi string)) {
	s.onDelete = handler
}

// SetOnReload は再読み込み時のコールバックを設定する。
func (s *ListScreen) SetOnReload(handler func()) {
	s.onReload = handler
}

// SetOnGenerate は一括生成時のコールバックを設定する。
func (s *ListScreen) SetOnGenerate(handler func()) {
	s.onGenerate = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *ListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *ListScreen) GetFlex() *tview.Flex {
	return s.flex
}

// GetTable は内部のtview.Tableを返す。
func (s *ListScreen) GetTable() *tview.Table {
	return s.table
}

// Render はCatalogの現在の内容で一覧を描画する。UIスレッドから呼ぶ。
func (s *ListScreen) Render() {
	selected := s.SelectedSUPI()

	s.table.Clear()
	for col, header := range Columns {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(ui.ColorHeader).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}

	rows := BuildRows(s.catalog.Groups())
	s.pageRows = ui.GetPageItems(rows, s.pagination)

	firstRecord, reselect := -1, -1
	for i, r := range s.pageRows {
		tableRow := i + 1
		if r.IsHeader() {
			color := ui.ColorGroup
			if r.Label == catalog.UnknownDateLabel {
				color = ui.ColorUnknownGroup
			}
			s.table.SetCell(tableRow, 0, tview.NewTableCell(HeaderText(r)).
				SetTextColor(color).
				SetAttributes(tcell.AttrBold).
				SetSelectable(false))
			for col := 1; col < len(Columns); col++ {
				s.table.SetCell(tableRow, col, tview.NewTableCell("").SetSelectable(false))
			}
			continue
		}

		if firstRecord < 0 {
			firstRecord = tableRow
		}
		if selected != "" && r.SUPI() == selected {
			reselect = tableRow
		}
		for col, text := range Cells(r.Record) {
			color := ui.ColorText
			if col > 0 {
				color = ui.ColorTextMuted
			}
			s.table.SetCell(tableRow, col, tview.NewTableCell(text).
				SetTextColor(color).
				SetAlign(tview.AlignLeft).
				SetExpansion(1))
		}
	}

	s.table.SetTitle(s.title())

	switch {
	case reselect > 0:
		s.table.SetSelectable(true, false)
		s.table.Select(reselect, 0)
	case firstRecord > 0:
		s.table.SetSelectable(true, false)
		s.table.Select(firstRecord, 0)
	default:
		s.table.SetSelectable(false, false)
		empty := "(No profiles)"
		if s.catalog.SearchTerm() != "" {
			empty = "(No profiles match the search)"
		}
		s.table.SetCell(1, 0, tview.NewTableCell(empty).
			SetTextColor(ui.ColorTextMuted).
			SetSelectable(false))
	}
}

func (s *ListScreen) title() string {
	var b strings.Builder
	b.WriteString(" UE Profiles ")
	if term := s.catalog.SearchTerm(); term != "" {
		b.WriteString("[yellow](Search: \"" + tview.Escape(term) + "\")[-] ")
	}
	b.WriteString("[gray]" + s.pagination.FormatPageInfo() + "[-] ")
	return b.String()
}

// SelectedSUPI は選択されているレコードのSUPIを返す。
func (s *ListScreen) SelectedSUPI() string {
	row, _ := s.table.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(s.pageRows) {
		return ""
	}
	return s.pageRows[idx].SUPI()
}

// FocusSearch は検索欄にフォーカスを移す。
func (s *ListScreen) FocusSearch() {
	s.app.SetFocus(s.search)
}

// ClearSearch は検索語をクリアする。
func (s *ListScreen) ClearSearch() {
	s.search.SetText("")
}

func (s *ListScreen) setupSearch() {
	s.search.SetChangedFunc(func(text string) {
		s.catalog.SetSearchTerm(text)
		s.pagination.FirstPage()
		s.Render()
	})

	s.search.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if term := s.catalog.SearchTerm(); term != "" {
				s.auditLogger.LogSearch(term, len(s.catalog.Filtered()))
			}
		case tcell.KeyEsc:
			s.ClearSearch()
		}
		s.app.SetFocus(s.table)
	})
}

func (s *ListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			if s.catalog.SearchTerm() != "" {
				s.ClearSearch()
				return nil
			}
			call(s.onBack)
			return nil
		case ui.KeyCreate:
			call(s.onCreate)
			return nil
		case ui.KeyEdit, tcell.KeyEnter:
			s.withSelected(s.onEdit)
			return nil
		case ui.KeyDelete:
			s.withSelected(s.onDelete)
			return nil
		case ui.KeyReload:
			call(s.onReload)
			return nil
		case tcell.KeyPgUp:
			if s.pagination.PrevPage() {
				s.Render()
			}
			return nil
		case tcell.KeyPgDn:
			if s.pagination.NextPage() {
				s.Render()
			}
			return nil
		}

		switch event.Rune() {
		case ui.RuneCreate:
			call(s.onCreate)
			return nil
		case ui.RuneEdit:
			s.withSelected(s.onEdit)
			return nil
		case ui.RuneDelete:
			s.withSelected(s.onDelete)
			return nil
		case ui.RuneReload:
			call(s.onReload)
			return nil
		case ui.RuneGenerate:
			call(s.onGenerate)
			return nil
		case ui.RuneSearch:
			s.FocusSearch()
			return nil
		}

		return event
	})
}

func (s *ListScreen) withSelected(handler func(supi string)) {
	if supi := s.SelectedSUPI(); supi != "" && handler != nil {
		handler(supi)
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
