// Package profile はUEプロファイルの一覧画面と編集画面を提供する。
package profile

import (
	"fmt"

	"github.com/lvdund/ueprofiles/apps/console/internal/catalog"
	"github.com/lvdund/ueprofiles/apps/console/internal/format"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
)

// Columns は一覧のカラム見出し
var Columns = []string{"SUPI", "SUCI", "PLMN", "OP Type", "Key", "Created"}

// suciWidth はSUCIカラムの最大表示幅
const suciWidth = 32

// Row は一覧の1行を表す。Recordがnilの行はグループ見出し。
type Row struct {
	Label  string
	Count  int
	Record record.Document
}

// IsHeader はグループ見出し行かどうかを返す。
func (r Row) IsHeader() bool {
	return r.Record == nil
}

// SUPI はレコード行のSUPIを返す。
func (r Row) SUPI() string {
	if r.IsHeader() {
		return ""
	}
	return record.Identifier(r.Record)
}

// BuildRows はグループを見出し行とレコード行の並びに展開する。
func BuildRows(groups []catalog.Group) []Row {
	var rows []Row
	for _, g := range groups {
		rows = append(rows, Row{Label: g.Label, Count: len(g.Records)})
		for _, doc := range g.Records {
			rows = append(rows, Row{Label: g.Label, Record: doc})
		}
	}
	return rows
}

// Cells はレコード行の表示値を返す。
func Cells(doc record.Document) []string {
	plmn := record.String(doc, "plmnid.mcc") + "-" + record.String(doc, "plmnid.mnc")
	if plmn == "-" {
		plmn = ""
	}
	return []string{
		record.Identifier(doc),
		format.Truncate(record.String(doc, record.FieldSUCI), suciWidth),
		plmn,
		record.String(doc, record.FieldOpType),
		format.KeySummary(record.String(doc, "key")),
		format.Created(record.CreatedAt(doc)),
	}
}

// HeaderText はグループ見出し行の表示テキストを返す。
func HeaderText(r Row) string {
	return fmt.Sprintf("▼ %s (%d)", r.Label, r.Count)
}
