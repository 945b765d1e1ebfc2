// Package csv はUEプロファイルのCSVエクスポート機能を提供する。
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lvdund/ueprofiles/apps/console/internal/record"
)

// ProfileCSVHeader はUEプロファイルCSVのヘッダー行
var ProfileCSVHeader = []string{
	"supi", "suci", "mcc", "mnc", "op_type", "amf", "imei",
	"configured_slices", "sessions", "created_at",
}

// WriteProfileCSV はUEプロファイルをCSV形式で書き込む。
func WriteProfileCSV(w io.Writer, docs []record.Document) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(ProfileCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, doc := range docs {
		row := []string{
			record.Identifier(doc),
			record.String(doc, record.FieldSUCI),
			record.String(doc, "plmnid.mcc"),
			record.String(doc, "plmnid.mnc"),
			record.String(doc, record.FieldOpType),
			record.String(doc, "amf"),
			record.String(doc, "imei"),
			FormatSlices(record.Items(doc, record.FieldConfiguredSlice)),
			FormatSessions(record.Items(doc, record.FieldSessions)),
			record.CreatedAt(doc),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record for SUPI %s: %w", record.Identifier(doc), err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatSlices はS-NSSAIの配列を "sst:sd" の ";" 区切りで返す。
func FormatSlices(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, formatSlice(item))
	}
	return strings.Join(parts, ";")
}

// FormatSessions はPDUセッションの配列を "type/apn/sst:sd" の ";" 区切りで返す。
func FormatSessions(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := record.AsObject(item)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s/%s/%s", text(m["type"]), text(m["apn"]), formatSlice(m["slice"])))
	}
	return strings.Join(parts, ";")
}

func formatSlice(v any) string {
	m, ok := record.AsObject(v)
	if !ok {
		return ""
	}
	return text(m["sst"]) + ":" + text(m["sd"])
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	if n, ok := record.AsInt(v); ok {
		return fmt.Sprint(n)
	}
	return fmt.Sprint(v)
}
