package record

import (
	"encoding/json"
	"fmt"

	"github.com/lvdund/ueprofiles/pkg/model"
)

// Document は編集中のUEプロファイルを表す。
// JSONをデコードしたオブジェクトをそのまま保持するため、未知のフィールドも失われない。
type Document map[string]any

// フィールド名定義
const (
	FieldSUPI             = "supi"
	FieldSUCI             = "suci"
	FieldCreatedAt        = "createdAt"
	FieldConfiguredSlice  = "configuredSlice"
	FieldDefaultSlice     = "defaultSlice"
	FieldGnbSearchList    = "gnbSearchList"
	FieldProfiles         = "profiles"
	FieldSessions         = "sessions"
	FieldOpType           = "opType"
	FieldProtectionScheme = "protectionScheme"
)

// Blank は全フィールドを既定値で埋めた新規作成用ドキュメントを返す。
func Blank() Document {
	doc, err := FromProfile(model.NewUEProfile(""))
	if err != nil {
		panic(err)
	}
	return doc
}

// FromProfile はUEProfileをドキュメントに変換する。
func FromProfile(p *model.UEProfile) (Document, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return Decode(data)
}

// ToProfile はドキュメントをUEProfileに変換する。
// 配列フィールドは空スライスに正規化される。
func ToProfile(doc Document) (*model.UEProfile, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var p model.UEProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// Decode はJSONオブジェクトをドキュメントにデコードする。
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// Identifier はSUPIを返す。未設定の場合は空文字列。
func Identifier(doc Document) string {
	s, _ := doc[FieldSUPI].(string)
	return s
}

// CreatedAt はサーバーが付与した作成日時を返す。未設定の場合は空文字列。
func CreatedAt(doc Document) string {
	s, _ := doc[FieldCreatedAt].(string)
	return s
}

// String はpathの値を文字列として返す。
func String(doc Document, path string) string {
	v, ok := lookup(doc, path)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int はpathの値を整数として返す。数値でない場合は0。
func Int(doc Document, path string) int {
	v, _ := lookup(doc, path)
	n, _ := AsInt(v)
	return n
}

// Bool はpathの値を真偽値として返す。
func Bool(doc Document, path string) bool {
	v, _ := lookup(doc, path)
	b, _ := v.(bool)
	return b
}

// Items はpathの配列を返す。配列でない場合はnil。
func Items(doc Document, path string) []any {
	v, _ := lookup(doc, path)
	items, _ := AsSequence(v)
	return items
}

// AsInt はJSON数値をintに変換する。
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

// AsSequence はvが配列であれば[]anyとして返す。
// 型付きスライスは要素をコピーした[]anyに変換する。
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		return toAny(s), true
	case []map[string]any:
		return toAny(s), true
	case []Document:
		return toAny(s), true
	default:
		return nil, false
	}
}

func toAny[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func lookup(doc Document, path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	return Get(doc, p)
}
