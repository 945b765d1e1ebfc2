// Package record はUEプロファイルの編集用ドキュメントとフィールドパスを提供する。
package record

import (
	"strings"

	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// ErrInvalidPath は不正なフィールドパスのエラー
var ErrInvalidPath = apperr.ErrInvalidPath

// Path はドキュメント内のフィールド位置を表す。
// 実装はLeafとNestedのみ。
type Path interface {
	// Key は先頭のキーを返す。
	Key() string
	// String はドット区切りの文字列表現を返す。
	String() string

	isPath()
}

// Leaf は末端のキーを表す。
type Leaf struct {
	Name string
}

// Key は先頭のキーを返す。
func (l Leaf) Key() string { return l.Name }

// String はドット区切りの文字列表現を返す。
func (l Leaf) String() string { return l.Name }

func (Leaf) isPath() {}

// Nested は中間のキーと残りのパスを表す。
type Nested struct {
	Name string
	Rest Path
}

// Key は先頭のキーを返す。
func (n Nested) Key() string { return n.Name }

// String はドット区切りの文字列表現を返す。
func (n Nested) String() string { return n.Name + "." + n.Rest.String() }

func (Nested) isPath() {}

// ParsePath はドット区切りの文字列をPathに変換する。
// 空文字列や空セグメントを含む場合はErrInvalidPathを返す。
func ParsePath(s string) (Path, error) {
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, apperr.NewFieldError(s, ErrInvalidPath)
		}
	}

	var p Path = Leaf{Name: segments[len(segments)-1]}
	for i := len(segments) - 2; i >= 0; i-- {
		p = Nested{Name: segments[i], Rest: p}
	}
	return p, nil
}

// MustParsePath はParsePathと同じだが、失敗した場合はパニックする。
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Set はpの位置にvを設定した新しいドキュメントを返す。
// 経路上の各階層はコピーされ、docは変更されない。
// 中間キーが存在しないかオブジェクトでない場合は空のオブジェクトで置き換える。
func Set(doc Document, p Path, v any) Document {
	return Document(setIn(doc, p, v))
}

func setIn(m map[string]any, p Path, v any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, val := range m {
		out[k] = val
	}

	switch p := p.(type) {
	case Leaf:
		out[p.Name] = v
	case Nested:
		child, ok := AsObject(m[p.Name])
		if !ok {
			child = map[string]any{}
		}
		out[p.Name] = setIn(child, p.Rest, v)
	}
	return out
}

// Get はpの位置の値を返す。
// 経路上のいずれかが存在しない場合はfalseを返す。
func Get(doc Document, p Path) (any, bool) {
	var cur map[string]any = doc
	for {
		v, ok := cur[p.Key()]
		if !ok {
			return nil, false
		}
		n, nested := p.(Nested)
		if !nested {
			return v, true
		}
		cur, ok = AsObject(v)
		if !ok {
			return nil, false
		}
		p = n.Rest
	}
}

// AsObject はvがJSONオブジェクト相当であればmapとして返す。
func AsObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case Document:
		return o, true
	default:
		return nil, false
	}
}
