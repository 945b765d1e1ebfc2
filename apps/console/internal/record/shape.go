package record

import (
	"maps"
	"slices"

	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// ErrShapeMismatch は要素の形状が配列の型と一致しない場合のエラー
var ErrShapeMismatch = apperr.ErrShapeMismatch

// 配列要素の形状定義
var itemShapes = map[string][]string{
	FieldConfiguredSlice: {"sd", "sst"},
	FieldDefaultSlice:    {"sd", "sst"},
	FieldProfiles:        {"privateKey", "publicKey", "scheme"},
	FieldSessions:        {"apn", "slice", "type"},
}

// SliceShape はSessionに埋め込まれたSliceの形状。
var SliceShape = []string{"sd", "sst"}

// ItemShape は配列フィールドの要素が持つキーをソート済みで返す。
// 要素がオブジェクトでない配列や未知の配列ではfalseを返す。
func ItemShape(field string) ([]string, bool) {
	shape, ok := itemShapes[field]
	if !ok {
		return nil, false
	}
	return slices.Clone(shape), true
}

// HasSubfield はfieldの要素がsubfieldを持つかどうかを返す。
// 形状が定義されていない配列では常にtrue。
func HasSubfield(field, subfield string) bool {
	shape, ok := itemShapes[field]
	if !ok {
		return true
	}
	_, found := slices.BinarySearch(shape, subfield)
	return found
}

// CheckItem はitemがfieldの要素形状と一致するかを検査する。
// 形状が定義されていない配列では何もしない。
func CheckItem(field string, item any) error {
	shape, ok := itemShapes[field]
	if !ok {
		return nil
	}
	obj, ok := AsObject(item)
	if !ok {
		return apperr.NewFieldError(field, ErrShapeMismatch)
	}
	if !slices.Equal(slices.Sorted(maps.Keys(obj)), shape) {
		return apperr.NewFieldError(field, ErrShapeMismatch)
	}
	if field == FieldSessions {
		slice, ok := AsObject(obj["slice"])
		if !ok || !slices.Equal(slices.Sorted(maps.Keys(slice)), SliceShape) {
			return apperr.NewFieldError(field+".slice", ErrShapeMismatch)
		}
	}
	return nil
}

// NewSlice は既定値のSlice要素を返す。
func NewSlice() map[string]any {
	return map[string]any{"sst": 0, "sd": ""}
}

// NewKeyProfile は既定値の鍵プロファイル要素を返す。
func NewKeyProfile() map[string]any {
	return map[string]any{"scheme": 0, "privateKey": "", "publicKey": ""}
}

// NewSession は既定値のSession要素を返す。
func NewSession() map[string]any {
	return map[string]any{"type": "", "apn": "", "slice": NewSlice()}
}

// DefaultItem はfieldに追加する既定値の要素を返す。
// 呼び出しごとに新しい値を返す。
func DefaultItem(field string) (any, bool) {
	switch field {
	case FieldConfiguredSlice, FieldDefaultSlice:
		return NewSlice(), true
	case FieldProfiles:
		return NewKeyProfile(), true
	case FieldSessions:
		return NewSession(), true
	case FieldGnbSearchList:
		return "", true
	default:
		return nil, false
	}
}
