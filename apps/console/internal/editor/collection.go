package editor

import (
	"slices"

	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// Len はfieldの要素数を返す。配列でない場合は0。
func (s *Store) Len(field string) int {
	items, err := s.items(field)
	if err != nil {
		return 0
	}
	return len(items)
}

// Items はfieldの要素のコピーを返す。
func (s *Store) Items(field string) []any {
	items, err := s.items(field)
	if err != nil {
		return nil
	}
	return slices.Clone(items)
}

// AddItem はfieldの末尾にitemを追加する。
// fieldが存在しない場合は空の配列として扱う。
func (s *Store) AddItem(field string, item any) error {
	p, items, err := s.collection(field)
	if err != nil {
		return err
	}
	if err := record.CheckItem(field, item); err != nil {
		return err
	}

	next := make([]any, len(items), len(items)+1)
	copy(next, items)
	next = append(next, item)
	s.current = record.Set(s.current, p, next)
	return nil
}

// AddDefaultItem はfieldの既定値の要素を末尾に追加する。
func (s *Store) AddDefaultItem(field string) error {
	item, ok := record.DefaultItem(field)
	if !ok {
		return apperr.NewFieldError(field, ErrShapeMismatch)
	}
	return s.AddItem(field, item)
}

// UpdateItemField はfield[index]のsubfieldをvに設定する。
// subfieldが空文字列の場合は要素そのものをvで置き換える。
func (s *Store) UpdateItemField(field string, index int, subfield string, v any) error {
	p, items, err := s.collection(field)
	if err != nil {
		return err
	}
	if err := checkIndex(field, index, items); err != nil {
		return err
	}

	var elem any
	if subfield == "" {
		if err := record.CheckItem(field, v); err != nil {
			return err
		}
		elem = v
	} else {
		if field == record.FieldSessions && subfield == "slice" {
			return apperr.NewFieldError(field+".slice", ErrUseSessionSlice)
		}
		obj, ok := record.AsObject(items[index])
		if !ok {
			return apperr.NewFieldError(field, ErrNotAnObject)
		}
		if !record.HasSubfield(field, subfield) {
			return apperr.NewFieldError(field+"."+subfield, ErrShapeMismatch)
		}
		elem = withKey(obj, subfield, v)
	}

	next := slices.Clone(items)
	next[index] = elem
	s.current = record.Set(s.current, p, next)
	return nil
}

// ReplaceItem はfield[index]をvで置き換える。
func (s *Store) ReplaceItem(field string, index int, v any) error {
	return s.UpdateItemField(field, index, "", v)
}

// RemoveItem はfield[index]を削除する。他の要素の順序は保持される。
func (s *Store) RemoveItem(field string, index int) error {
	p, items, err := s.collection(field)
	if err != nil {
		return err
	}
	if err := checkIndex(field, index, items); err != nil {
		return err
	}

	next := slices.Delete(slices.Clone(items), index, index+1)
	s.current = record.Set(s.current, p, next)
	return nil
}

// UpdateSessionSlice はsessions[index].sliceのsubfield（sstまたはsd）をvに設定する。
func (s *Store) UpdateSessionSlice(index int, subfield string, v any) error {
	if !slices.Contains(record.SliceShape, subfield) {
		return apperr.NewFieldError(record.FieldSessions+".slice."+subfield, ErrShapeMismatch)
	}
	p, items, err := s.collection(record.FieldSessions)
	if err != nil {
		return err
	}
	if err := checkIndex(record.FieldSessions, index, items); err != nil {
		return err
	}

	session, ok := record.AsObject(items[index])
	if !ok {
		return apperr.NewFieldError(record.FieldSessions, ErrNotAnObject)
	}
	slice, ok := record.AsObject(session["slice"])
	if !ok {
		slice = record.NewSlice()
	}

	next := slices.Clone(items)
	next[index] = withKey(session, "slice", withKey(slice, subfield, v))
	s.current = record.Set(s.current, p, next)
	return nil
}

// collection はfieldのパスと現在の要素を返す。
func (s *Store) collection(field string) (record.Path, []any, error) {
	p, err := s.writablePath(field)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.items(field)
	if err != nil {
		return nil, nil, err
	}
	return p, items, nil
}

func (s *Store) items(field string) ([]any, error) {
	p, err := record.ParsePath(field)
	if err != nil {
		return nil, err
	}
	v, ok := record.Get(s.current, p)
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := record.AsSequence(v)
	if !ok {
		return nil, apperr.NewFieldError(field, ErrNotASequence)
	}
	return items, nil
}

func checkIndex(field string, index int, items []any) error {
	if index < 0 || index >= len(items) {
		return apperr.NewIndexError(field, index, len(items))
	}
	return nil
}

// withKey はobjのシャローコピーにkey=vを設定して返す。
func withKey(obj map[string]any, key string, v any) map[string]any {
	out := make(map[string]any, len(obj)+1)
	for k, val := range obj {
		out[k] = val
	}
	out[key] = v
	return out
}
