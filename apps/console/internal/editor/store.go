// Package editor は編集中のUEプロファイルを保持するレコードストアを提供する。
//
// 全ての更新はコピーオンライトで行われ、Snapshotで取得した過去のドキュメントは変更されない。
// Storeは単一のゴルーチンから使用する。
package editor

import (
	"fmt"

	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// 前提条件違反エラー
var (
	ErrInvalidPath     = apperr.ErrInvalidPath
	ErrIndexOutOfRange = apperr.ErrIndexOutOfRange
	ErrNotASequence    = apperr.ErrNotASequence
	ErrNotAnObject     = apperr.ErrNotAnObject
	ErrShapeMismatch   = apperr.ErrShapeMismatch
	ErrImmutableField  = apperr.ErrImmutableField

	// ErrUseSessionSlice はSessionのsliceをUpdateItemFieldで更新しようとした場合のエラー
	ErrUseSessionSlice = fmt.Errorf("%w: session slice requires UpdateSessionSlice", apperr.ErrShapeMismatch)
)

// Store は編集中のUEプロファイルを保持する。
type Store struct {
	current    record.Document
	editing    bool
	identifier string
}

// NewStore は新規作成モードのStoreを生成する。
func NewStore() *Store {
	s := &Store{}
	s.Initialize(nil)
	return s
}

// Initialize は編集対象を置き換える。
// recが空の場合は既定値のドキュメントで新規作成モードになり、
// それ以外はrecをそのまま保持して編集モードになる。
func (s *Store) Initialize(rec record.Document) {
	if len(rec) == 0 {
		s.current = record.Blank()
		s.editing = false
		s.identifier = ""
		return
	}
	s.current = rec
	s.editing = true
	s.identifier = record.Identifier(rec)
}

// Snapshot は現在のドキュメントを返す。
// 以降の更新で返却済みのドキュメントが変更されることはない。
func (s *Store) Snapshot() record.Document {
	return s.current
}

// Editing は既存レコードの編集モードかどうかを返す。
func (s *Store) Editing() bool {
	return s.editing
}

// Identifier は初期化時のSUPIを返す。新規作成モードでは空文字列。
func (s *Store) Identifier() string {
	return s.identifier
}

// Draft は送信用に取り出したStoreの状態を表す。
// 取り出した後のStoreの更新はDraftに影響しない。
type Draft struct {
	Doc        record.Document
	Editing    bool
	Identifier string
}

// Draft は現在の状態をDraftとして返す。
func (s *Store) Draft() Draft {
	return Draft{Doc: s.current, Editing: s.editing, Identifier: s.identifier}
}

// Restore はDraftを取り出した時点の状態に戻す。
func (s *Store) Restore(d Draft) {
	s.current = d.Doc
	s.editing = d.Editing
	s.identifier = d.Identifier
}

// SetScalar はpathの値をvに設定する。
// 存在しないキーは作成される。編集モードでのsupiの変更はErrImmutableFieldを返す。
func (s *Store) SetScalar(path string, v any) error {
	p, err := s.writablePath(path)
	if err != nil {
		return err
	}
	s.current = record.Set(s.current, p, v)
	return nil
}

// SetFlag はチェックボックス入力によるpathの真偽値を設定する。
func (s *Store) SetFlag(path string, on bool) error {
	return s.SetScalar(path, on)
}

func (s *Store) writablePath(path string) (record.Path, error) {
	p, err := record.ParsePath(path)
	if err != nil {
		return nil, err
	}
	if s.editing && p.Key() == record.FieldSUPI {
		return nil, apperr.NewFieldError(path, ErrImmutableField)
	}
	return p, nil
}
