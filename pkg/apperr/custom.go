package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IndexError は配列要素アクセスの範囲外エラーを表す。
// errors.Is(err, ErrIndexOutOfRange) で検出できる。
type IndexError struct {
	Field  string // 配列フィールド名
	Index  int    // 指定されたインデックス
	Length int    // 操作時点の配列長
}

// Error はerrorインターフェースを実装する。
func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: field=%s, index=%d, length=%d",
		e.Field, e.Index, e.Length)
}

// Unwrap はErrIndexOutOfRangeを返す。
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// NewIndexError はIndexErrorを生成する。
func NewIndexError(field string, index, length int) *IndexError {
	return &IndexError{
		Field:  field,
		Index:  index,
		Length: length,
	}
}

// FieldError はフィールド操作の前提条件違反を表す。
type FieldError struct {
	Field string // 対象フィールド（パスまたは配列名）
	Cause error  // 前提条件違反のセンチネルエラー
}

// Error はerrorインターフェースを実装する。
func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: field=%s", e.Cause, e.Field)
}

// Unwrap は根本原因を返す。
func (e *FieldError) Unwrap() error {
	return e.Cause
}

// NewFieldError はFieldErrorを生成する。
func NewFieldError(field string, cause error) *FieldError {
	return &FieldError{
		Field: field,
		Cause: cause,
	}
}

// ValkeyError はValkeyとの操作エラーを表す。
type ValkeyError struct {
	Operation string // 操作名（GET, SET, DEL等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
