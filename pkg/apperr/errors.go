// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// レコード編集の前提条件違反エラー
// いずれも呼び出し側のプログラミングエラーであり、errors.Isで検出する。
var (
	// ErrInvalidPath は空セグメントを含むフィールドパスのエラー
	ErrInvalidPath = errors.New("invalid field path")
	// ErrIndexOutOfRange は配列インデックスが範囲外の場合のエラー
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotASequence は配列でないフィールドに配列操作を行った場合のエラー
	ErrNotASequence = errors.New("field is not a sequence")
	// ErrNotAnObject はオブジェクトでない要素にサブフィールドを設定した場合のエラー
	ErrNotAnObject = errors.New("element is not an object")
	// ErrShapeMismatch は要素の形状が配列の型と一致しない場合のエラー
	ErrShapeMismatch = errors.New("item shape mismatch")
	// ErrImmutableField は作成後に変更できないフィールドへの書き込みエラー
	ErrImmutableField = errors.New("field is immutable")
)

// プロファイル関連エラー
var (
	// ErrProfileNotFound はUEプロファイルが見つからない場合のエラー
	ErrProfileNotFound = errors.New("UE profile not found")
	// ErrProfileExists は同一SUPIのUEプロファイルが既に存在する場合のエラー
	ErrProfileExists = errors.New("UE profile already exists")
	// ErrSUPIRequired はSUPI未指定エラー
	ErrSUPIRequired = errors.New("SUPI is required")
	// ErrInvalidProfile はUEプロファイルの内容が型に合わない場合のエラー
	ErrInvalidProfile = errors.New("invalid UE profile")
	// ErrImmutableKey は更新できないキー（supi, userId）を含む更新のエラー
	ErrImmutableKey = errors.New("key cannot be updated")
)

// 認証関連エラー
var (
	// ErrUserNotFound はユーザーが見つからない場合のエラー
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists はユーザーが既に存在する場合のエラー
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials はユーザー名またはパスワード不一致エラー
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTokenNotFound はトークンが無効または失効済みの場合のエラー
	ErrTokenNotFound = errors.New("token not found or revoked")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
)

// IsPrecondition は前提条件違反エラーかどうかを判定する。
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrInvalidPath) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrNotASequence) ||
		errors.Is(err, ErrNotAnObject) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrImmutableField)
}
