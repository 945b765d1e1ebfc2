package api

import (
	"errors"
	"fmt"
	"net/http"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidResponse はUEプロファイルAPIからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from profile api")

	// ErrNotAuthenticated はセッションなしで認証が必要なAPIを呼び出した場合のエラー
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError はサービスがリクエストを拒否したことを表す
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetails
}

func (e *APIError) Error() string {
	return fmt.Sprintf("profile api error: %d %s", e.StatusCode, e.Message)
}

// IsNotFound はUEプロファイル未登録エラーかどうかを判定する
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest はリクエスト不正エラーかどうかを判定する
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsUnauthorized は認証エラーかどうかを判定する
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsConflict は重複エラーかどうかを判定する
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// IsTransport は通信経路の障害によるエラーかどうかを判定する。
func IsTransport(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr) || errors.Is(err, ErrCircuitOpen)
}

// IsRejected はサービスがリクエストを拒否したエラーかどうかを判定する。
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
