package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID    = "trace_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
	FieldSUPI       = "supi"
	FieldUsername   = "username"
	FieldCount      = "count"
)

// イベントIDの定数
const (
	EventProfileCreate   = "PROFILE_CREATE"
	EventProfileUpdate   = "PROFILE_UPDATE"
	EventProfileDelete   = "PROFILE_DELETE"
	EventProfileGenerate = "PROFILE_GENERATE"
	EventAuthLogin       = "AUTH_LOGIN"
	EventAuthLogout      = "AUTH_LOGOUT"
	EventAuthRegister    = "AUTH_REGISTER"
	EventAPIError        = "API_ERR"
	EventCBOpen          = "CB_OPEN"
	EventCBHalfOpen      = "CB_HALF_OPEN"
	EventCBClose         = "CB_CLOSE"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// WithUsername はユーザー名のslog.Attrを返す。
func WithUsername(username string) slog.Attr {
	return slog.String(FieldUsername, username)
}

// WithCount は件数のslog.Attrを返す。
func WithCount(n int) slog.Attr {
	return slog.Int(FieldCount, n)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithSUPI はマスキングされたSUPIのslog.Attrを返す。
func (cf *CommonFields) WithSUPI(supi string) slog.Attr {
	return slog.String(FieldSUPI, cf.masker.SUPI(supi))
}

// ProfileLogFields はプロファイル操作ログ用の共通フィールドを返す。
func (cf *CommonFields) ProfileLogFields(traceID, eventID, supi string) []any {
	return []any{
		WithTraceID(traceID),
		WithEventID(eventID),
		cf.WithSUPI(supi),
	}
}
