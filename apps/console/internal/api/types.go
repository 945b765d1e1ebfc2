package api

import "github.com/lvdund/ueprofiles/apps/console/internal/record"

// Session はログイン済みの資格情報を表す。
// 認証が必要な呼び出しには明示的に渡す。
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Valid はトークンを保持しているかどうかを返す。
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// credentialsRequest はlogin/registerのリクエストボディ
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse はloginのレスポンスボディ
type loginResponse struct {
	Token string `json:"token"`
}

// generateRequest は一括生成のリクエストボディ
type generateRequest struct {
	NumUEs int `json:"num_ues"`
}

// GenerateResponse は一括生成のレスポンスを表す。
type GenerateResponse struct {
	Message  string            `json:"message"`
	Profiles []record.Document `json:"ue_profiles"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// errorBody は {"error": "..."} 形式のエラーレスポンス
type errorBody struct {
	Error string `json:"error"`
}
