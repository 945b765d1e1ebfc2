package model

// User は管理コンソールのアカウントを表す。
// Valkeyキー: user:{Username}
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`          // bcryptハッシュ
	CreatedAt    string `json:"created_at"` // 作成日時（RFC3339形式）
}

// AuthToken はログインで発行されたBearerトークンを表す。
// Valkeyキー: token:{Token}
// TTL: TOKEN_TTL（既定24時間）
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IssuedAt int64  `json:"issued_at"` // 発行時刻（Unix秒）
}

// NewAuthToken は新しいAuthTokenを生成する。
func NewAuthToken(token, username string, issuedAt int64) *AuthToken {
	return &AuthToken{
		Token:    token,
		Username: username,
		IssuedAt: issuedAt,
	}
}
