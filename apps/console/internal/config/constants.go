package config

import "time"

// UEプロファイルAPI接続設定
const (
	APIRequestTimeout = 10 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "profile-api"
	CBMaxRequests      = 1
	CBInterval         = 0
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// 資格情報設定
const (
	// CredentialTTL はログイン資格情報の保持期間（サーバー側トークンTTLと同じ）
	CredentialTTL = 24 * time.Hour
)

// 一括生成の上限
const (
	MaxGenerateCount = 1000
)

// 処理タイムアウト
const (
	// OperationTimeout はTUIの1操作あたりの上限時間
	OperationTimeout = 30 * time.Second
)
