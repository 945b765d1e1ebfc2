package api

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// APIパス
const (
	PathLogin    = "/login"
	PathLogout   = "/logout"
	PathRegister = "/register"
	PathProfiles = "/ue_profiles"
	PathGenerate = "/ue_profiles/generate"
)

// 更新リクエストから除外するキー
var updateExcludedKeys = []string{"supi", "id", "userId", "createdAt"}
