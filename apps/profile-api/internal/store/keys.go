// Package store はValkeyへのデータアクセスを提供する。
package store

// キープレフィックス
const (
	PrefixProfile      = "ue:"
	PrefixProfileIndex = "ue_idx:"
	PrefixProfileSeq   = "ue_seq:"
	PrefixUser         = "user:"
	PrefixToken        = "token:"
)

// ProfileKey はUEプロファイルのキーを生成する。
func ProfileKey(owner, supi string) string {
	return PrefixProfile + owner + ":" + supi
}

// ProfileIndexKey はオーナーごとの作成順インデックスのキーを生成する。
func ProfileIndexKey(owner string) string {
	return PrefixProfileIndex + owner
}

// ProfileSeqKey はインデックスのスコアに使う連番のキーを生成する。
func ProfileSeqKey(owner string) string {
	return PrefixProfileSeq + owner
}

// UserKey はアカウントのキーを生成する。
func UserKey(username string) string {
	return PrefixUser + username
}

// TokenKey はBearerトークンのキーを生成する。
func TokenKey(token string) string {
	return PrefixToken + token
}
