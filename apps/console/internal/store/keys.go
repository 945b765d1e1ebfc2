// Package store はログイン済み資格情報の保存層を提供する。
package store

// PrefixCredential は資格情報キーのプレフィックス
const PrefixCredential = "console:cred:"

// CredentialKey は資格情報のValkeyキーを生成する。
func CredentialKey(name string) string {
	return PrefixCredential + name
}
