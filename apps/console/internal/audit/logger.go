// Package audit は監査ログ機能を提供する。
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lvdund/ueprofiles/pkg/logging"
)

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	// OpCreate は作成操作
	OpCreate Operation = "create"
	// OpUpdate は更新操作
	OpUpdate Operation = "update"
	// OpDelete は削除操作
	OpDelete Operation = "delete"
	// OpGenerate は一括生成操作
	OpGenerate Operation = "generate"
	// OpExport はエクスポート操作
	OpExport Operation = "export"
	// OpSearch は検索操作
	OpSearch Operation = "search"
	// OpLogin はログイン操作
	OpLogin Operation = "login"
	// OpLogout はログアウト操作
	OpLogout Operation = "logout"
	// OpRegister はアカウント登録操作
	OpRegister Operation = "register"
)

// TargetType は監査ログの対象種別を表す。
type TargetType string

const (
	// TargetProfile はUEプロファイル
	TargetProfile TargetType = "ue_profile"
	// TargetAccount は管理者アカウント
	TargetAccount TargetType = "account"
)

// Entry は監査ログエントリを表す。
type Entry struct {
	Time       string     `json:"time"`                  // RFC3339形式のタイムスタンプ
	Level      string     `json:"level"`                 // ログレベル（常に"INFO"）
	App        string     `json:"app"`                   // アプリケーション名（常に"console"）
	EventID    string     `json:"event_id"`              // イベントID（常に"AUDIT_LOG"）
	Msg        string     `json:"msg"`                   // メッセージ
	Operation  Operation  `json:"operation"`             // 操作種別
	TargetType TargetType `json:"target_type"`           // 対象種別
	TargetKey  string     `json:"target_key"`            // 対象キー
	TargetSUPI string     `json:"target_supi,omitempty"` // 対象SUPI（該当時のみ、マスキング適用）
	AdminUser  string     `json:"admin_user"`            // 管理者ユーザー
	Details    string     `json:"details,omitempty"`     // 追加詳細情報
}

// ProfileCollectionKey はUEプロファイル操作の対象キー
const ProfileCollectionKey = "ue_profiles"

// Logger は監査ログを出力する。
type Logger struct {
	writer    io.Writer
	masker    *logging.Masker
	adminUser string
	mu        sync.Mutex
}

// NewLogger は標準出力に書き込むLoggerを生成する。
func NewLogger(adminUser string) *Logger {
	return NewLoggerWithWriter(os.Stdout, adminUser)
}

// NewLoggerWithWriter は指定されたWriterを使用するLoggerを生成する。
func NewLoggerWithWriter(writer io.Writer, adminUser string) *Logger {
	return &Logger{
		writer:    writer,
		masker:    logging.NewMasker(false),
		adminUser: adminUser,
	}
}

// SetMasker はSUPIのマスキング設定を変更する。
func (l *Logger) SetMasker(m *logging.Masker) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if m != nil {
		l.masker = m
	}
}

// SetAdminUser はログイン中のユーザー名を設定する。
func (l *Logger) SetAdminUser(user string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.adminUser = user
}

// Log は監査ログエントリを出力する。
func (l *Logger) Log(op Operation, targetType TargetType, targetKey, targetSUPI, msg string) {
	l.LogWithDetails(op, targetType, targetKey, targetSUPI, msg, "")
}

// LogWithDetails は詳細情報付きで監査ログエントリを出力する。
// nilのLoggerでは何もしない。
func (l *Logger) LogWithDetails(op Operation, targetType TargetType, targetKey, targetSUPI, msg, details string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Time:       time.Now().UTC().Format(time.RFC3339),
		Level:      "INFO",
		App:        "console",
		EventID:    "AUDIT_LOG",
		Msg:        msg,
		Operation:  op,
		TargetType: targetType,
		TargetKey:  targetKey,
		TargetSUPI: l.masker.SUPI(targetSUPI),
		AdminUser:  l.adminUser,
		Details:    details,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = l.writer.Write(append(data, '\n'))
}

// LogCreate はCREATE操作のログを出力する。
func (l *Logger) LogCreate(supi string) {
	l.Log(OpCreate, TargetProfile, ProfileCollectionKey, supi, "ue profile created")
}

// LogUpdate はUPDATE操作のログを出力する。
func (l *Logger) LogUpdate(supi string) {
	l.Log(OpUpdate, TargetProfile, ProfileCollectionKey, supi, "ue profile updated")
}

// LogDelete はDELETE操作のログを出力する。
func (l *Logger) LogDelete(supi string) {
	l.Log(OpDelete, TargetProfile, ProfileCollectionKey, supi, "ue profile deleted")
}

// LogGenerate は一括生成操作のログを出力する。
func (l *Logger) LogGenerate(count int) {
	l.LogWithDetails(OpGenerate, TargetProfile, ProfileCollectionKey, "", "ue profiles generated", fmt.Sprintf("count=%d", count))
}

// LogExport はEXPORT操作のログを出力する。
func (l *Logger) LogExport(count int, filename string) {
	l.LogWithDetails(OpExport, TargetProfile, filename, "", "ue profiles exported", fmt.Sprintf("count=%d", count))
}

// LogSearch はSEARCH操作のログを出力する。
func (l *Logger) LogSearch(query string, resultCount int) {
	l.LogWithDetails(OpSearch, TargetProfile, ProfileCollectionKey, "", "ue profiles searched", fmt.Sprintf("query=%s results=%d", query, resultCount))
}

// LogAccount はログイン・ログアウト・登録操作のログを出力する。
func (l *Logger) LogAccount(op Operation, username string) {
	l.Log(op, TargetAccount, username, "", "account "+string(op))
}
