// Package validation は入力値のバリデーションを提供する。
// 内容の検証はサービス側で行うため、ここでは必須チェックと数値変換のみを行う。
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// フィールド表示名
const (
	FieldUsername = "Username"
	FieldPassword = "Password"
	FieldSUPI     = "SUPI"
	FieldCount    = "Count"
)

// ValidateCredentials はユーザー名とパスワードの必須チェックを行う。
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return apperr.NewValidationError(FieldUsername, "required")
	}
	if password == "" {
		return apperr.NewValidationError(FieldPassword, "required")
	}
	return nil
}

// ValidateNewProfile は新規作成するUEプロファイルのSUPI必須チェックを行う。
func ValidateNewProfile(doc record.Document) error {
	if strings.TrimSpace(record.Identifier(doc)) == "" {
		return apperr.NewValidationError(FieldSUPI, "required")
	}
	return nil
}

// ParseGenerateCount は一括生成件数を解析する。
// 1以上config.MaxGenerateCount以下の整数のみ受け付ける。
func ParseGenerateCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperr.NewValidationError(FieldCount, "required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.NewValidationError(FieldCount, "must be an integer")
	}
	if n < 1 || n > config.MaxGenerateCount {
		return 0, apperr.NewValidationError(FieldCount, fmt.Sprintf("must be 1-%d", config.MaxGenerateCount))
	}
	return n, nil
}

// ParseIntField はフォームの数値入力を解析する。空文字は0として扱う。
func ParseIntField(label, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.NewValidationError(label, "must be an integer")
	}
	return n, nil
}
