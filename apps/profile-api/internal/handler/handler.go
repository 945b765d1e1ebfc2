// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvdund/ueprofiles/apps/profile-api/internal/config"
	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/httputil"
	"github.com/lvdund/ueprofiles/pkg/logging"
	"github.com/lvdund/ueprofiles/pkg/model"
)

// コンテキストキー
const (
	// TraceIDKey はコンテキストにTraceIDを格納するキー。
	TraceIDKey = "trace_id"
	// OwnerKey は認証済みユーザー名を格納するキー。
	OwnerKey = "owner"
	// TokenKey は認証に使ったトークンを格納するキー。
	TokenKey = "token"
)

// ProfileRepository はUEプロファイルの永続化インターフェース。
type ProfileRepository interface {
	List(ctx context.Context, owner string) ([]*model.UEProfile, error)
	Get(ctx context.Context, owner, supi string) (*model.UEProfile, error)
	Create(ctx context.Context, owner string, profiles []*model.UEProfile) error
	Update(ctx context.Context, owner, supi string, fields map[string]any) (*model.UEProfile, error)
	Delete(ctx context.Context, owner, supi string) error
}

// UserRepository はアカウントの永続化インターフェース。
type UserRepository interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// TokenRepository はBearerトークンの永続化インターフェース。
type TokenRepository interface {
	Issue(ctx context.Context, username string) (*model.AuthToken, error)
	Resolve(ctx context.Context, token string) (*model.AuthToken, error)
	Revoke(ctx context.Context, token string) error
}

// ProfileGenerator はランダムなUEプロファイルを生成する。
type ProfileGenerator interface {
	Generate(n int) ([]*model.UEProfile, error)
}

// Handler はUEプロファイルAPIのハンドラー。
type Handler struct {
	profiles  ProfileRepository
	users     UserRepository
	tokens    TokenRepository
	generator ProfileGenerator
	cfg       *config.Config
	fields    *logging.CommonFields
}

// New は新しいHandlerを生成する。
func New(
	profiles ProfileRepository,
	users UserRepository,
	tokens TokenRepository,
	generator ProfileGenerator,
	cfg *config.Config,
) *Handler {
	return &Handler{
		profiles:  profiles,
		users:     users,
		tokens:    tokens,
		generator: generator,
		cfg:       cfg,
		fields:    logging.NewCommonFields(logging.NewMasker(cfg.LogMaskSUPI)),
	}
}

// Tokens はトークンリポジトリを返す。認証ミドルウェアが使う。
func (h *Handler) Tokens() TokenRepository {
	return h.tokens
}

// HandleHealth はGET /health のハンドラー。
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// problemFor はエラーをProblemDetailに変換する。
func problemFor(err error) *httputil.ProblemDetail {
	switch {
	case errors.Is(err, apperr.ErrSUPIRequired),
		errors.Is(err, apperr.ErrImmutableKey),
		errors.Is(err, apperr.ErrInvalidProfile):
		return httputil.BadRequest(err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return httputil.Unauthorized("Invalid credentials")
	case errors.Is(err, apperr.ErrTokenNotFound):
		return httputil.Unauthorized("Invalid or expired token")
	case errors.Is(err, apperr.ErrProfileNotFound),
		errors.Is(err, apperr.ErrUserNotFound):
		return httputil.NotFound(err.Error())
	case errors.Is(err, apperr.ErrProfileExists),
		errors.Is(err, apperr.ErrUserExists):
		return httputil.Conflict(err.Error())
	case errors.Is(err, apperr.ErrValkeyConnection):
		return httputil.ServiceUnavailable("Storage unavailable")
	default:
		return httputil.InternalServerError("An unexpected error occurred")
	}
}

// writeError はエラーレスポンスを書き込み、ログを出力する。
// 5xxはError、4xxはWarnで記録する。
func (h *Handler) writeError(c *gin.Context, eventID string, err error, attrs ...any) {
	problem := problemFor(err)
	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	args := append([]any{
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(eventID),
		logging.WithHTTPStatus(problem.Status),
		logging.WithError(err),
	}, attrs...)
	slog.Log(c.Request.Context(), level, "request failed", args...)
	httputil.WriteError(c, problem)
}

// badRequest は入力エラーのレスポンスを書き込む。
func (h *Handler) badRequest(c *gin.Context, eventID, detail string) {
	slog.Warn("invalid request",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(eventID),
		"detail", detail,
	)
	httputil.WriteError(c, httputil.BadRequest(detail))
}
