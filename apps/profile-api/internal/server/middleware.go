package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lvdund/ueprofiles/apps/profile-api/internal/handler"
	"github.com/lvdund/ueprofiles/pkg/apperr"
	"github.com/lvdund/ueprofiles/pkg/httputil"
	"github.com/lvdund/ueprofiles/pkg/logging"
)

const (
	traceIDHeader = "X-Trace-ID"
	bearerPrefix  = "Bearer "
)

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。
// ヘッダがない場合は新しいUUIDを払い出す。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(handler.TraceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はリクエストログを出力する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Info("request completed",
			logging.WithTraceID(c.GetString(handler.TraceIDKey)),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logging.WithHTTPStatus(c.Writer.Status()),
			logging.WithLatency(time.Since(start).Milliseconds()),
		)
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					logging.WithTraceID(c.GetString(handler.TraceIDKey)),
					"error", err,
				)
				httputil.AbortWithError(c, httputil.InternalServerError("An unexpected error occurred"))
			}
		}()
		c.Next()
	}
}

// AuthMiddleware はBearerトークンを検証し、発行先ユーザーをコンテキストに格納する。
func AuthMiddleware(tokens handler.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			slog.Warn("missing bearer token",
				logging.WithTraceID(c.GetString(handler.TraceIDKey)),
				"path", c.Request.URL.Path,
			)
			httputil.AbortWithError(c, httputil.Unauthorized("Authorization header with Bearer token is required"))
			return
		}
		token = strings.TrimSpace(token)

		auth, err := tokens.Resolve(c.Request.Context(), token)
		if err != nil {
			slog.Warn("token rejected",
				logging.WithTraceID(c.GetString(handler.TraceIDKey)),
				logging.WithError(err),
			)
			problem := httputil.Unauthorized("Invalid or expired token")
			if !errors.Is(err, apperr.ErrTokenNotFound) {
				problem = httputil.ServiceUnavailable("Storage unavailable")
			}
			httputil.AbortWithError(c, problem)
			return
		}

		c.Set(handler.OwnerKey, auth.Username)
		c.Set(handler.TokenKey, token)
		c.Next()
	}
}
