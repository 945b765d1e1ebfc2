// Package server はHTTPサーバーの管理を提供する。
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvdund/ueprofiles/apps/profile-api/internal/config"
	"github.com/lvdund/ueprofiles/apps/profile-api/internal/handler"
)

// Server はHTTPサーバーを管理する。
type Server struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.Config
}

// New は新しいServerを生成する。
func New(cfg *config.Config, h *handler.Handler) *Server {
	// Ginモード設定
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	metrics := NewMetrics()

	// ミドルウェア登録
	engine.Use(TraceIDMiddleware())
	engine.Use(LoggingMiddleware())
	engine.Use(metrics.Middleware())
	engine.Use(RecoveryMiddleware())

	// ルーティング
	SetupRouter(engine, h, metrics)

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		cfg: cfg,
	}
}

// Handler はルーティング済みのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はサーバーを起動する。
func (s *Server) Run() error {
	slog.Info("starting server", "addr", s.cfg.ListenAddr)
	return s.server.ListenAndServe()
}

// Shutdown はサーバーをシャットダウンする。
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")
	return s.server.Shutdown(ctx)
}
