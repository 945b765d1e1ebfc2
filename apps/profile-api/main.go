// Package main はUEプロファイルAPIのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lvdund/ueprofiles/apps/profile-api/internal/config"
	"github.com/lvdund/ueprofiles/apps/profile-api/internal/generator"
	"github.com/lvdund/ueprofiles/apps/profile-api/internal/handler"
	"github.com/lvdund/ueprofiles/apps/profile-api/internal/server"
	"github.com/lvdund/ueprofiles/apps/profile-api/internal/store"
	"github.com/lvdund/ueprofiles/pkg/logging"
	"github.com/lvdund/ueprofiles/pkg/valkey"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	slog.SetDefault(logging.NewJSONLogger(os.Stdout, cfg.LogLevel, "profile-api"))

	slog.Info("starting profile-api",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"max_generate", cfg.MaxGenerate,
	)

	// 3. Valkey接続
	valkeyClient, err := valkey.NewClient(context.Background(), valkey.ServiceOptions(cfg.RedisAddr(), cfg.RedisPass))
	if err != nil {
		slog.Error("failed to connect to Valkey", "addr", cfg.RedisAddr(), "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	// 4. 生成設定
	operatorCfg := generator.DefaultOperatorConfig()
	if cfg.OperatorConfig != "" {
		operatorCfg, err = generator.LoadOperatorConfig(cfg.OperatorConfig)
		if err != nil {
			slog.Error("failed to load operator config", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("operator config loaded",
		"mcc", operatorCfg.PlmnID.Mcc,
		"mnc", operatorCfg.PlmnID.Mnc,
		"file", cfg.OperatorConfig,
	)

	// 5. 依存オブジェクト生成
	h := handler.New(
		store.NewProfileStore(valkeyClient),
		store.NewUserStore(valkeyClient),
		store.NewTokenStore(valkeyClient, cfg.TokenTTL),
		generator.NewOperator(operatorCfg),
		cfg,
	)

	// 6. サーバー起動
	srv := server.New(cfg, h)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 7. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
