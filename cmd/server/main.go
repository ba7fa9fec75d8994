package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"tuishare_backend/internal/app/di"
	"tuishare_backend/internal/app/router"
	"tuishare_backend/internal/platform/config"
	infraredis "tuishare_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run はサーバーを起動し、終了時に開いたリソースを閉じます。
func run() error {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	setupLogger(cfg)

	ctx := context.Background()

	// ストア
	backend, err := di.OpenBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s account store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			slog.Error("failed to close account store", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	handlers, err := di.NewHandlers(ctx, cfg, backend, rdb)
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Login and /me will fail until a secret is configured.")
	}

	r := router.NewRouter(handlers, cfg.JWTSecret)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "backend", cfg.StoreBackend)
	return r.Run(":" + cfg.Port)
}

// setupLogger は環境に応じたslogハンドラーを設定します。
// devではテキスト形式、それ以外ではJSON形式で出力します。
func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.AppEnv == "dev" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
