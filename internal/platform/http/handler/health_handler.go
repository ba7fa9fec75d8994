// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthTimeout は依存先の疎通確認1回あたりの上限時間です。
const healthTimeout = 2 * time.Second

// PingFunc は依存先（ストア、キャッシュ）の疎通を確認します。
type PingFunc func(ctx context.Context) error

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	backend string
	checks  map[string]PingFunc
}

// NewHealthHandler はHealthHandlerを生成します。
// backend は使用中のストア名で、レスポンスにそのまま含めます。
// checks が空の場合は常に正常を返します。
func NewHealthHandler(backend string, checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{backend: backend, checks: checks}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// いずれかの依存先が応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, failed := http.StatusOK, h.failedChecks(c.Request.Context())
	if len(failed) > 0 {
		status = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}

	body := gin.H{"status": "ok", "store": h.backend}
	if len(failed) > 0 {
		body["status"] = "unavailable"
		body["failed"] = failed
	}
	c.JSON(status, body)
}

func (h *HealthHandler) failedChecks(ctx context.Context) []string {
	var failed []string
	for name, ping := range h.checks {
		pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		err := ping(pingCtx)
		cancel()
		if err != nil {
			slog.Warn("health check failed", "dependency", name, "error", err)
			failed = append(failed, name)
		}
	}
	return failed
}
