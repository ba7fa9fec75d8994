// Package ratelimiter はクライアント単位の試行回数制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window はクライアント1件分の固定ウィンドウです。
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は、キー（クライアントIP等）ごとに interval あたり limit 回まで操作を許可します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow はkeyの試行を1回数え、上限以内であればtrueを返します。
// 上限を超えた場合はウィンドウがリセットされるまでの残り時間も返します。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
		rl.sweep(now)
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	return true, 0
}

// sweep は期限切れのウィンドウを削除します。呼び出し側でロックを保持すること。
// 走査は interval に1回までです。
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware はクライアントIPごとに試行回数を制限するGinミドルウェアを返します。
// 上限を超えたリクエストには429とRetry-Afterを返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := rl.Allow(c.ClientIP())
		if !ok {
			slog.Warn("rate limit exceeded", "path", c.FullPath(), "remote_addr", c.ClientIP(), "retry_after", wait)
			c.Header("Retry-After", formatSeconds(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}

func formatSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return strconv.Itoa(max(secs, 1))
}
