package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface は、外部API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter は固定ウィンドウ方式で呼び出し回数を制限します。
// 公開APIのレートリミット（CoinGecko等）を超えないために使用します。
type RateLimiter struct {
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time
}

// NewRateLimiter は新しい RateLimiter のインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded はレートリミットの上限に達しているかを確認し、必要であれば待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Info("rate limit hit, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
