package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/baharkarakas/credits-leaderboard/internal/api/httpx"
)

// tokenBucket is a single process-wide bucket refilled at rate tokens/second.
type tokenBucket struct {
	mu     sync.Mutex
	tokens int
	last   time.Time
	rate   int
	burst  int
	now    func() time.Time
}

func newTokenBucket(rps int, now func() time.Time) *tokenBucket {
	return &tokenBucket{tokens: rps, last: now(), rate: rps, burst: rps, now: now}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := tb.now()
	if refill := int(now.Sub(tb.last).Seconds() * float64(tb.rate)); refill > 0 {
		tb.tokens = min(tb.tokens+refill, tb.burst)
		tb.last = now
	}
	if tb.tokens == 0 {
		return false
	}
	tb.tokens--
	return true
}

func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	tb := newTokenBucket(rps, time.Now)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tb.allow() {
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
