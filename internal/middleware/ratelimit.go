package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-IP limiter. Uploads are the only
// guarded route: each one costs disk writes and potentially a provider
// call, so a single client should not be able to spam them.
type RateLimiter struct {
	mu      sync.Mutex
	seen    map[string]*windowCount
	limit   int
	window  time.Duration
	nowFunc func() time.Time
}

type windowCount struct {
	count   int
	started time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		seen:    make(map[string]*windowCount),
		limit:   limit,
		window:  window,
		nowFunc: time.Now,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(window)
			rl.mu.Lock()
			for ip, wc := range rl.seen {
				if rl.nowFunc().Sub(wc.started) > window {
					delete(rl.seen, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()

	return rl
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFunc()
	wc, ok := rl.seen[ip]
	if !ok || now.Sub(wc.started) > rl.window {
		rl.seen[ip] = &windowCount{count: 1, started: now}
		return true
	}

	wc.count++
	return wc.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"Too many requests"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
