package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter tracks per-IP request budgets over a fixed window. It fronts
// the auth endpoints, where credential stuffing is the concern; game and
// gesture traffic is not limited.
type RateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.RWMutex
	rate    int
	window  time.Duration
}

type clientBucket struct {
	remaining   int
	windowStart time.Time
	mu          sync.Mutex
}

// NewRateLimiter allows rate requests per window for each client IP and
// starts the background eviction loop.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rate:    rate,
		window:  window,
	}
	go rl.evictIdle()
	return rl
}

// Allow reports whether a request from ip still fits its current window
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	bucket, ok := rl.clients[ip]
	if !ok {
		bucket = &clientBucket{
			remaining:   rl.rate,
			windowStart: time.Now(),
		}
		rl.clients[ip] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	if now.Sub(bucket.windowStart) >= rl.window {
		bucket.remaining = rl.rate
		bucket.windowStart = now
	}

	if bucket.remaining > 0 {
		bucket.remaining--
		return true
	}
	return false
}

// evictIdle drops buckets that have sat out two full windows, so one-off
// callers don't accumulate in the map
func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, bucket := range rl.clients {
			bucket.mu.Lock()
			if now.Sub(bucket.windowStart) > rl.window*2 {
				delete(rl.clients, ip)
			}
			bucket.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// GetClientIP resolves the caller's IP, preferring proxy headers when set
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
