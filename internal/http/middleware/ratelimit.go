package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Endpoint weights for the limiter. A full prediction run or a batch
// analysis does far more work per request than a realtime keystroke probe,
// so they drain the bucket faster. Health and metrics probes are free so
// orchestrators can poll aggressively without starving real clients.
func requestCost(path string) float64 {
	switch {
	case path == "/predict":
		return 2
	case path == "/analyze/batch":
		return 2
	case strings.HasPrefix(path, "/analyze/"):
		return 1
	case path == "/health" || path == "/metrics":
		return 0
	default:
		return 1
	}
}

// visitor is one client's token bucket.
type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter applies weighted token-bucket limiting per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64 // tokens refilled per second
	burst    float64 // bucket capacity
}

// NewRateLimiter creates a limiter refilling rate tokens/sec into a bucket
// of the given burst capacity per IP.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    float64(burst),
	}
	go rl.evictIdle()
	return rl
}

// AllowN reports whether a request of the given cost fits the client's
// budget, draining the bucket when it does. Zero-cost requests always pass.
func (rl *RateLimiter) AllowN(ip string, cost float64) bool {
	if cost <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{tokens: rl.burst, lastSeen: now}
		rl.visitors[ip] = v
	}

	v.tokens += now.Sub(v.lastSeen).Seconds() * rl.rate
	if v.tokens > rl.burst {
		v.tokens = rl.burst
	}
	v.lastSeen = now

	if v.tokens < cost {
		return false
	}
	v.tokens -= cost
	return true
}

// Allow is AllowN with unit cost.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.AllowN(ip, 1)
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// per-IP budget with 429, weighting each request by its endpoint cost.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.AllowN(ip, requestCost(r.URL.Path)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
