package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"resumelift/internal/errors"
)

// clientEvictionAge is how long a caller may be idle before its token
// bucket is discarded. Buckets refill continuously, so an evicted caller
// that returns simply starts from a fresh full bucket.
const clientEvictionAge = 10 * time.Minute

// RateLimiter applies a per-caller token bucket to incoming API requests.
// Callers are keyed by API key when one is presented and by client IP
// otherwise, so an abusive anonymous client cannot starve keyed callers.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	lastSeen map[string]time.Time
	perSec   rate.Limit
	burst    int
	done     chan struct{}
	logger   *errors.Logger
}

// NewRateLimiter builds a limiter allowing requestsPerMin sustained
// requests per caller with bursts up to burstCapacity. The window is the
// averaging period the sustained rate is spread over; when zero or
// negative it defaults to one minute. Idle callers are evicted in the
// background until Close is called.
func NewRateLimiter(requestsPerMin int, window time.Duration, burstCapacity int, logger *errors.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		perSec:   rate.Limit(float64(requestsPerMin) / window.Seconds()),
		burst:    burstCapacity,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go rl.evictLoop()
	return rl
}

// Allow reports whether the caller identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rl.perSec, rl.burst)
		rl.buckets[key] = bucket
	}
	rl.lastSeen[key] = time.Now()

	return bucket.Allow()
}

// Stats reports the limiter configuration and how many callers currently
// hold a bucket. Served by the stats endpoint.
func (rl *RateLimiter) Stats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]any{
		"activeCallers":     len(rl.buckets),
		"requestsPerSecond": float64(rl.perSec),
		"burstCapacity":     rl.burst,
	}
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(clientEvictionAge / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-clientEvictionAge)
	evicted := 0
	for key, seen := range rl.lastSeen {
		if seen.Before(cutoff) {
			delete(rl.buckets, key)
			delete(rl.lastSeen, key)
			evicted++
		}
	}

	if evicted > 0 && rl.logger != nil {
		rl.logger.Debug("Evicted idle rate limit buckets",
			"evicted", evicted,
			"remaining", len(rl.buckets))
	}
}

// Close stops the background eviction goroutine.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

// rateLimitMiddleware rejects requests over the caller's budget with 429.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.RateLimiter == nil {
			next(w, r)
			return
		}

		key := getRateLimitKey(r)
		if !s.RateLimiter.Allow(key) {
			s.Logger.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeErrorResponse(w, "Rate limit exceeded", "Rate limit exceeded, retry later", http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}

// getRateLimitKey derives the bucket key for a request. Authenticated
// callers are keyed by API key so their budget follows them across
// addresses; anonymous callers fall back to the client IP.
func getRateLimitKey(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return "api:" + apiKey
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return "api:" + strings.TrimPrefix(auth, "Bearer ")
	}
	return "ip:" + getClientIP(r)
}

// getClientIP resolves the originating client address, preferring
// proxy-set forwarding headers over the socket peer address.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP returns the first valid address from a comma-separated
// X-Forwarded-For chain, which lists the original client first.
func parseFirstIP(forwarded string) string {
	for part := range strings.SplitSeq(forwarded, ",") {
		candidate := strings.TrimSpace(part)
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}
	return ""
}
