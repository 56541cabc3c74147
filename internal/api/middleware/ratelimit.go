package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ledgerline/taskboard-api/internal/api"
	"github.com/ledgerline/taskboard-api/internal/api/shared"
	"github.com/ledgerline/taskboard-api/internal/domain"
)

// RateLimiter enforces a per-client sliding window request limit. State is
// kept in process; limits apply per server instance.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	exempt  map[string]struct{}
	log     *slog.Logger
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window for
// each client IP. Paths in exemptPaths bypass the limiter entirely.
func NewRateLimiter(limit int, window time.Duration, exemptPaths []string, log *slog.Logger) *RateLimiter {
	if log == nil {
		log = slog.Default()
	}
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}
	return &RateLimiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		exempt:  exempt,
		log:     log.With(slog.String("component", "rate_limiter")),
		now:     time.Now,
	}
}

// Allow records a request for the client and reports whether it is within the
// limit. When the limit is exceeded it also returns the seconds until the
// oldest request leaves the window.
func (rl *RateLimiter) Allow(clientID string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.clients[clientID][:0]
	for _, t := range rl.clients[clientID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.clients[clientID] = recent
		retryAfter := int(recent[0].Sub(cutoff).Seconds()) + 1
		return false, retryAfter
	}

	rl.clients[clientID] = append(recent, now)
	return true, 0
}

// Handler returns the middleware enforcing the limit. Rejected requests get
// the standard 429 envelope with a retry_after detail.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := rl.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		clientID := clientIP(r)
		allowed, retryAfter := rl.Allow(clientID)
		if !allowed {
			rl.log.Warn("rate limit exceeded",
				slog.String("client_ip", clientID),
				slog.String("path", r.URL.Path),
				slog.Int("retry_after", retryAfter))
			status, detail := api.MapError(domain.NewRateLimitError(retryAfter))
			shared.RespondWithError(w, r, status, detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address. chi's RealIP middleware runs first
// and rewrites RemoteAddr from X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
