package api

import (
	"net"
	"net/http"

	"github.com/devflowhq/devflow-server/internal/ratelimit"
)

// RateLimitMiddleware rejects requests with 429 once a client's bucket
// is drained. Clients are keyed by IP.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger interface{ Warn(msg string, args ...any) }) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !limiter.Allow(ip) {
				logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"Too many requests. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the connection address without the port. Forwarded
// headers are NOT consulted here: middleware.RealIP has already folded
// them into RemoteAddr, and reading them again would let a client pick
// its own bucket key with an arbitrary header.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
