package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/rate"
)

// clientIP extracts the client IP, honoring proxies.
func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateKeyFunc derives the limiter key for a request.
type RateKeyFunc func(r *http.Request) string

// IPRateKey keys by client IP and path.
func IPRateKey(r *http.Request) string {
	return clientIP(r) + "|" + r.URL.Path
}

// UserRateKey keys by authenticated user when available, falling back to
// IP. Use after RequireAuth for per-user limits on the switch endpoint.
func UserRateKey(r *http.Request) string {
	if u := GetUser(r.Context()); u != nil {
		return "u:" + u.ID + "|" + r.URL.Path
	}
	return IPRateKey(r)
}

// RateLimitConfig configures WithRateLimit.
type RateLimitConfig struct {
	Limiter rate.Limiter
	KeyFunc RateKeyFunc
}

// WithRateLimit enforces a fixed-window limit. A nil limiter disables the
// middleware; limiter errors fail open (the provider outage must not take
// the API down with it) but are logged.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := cfg.Limiter.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter error", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if res.WindowTTL > 0 {
				resetAt := time.Now().Add(res.WindowTTL).Unix()
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))
			}

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				}
				httperrors.WriteError(w, httperrors.ErrRateLimitExceeded)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}
