// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a write exceeds the configured rate.
var ErrRateLimited = errors.New("write rate exceeded")

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithWriteLimit caps state-changing requests across all endpoints to limit
// per second with the given burst. A non-positive limit disables it.
func WithWriteLimit(limit float64, burst int) ServerOption {
	return func(s *Server) {
		if limit <= 0 {
			s.writeLimiter = nil
			return
		}
		s.writeLimiter = rate.NewLimiter(rate.Limit(limit), max(burst, 1))
	}
}

// RateLimitMiddleware rejects writes with 429 once limiter runs out of
// tokens. Reads always pass.
func RateLimitMiddleware(next http.HandlerFunc, limiter *rate.Limiter) http.HandlerFunc {
	if limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", NewKind("api.rate_limit", ErrRateLimited))
				return
			}
		}
		next(w, r)
	}
}
