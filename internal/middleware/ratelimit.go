package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/hongminglow/cost-manager/internal/http/respond"
)

// RateLimit rejects requests with 429 once the shared token bucket is empty.
// Preflight requests are not counted.
func RateLimit(rps float64, burst int, next http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions && !limiter.Allow() {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			respond.Message(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
