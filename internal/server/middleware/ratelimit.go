package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	apperrors "github.com/quizforge/quizforge/internal/errors"
)

// CodeRateLimited is the envelope code for throttled requests.
const CodeRateLimited = "RATE_LIMITED"

// RateLimit rejects requests beyond a sustained per-process rate. A nil
// limiter disables limiting.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				apperrors.WriteEnvelope(w, r, http.StatusTooManyRequests,
					CodeRateLimited, "request rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
