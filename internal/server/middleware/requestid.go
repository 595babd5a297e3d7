// Package middleware provides the HTTP middleware chain: request ids,
// panic recovery, request logging, rate limiting, and CORS.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/quizforge/quizforge/internal/errors"
)

// RequestIDHeader is the inbound/outbound request id header.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, honoring one supplied by the client.
// The id rides the request context and is echoed in the response header and
// error envelopes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(apperrors.WithRequestID(r.Context(), id)))
	})
}
