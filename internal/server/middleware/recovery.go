package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/quizforge/quizforge/internal/errors"
	"github.com/quizforge/quizforge/internal/observability"
)

// ErrorResponse is the JSON envelope written for middleware-level failures.
type ErrorResponse = apperrors.HTTPErrorResponse

// Recovery converts handler panics into INTERNAL_ERROR responses instead of
// dropping the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.Logger.Error("handler panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))

				apperrors.WriteEnvelope(w, r, http.StatusInternalServerError,
					apperrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ErrorHandler is an alias for Recovery kept for call sites that read better
// with the generic name.
func ErrorHandler(next http.Handler) http.Handler {
	return Recovery(next)
}
