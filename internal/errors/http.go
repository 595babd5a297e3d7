package errors

import (
	"context"
	"encoding/json"
	"net/http"
)

// HTTPError is the inner object of the HTTP error envelope.
type HTTPError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HTTPErrorResponse is the JSON envelope for error responses.
type HTTPErrorResponse struct {
	Error HTTPError `json:"error"`
}

type contextKey string

// requestIDKey carries the request id assigned by the RequestID middleware.
const requestIDKey contextKey = "request_id"

// WithRequestID stores a request id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id, or "" when none was assigned.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RespondWithError classifies err and writes the JSON envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := Classify(err)
	WriteEnvelope(w, r, appErr.Status, appErr.Code, appErr.Message)
}

// WriteEnvelope writes an error envelope with an explicit status and code.
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := HTTPErrorResponse{Error: HTTPError{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	}}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
