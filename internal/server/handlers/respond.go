// Package handlers implements the HTTP handlers for the job, upload,
// extraction, and invocation surfaces.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteFlatError writes the jobs surface's compatibility error shape:
// {"error": <message>, ...extra}. Infrastructure errors elsewhere use the
// structured envelope in internal/errors instead.
func WriteFlatError(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{"error": message}
	for k, v := range extra {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// DecodeBody parses the request body as a JSON object. A missing or
// malformed body yields an empty map, not an error: classification decides
// acceptability downstream, mirroring the submission contract.
func DecodeBody(r *http.Request) map[string]any {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

// DecodeJSON strictly decodes the body into dst, writing a 400 on failure.
// Returns false when the response has been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteFlatError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return false
	}
	return true
}
