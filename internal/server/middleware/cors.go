package middleware

import (
	"encoding/json"
	"net/http"
)

// Permissive CORS values. The public surface is a browser-called API behind
// its own gateway; origin restriction is the gateway's concern.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET,POST,OPTIONS"
	corsAllowHeaders = "content-type"
)

// CORS sets permissive cross-origin headers on every response and answers
// preflight OPTIONS requests directly with a small success body.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
			return
		}

		next.ServeHTTP(w, r)
	})
}
