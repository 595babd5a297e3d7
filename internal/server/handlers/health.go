package handlers

import "net/http"

// Health handles GET /health. Liveness only: the service has no in-process
// state to probe, and store reachability is reported per-operation.
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
