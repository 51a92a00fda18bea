package handler

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Handler serves the process liveness and readiness endpoints.
type Handler struct {
	ready atomic.Bool
}

// New creates a Handler that reports not-ready until MarkReady is called.
func New() *Handler {
	return &Handler{}
}

// MarkReady flips the readiness probe to healthy, once the RESP
// listener is accepting connections and any configured RDB snapshot
// has finished loading.
func (h *Handler) MarkReady() {
	h.ready.Store(true)
}

// Health handles GET /healthz: liveness, always 200 once the process
// is running this handler at all.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /readyz: readiness, 503 until MarkReady has fired.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
