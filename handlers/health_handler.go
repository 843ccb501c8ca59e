package handlers

import (
	"net/http"
	"time"

	"github.com/sprachlab/event-gateway/services/dispatch"
	"github.com/sprachlab/event-gateway/services/store"
	"github.com/sprachlab/event-gateway/utils"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles liveness and readiness checks.
type HealthHandler struct {
	store      *store.Memory
	dispatcher *dispatch.Dispatcher
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st *store.Memory, d *dispatch.Dispatcher) *HealthHandler {
	return &HealthHandler{
		store:      st,
		dispatcher: d,
	}
}

// HandleHealth handles GET /healthz. Always 200 while the process runs.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz. The gateway has no external
// dependency that gates readiness (Kafka, when enabled, degrades to
// log-only rather than blocking), so this reports the wiring state.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"store":    "ok",
		"dispatch": h.dispatcher.Mode(),
	}

	_ = utils.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
