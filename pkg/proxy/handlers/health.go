package handlers

import (
	"net/http"
	"time"

	"lumen-hq/hermes/pkg/proxy"
	"lumen-hq/hermes/pkg/proxy/types"
)

// HealthHandler handles GET /api/health. It reports liveness and process
// uptime; it has no dependencies and never fails.
type HealthHandler struct {
	startTime time.Time
	clock     func() time.Time
}

// NewHealthHandler creates a health handler anchored at the current time.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		clock:     time.Now,
	}
}

// NewHealthHandlerWithClock creates a health handler with an injected clock,
// used by tests for deterministic timestamps.
func NewHealthHandlerWithClock(clock func() time.Time) *HealthHandler {
	return &HealthHandler{
		startTime: clock(),
		clock:     clock,
	}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
		return
	}

	now := h.clock()
	proxy.WriteJSONResponse(w, http.StatusOK, &types.HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.startTime).Seconds(),
	})
}
