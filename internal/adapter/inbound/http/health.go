package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
)

// HealthResponse is the JSON response from the /health endpoint.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}

// HealthChecker reports server liveness. The server holds no stateful
// components (no sessions, no connection pools per tenant), so the check is
// shallow: tool surface and runtime info.
type HealthChecker struct {
	toolCount int
	version   string
}

// NewHealthChecker creates a HealthChecker.
func NewHealthChecker(toolCount int, version string) *HealthChecker {
	return &HealthChecker{
		toolCount: toolCount,
		version:   version,
	}
}

// Check reports the current health state.
func (h *HealthChecker) Check() HealthResponse {
	checks := map[string]string{
		"tools":      fmt.Sprintf("%d registered", h.toolCount),
		"goroutines": fmt.Sprintf("%d", runtime.NumGoroutine()),
	}

	return HealthResponse{
		Status:  "healthy",
		Checks:  checks,
		Version: h.version,
	}
}

// Handler returns an HTTP handler for the health endpoint.
func (h *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		health := h.Check()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(health)
	})
}
