package http

import (
	"log/slog"
	"net/http"

	"github.com/light-bringer/decant-store/internal/app/product/queries/check_health"
)

// isoMillis renders timestamps with millisecond precision, e.g.
// 2024-03-01T12:00:00.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
	Error       string `json:"error,omitempty"`
}

// HealthHandler reports store connectivity.
type HealthHandler struct {
	checkHealth *check_health.Query
	logger      *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checkHealth *check_health.Query, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checkHealth: checkHealth, logger: logger}
}

// ServeHTTP answers 200 when the store is reachable and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := h.checkHealth.Execute(r.Context())

	status := http.StatusOK
	if !result.Healthy() {
		status = http.StatusServiceUnavailable
		h.logger.WarnContext(r.Context(), "health check failed", "error", result.Error)
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, h.logger, status, HealthResponse{
		Status:      result.Status,
		Timestamp:   result.Timestamp.Format(isoMillis),
		Database:    result.Database,
		Environment: result.Environment,
		Error:       result.Error,
	})
}
