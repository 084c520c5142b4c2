package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// GetStats returns the aggregate dashboard counts
// GET /api/dashboard
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
