package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"arkiv/internal/httputil"
	"arkiv/internal/models"
	"arkiv/internal/service"
)

// LogHandler handles audit trail HTTP requests
type LogHandler struct {
	logs   *service.LogService
	logger *slog.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(logs *service.LogService, logger *slog.Logger) *LogHandler {
	return &LogHandler{logs: logs, logger: logger}
}

// ListLogs lists audit entries, newest first
// GET /api/logs?type=&folder_id=&limit=
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.LogFilter{
		Type:     models.LogType(q.Get("type")),
		FolderID: q.Get("folder_id"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a non-negative number")
			return
		}
		filter.Limit = n
	}

	entries, err := h.logs.List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}
