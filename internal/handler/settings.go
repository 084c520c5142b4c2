package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/service"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settings *service.SettingsService
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// GetSettings returns all settings
// GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.settings.All(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, all)
}

// UpdateSettings applies a batch of settings changes
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := httputil.ParseJSON(w, r, &values); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.Update(r.Context(), values); err != nil {
		handleError(w, h.logger, err)
		return
	}

	all, err := h.settings.All(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, all)
}

// GetStorageStructure returns the physical capacity grid
// GET /api/settings/storage
func (h *SettingsHandler) GetStorageStructure(w http.ResponseWriter, r *http.Request) {
	structure, err := h.settings.StorageStructure(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, structure)
}
