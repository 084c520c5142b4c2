package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/models"
	"arkiv/internal/service"
)

// DisposalHandler handles disposal HTTP requests
type DisposalHandler struct {
	disposals *service.DisposalService
	logger    *slog.Logger
}

// NewDisposalHandler creates a new disposal handler
func NewDisposalHandler(disposals *service.DisposalService, logger *slog.Logger) *DisposalHandler {
	return &DisposalHandler{disposals: disposals, logger: logger}
}

// DisposeFolder destroys a folder's record standing
// POST /api/folders/{id}/dispose
func (h *DisposalHandler) DisposeFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.CreateDisposalRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	disposal, err := h.disposals.Dispose(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, disposal)
}

// GetEligibility reports a folder's standing against the retention rule
// GET /api/folders/{id}/eligibility
func (h *DisposalHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	eligibility, err := h.disposals.Eligibility(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, eligibility)
}

// ListDisposals lists all disposal records
// GET /api/disposals
func (h *DisposalHandler) ListDisposals(w http.ResponseWriter, r *http.Request) {
	disposals, err := h.disposals.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, disposals)
}

// ListEligible lists folders whose retention period has lapsed
// GET /api/disposals/eligible
func (h *DisposalHandler) ListEligible(w http.ResponseWriter, r *http.Request) {
	folders, err := h.disposals.ListEligible(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}
