package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/models"
	"arkiv/internal/service"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkouts *service.CheckoutService
	logger    *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkouts *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, logger: logger}
}

// CheckoutFolder lends a folder out
// POST /api/folders/{id}/checkout
func (h *CheckoutHandler) CheckoutFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.CreateCheckoutRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	checkout, err := h.checkouts.Checkout(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, checkout)
}

// ReturnFolder closes the folder's open checkout
// POST /api/folders/{id}/return
func (h *CheckoutHandler) ReturnFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	checkout, err := h.checkouts.Return(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, checkout)
}

// ListCheckouts lists checkouts with optional filters
// GET /api/checkouts?folder_id=&status=
func (h *CheckoutHandler) ListCheckouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.CheckoutFilter{
		FolderID: q.Get("folder_id"),
		Status:   models.CheckoutStatus(q.Get("status")),
	}

	checkouts, err := h.checkouts.List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, checkouts)
}
