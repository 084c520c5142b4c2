package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"arkiv/internal/domain"
	"arkiv/internal/httputil"
)

// handleError maps domain errors to HTTP status codes. Validation errors
// carry their per-field details; storage errors stay opaque to clients.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, validationErr.Message,
			map[string]any{"fields": validationErr.Fields})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		status := httpErr.StatusCode()
		if status == http.StatusInternalServerError {
			logger.Error("request failed", "error", err)
			httputil.RespondError(w, status, "internal server error")
			return
		}
		httputil.RespondError(w, status, httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCapacity):
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts the {id} path segment or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "resource ID is required")
		return "", false
	}
	return id, true
}
