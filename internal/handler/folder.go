package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"arkiv/internal/httputil"
	"arkiv/internal/models"
	"arkiv/internal/service"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folders *service.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders *service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folders.Create(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	folder, err := h.folders.Get(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ListFolders lists folders with optional filters
// GET /api/folders?status=&category=&department_id=&file_year=&storage_type=&search=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.FolderFilter{
		Status:       models.FolderStatus(q.Get("status")),
		Category:     models.Category(q.Get("category")),
		DepartmentID: q.Get("department_id"),
		StorageType:  models.StorageType(q.Get("storage_type")),
		Search:       q.Get("search"),
	}
	if year := q.Get("file_year"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "file_year must be a number")
			return
		}
		filter.FileYear = n
	}

	folders, err := h.folders.List(r.Context(), filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.FolderListResponse{
		Folders: folders,
		Total:   len(folders),
	})
}

// UpdateFolder applies a partial update
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folders.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its dependent records
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.folders.Delete(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
