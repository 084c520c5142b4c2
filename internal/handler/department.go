package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/models"
	"arkiv/internal/service"
)

// DepartmentHandler handles department HTTP requests
type DepartmentHandler struct {
	departments *service.DepartmentService
	logger      *slog.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departments *service.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, logger: logger}
}

// CreateDepartment registers a new department
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDepartmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.departments.Create(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, dept)
}

// ListDepartments lists all departments
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departments.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, departments)
}

// DeleteDepartment removes a department with no folders
// DELETE /api/departments/{id}
func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.departments.Delete(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
