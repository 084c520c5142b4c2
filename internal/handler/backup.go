package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"arkiv/internal/httputil"
	"arkiv/internal/service"
)

// BackupHandler handles database snapshot HTTP requests
type BackupHandler struct {
	backup *service.BackupService
	logger *slog.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backup *service.BackupService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{backup: backup, logger: logger}
}

// CreateBackup snapshots the database into the backup directory
// POST /api/backup
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backup.Backup(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"file": filepath.Base(path),
	})
}

// DownloadBackup streams a fresh snapshot to the client
// GET /api/backup/download
func (h *BackupHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backup.Backup(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}

// RestoreBackup replaces the live database with an uploaded snapshot
// POST /api/restore
func (h *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "expected multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	// Stage the upload on disk so the restore path works on a plain file.
	tmp, err := os.CreateTemp("", "arkiv-restore-*.db")
	if err != nil {
		h.logger.Error("staging restore upload", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		h.logger.Error("staging restore upload", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	tmp.Close()

	if err := h.backup.Restore(r.Context(), tmpPath); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}
