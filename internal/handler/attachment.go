package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"arkiv/internal/config"
	"arkiv/internal/httputil"
	"arkiv/internal/service"
)

// AttachmentHandler handles folder attachment uploads and downloads. Files
// live under the data directory; only the relative path is stored on the
// folder row.
type AttachmentHandler struct {
	folders *service.FolderService
	dataDir string
	logger  *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(folders *service.FolderService, dataDir string, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{folders: folders, dataDir: dataDir, logger: logger}
}

// attachmentExt maps the attachment kind to its allowed file extensions.
var attachmentExt = map[service.AttachmentKind][]string{
	service.AttachmentPDF:   {".pdf"},
	service.AttachmentExcel: {".xlsx", ".xls"},
}

// UploadAttachment stores an uploaded PDF or spreadsheet for a folder
// POST /api/folders/{id}/attachments/{kind}
func (h *AttachmentHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	kind, ok := attachmentKind(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxAttachmentSize)
	if err := r.ParseMultipartForm(config.MaxAttachmentSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "expected multipart upload within the size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extAllowed(kind, ext) {
		httputil.RespondError(w, http.StatusBadRequest,
			"unsupported file type "+ext+" for "+string(kind)+" attachment")
		return
	}

	relPath := filepath.Join("attachments", id+ext)
	absPath := filepath.Join(h.dataDir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		h.logger.Error("creating attachment directory", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	dest, err := os.Create(absPath)
	if err != nil {
		h.logger.Error("creating attachment file", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if _, err := io.Copy(dest, file); err != nil {
		dest.Close()
		os.Remove(absPath)
		h.logger.Error("writing attachment file", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	dest.Close()

	if err := h.folders.SetAttachment(r.Context(), id, kind, relPath); err != nil {
		os.Remove(absPath)
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"path": relPath})
}

// DownloadAttachment streams a folder's stored attachment
// GET /api/folders/{id}/attachments/{kind}
func (h *AttachmentHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	kind, ok := attachmentKind(w, r)
	if !ok {
		return
	}

	folder, err := h.folders.Get(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var relPath *string
	if kind == service.AttachmentPDF {
		relPath = folder.PDFPath
	} else {
		relPath = folder.ExcelPath
	}
	if relPath == nil {
		httputil.RespondError(w, http.StatusNotFound, "folder has no "+string(kind)+" attachment")
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dataDir, *relPath))
}

func attachmentKind(w http.ResponseWriter, r *http.Request) (service.AttachmentKind, bool) {
	kind := service.AttachmentKind(r.PathValue("kind"))
	if _, ok := attachmentExt[kind]; !ok {
		httputil.RespondError(w, http.StatusBadRequest, "attachment kind must be pdf or excel")
		return "", false
	}
	return kind, true
}

func extAllowed(kind service.AttachmentKind, ext string) bool {
	for _, allowed := range attachmentExt[kind] {
		if ext == allowed {
			return true
		}
	}
	return false
}
