package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/importer"
)

// ImportHandler handles HTTP requests to import a markdown directory.
type ImportHandler struct {
	importer importer.Service
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer importer.Service) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// ImportRequest names a directory on the server's file system.
//
// swagger:model ImportRequest
type ImportRequest struct {
	Path string `json:"path"`
}

// ServeHTTP handles POST /api/import.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	result, err := h.importer.Import(ctx, req.Path)
	switch {
	case err == nil:
		writeJSON(ctx, w, http.StatusOK, result)
	case errors.Is(err, os.ErrNotExist):
		writeError(w, http.StatusNotFound, "Directory not found")
	case errors.Is(err, importer.ErrNotDirectory):
		writeError(w, http.StatusBadRequest, "Path is not a directory")
	default:
		logger.ErrorContext(ctx, "import failed", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to import directory")
	}
}
