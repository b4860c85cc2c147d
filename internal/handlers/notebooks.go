package handlers

import (
	"net/http"

	"ai-notepad/internal/service"
)

// NotebookHandler serves the notebook endpoints.
type NotebookHandler struct {
	notes service.NoteService
}

// NewNotebookHandler creates a new NotebookHandler.
func NewNotebookHandler(notes service.NoteService) *NotebookHandler {
	return &NotebookHandler{notes: notes}
}

// NotebookRequest is the body of create and rename.
//
// swagger:model NotebookRequest
type NotebookRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/notebooks.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebooks, err := h.notes.ListNotebooks(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list notebooks")
		return
	}
	writeJSON(ctx, w, http.StatusOK, notebooks)
}

// Create handles POST /api/notebooks.
func (h *NotebookHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req NotebookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nb, err := h.notes.CreateNotebook(ctx, req.Name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create notebook")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, nb)
}

// Rename handles PATCH /api/notebooks/{id}.
func (h *NotebookHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req NotebookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nb, err := h.notes.RenameNotebook(ctx, id, req.Name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to rename notebook")
		return
	}
	writeJSON(ctx, w, http.StatusOK, nb)
}

// Delete handles DELETE /api/notebooks/{id}. Notes in the notebook survive
// without a notebook.
func (h *NotebookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.notes.DeleteNotebook(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete notebook")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
