package handlers

import (
	"net/http"
	"strings"

	"ai-notepad/internal/service"
	"ai-notepad/internal/storage"
)

// ModeHandler serves the rewrite mode endpoints.
type ModeHandler struct {
	modes service.ModeService
}

// NewModeHandler creates a new ModeHandler.
func NewModeHandler(modes service.ModeService) *ModeHandler {
	return &ModeHandler{modes: modes}
}

// ModeRequest is the body of mode create and update. Enabled defaults to
// true; a missing order appends on create and keeps the position on update.
//
// swagger:model ModeRequest
type ModeRequest struct {
	Name                string            `json:"name"`
	InstructionTemplate string            `json:"instruction_template"`
	Enabled             *bool             `json:"enabled,omitempty"`
	Order               *int              `json:"order,omitempty"`
	AppliesTo           storage.AppliesTo `json:"applies_to,omitempty"`
	AdvancedSettings    map[string]any    `json:"advanced_settings,omitempty"`
}

func (req ModeRequest) input() service.ModeInput {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	return service.ModeInput{
		Name:                req.Name,
		InstructionTemplate: req.InstructionTemplate,
		Enabled:             enabled,
		Order:               req.Order,
		AppliesTo:           req.AppliesTo,
		AdvancedSettings:    req.AdvancedSettings,
	}
}

// MoveRequest is the body of POST /api/modes/{id}/move.
//
// swagger:model MoveRequest
type MoveRequest struct {
	Direction string `json:"direction"`
}

// MoveResponse reports whether the mode changed position.
type MoveResponse struct {
	Moved bool `json:"moved"`
}

// ReorderRequest is the body of PUT /api/modes/order.
//
// swagger:model ReorderRequest
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// List handles GET /api/modes[?enabled=true].
func (h *ModeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enabledOnly := r.URL.Query().Get("enabled") == "true"
	modes, err := h.modes.List(ctx, enabledOnly)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list rewrite modes")
		return
	}
	if modes == nil {
		modes = []storage.RewriteMode{}
	}
	writeJSON(ctx, w, http.StatusOK, modes)
}

// Create handles POST /api/modes.
func (h *ModeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ModeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mode, err := h.modes.Create(ctx, req.input())
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create rewrite mode")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, mode)
}

// Update handles PUT /api/modes/{id}. Built-in modes answer 409.
func (h *ModeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ModeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mode, err := h.modes.Update(ctx, id, req.input())
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update rewrite mode")
		return
	}
	writeJSON(ctx, w, http.StatusOK, mode)
}

// Delete handles DELETE /api/modes/{id}. Built-in modes answer 409.
func (h *ModeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.modes.Delete(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete rewrite mode")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Duplicate handles POST /api/modes/{id}/duplicate.
func (h *ModeHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	mode, err := h.modes.Duplicate(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to duplicate rewrite mode")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, mode)
}

// Move handles POST /api/modes/{id}/move.
func (h *ModeHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req MoveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var dir storage.Direction
	switch strings.ToLower(strings.TrimSpace(req.Direction)) {
	case "up":
		dir = storage.Up
	case "down":
		dir = storage.Down
	default:
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	moved, err := h.modes.Move(ctx, id, dir)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to move rewrite mode")
		return
	}
	writeJSON(ctx, w, http.StatusOK, MoveResponse{Moved: moved})
}

// Reorder handles PUT /api/modes/order.
func (h *ModeHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ReorderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.modes.Reorder(ctx, req.IDs); err != nil {
		handleServiceError(w, ctx, err, "Failed to reorder rewrite modes")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
