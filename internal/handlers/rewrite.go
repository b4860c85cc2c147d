package handlers

import (
	"net/http"

	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
)

// RewriteHandler serves rewrites, presets and the request log.
type RewriteHandler struct {
	rewrite service.RewriteService
}

// NewRewriteHandler creates a new RewriteHandler.
func NewRewriteHandler(rewrite service.RewriteService) *RewriteHandler {
	return &RewriteHandler{rewrite: rewrite}
}

// RewriteRequest is the body of POST /api/rewrite. Exactly one of preset,
// mode_id or template selects the instruction.
//
// swagger:model RewriteRequest
type RewriteRequest struct {
	Text       string `json:"text"`
	Preset     string `json:"preset,omitempty"`
	ModeID     int64  `json:"mode_id,omitempty"`
	Template   string `json:"template,omitempty"`
	Deployment string `json:"deployment,omitempty"`
}

// RewriteResponse carries the rewritten text.
//
// swagger:model RewriteResponse
type RewriteResponse struct {
	Text     string `json:"text"`
	Original string `json:"original"`
}

// Rewrite handles POST /api/rewrite.
func (h *RewriteHandler) Rewrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RewriteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.rewrite.Rewrite(ctx, service.RewriteRequest(req))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to rewrite text")
		return
	}
	writeJSON(ctx, w, http.StatusOK, RewriteResponse(resp))
}

// Presets handles GET /api/presets.
func (h *RewriteHandler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.rewrite.Presets())
}

// Log handles GET /api/rewrite/log: every attempt, oldest first.
func (h *RewriteHandler) Log(w http.ResponseWriter, r *http.Request) {
	entries := h.rewrite.RequestLog()
	if entries == nil {
		entries = []llm.RequestLogEntry{}
	}
	writeJSON(r.Context(), w, http.StatusOK, entries)
}
