package handlers

import (
	"net/http"
	"time"

	"ai-notepad/internal/service"
)

// SettingsHandler serves the connection settings, API key and connection
// test endpoints.
type SettingsHandler struct {
	settings service.SettingsService
	rewrite  service.RewriteService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService, rewrite service.RewriteService) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		rewrite:  rewrite,
	}
}

// ConnectionRequest is the body of PUT /api/settings/connection.
//
// swagger:model ConnectionRequest
type ConnectionRequest struct {
	Endpoint     string   `json:"endpoint"`
	DeploymentID string   `json:"deployment_id"`
	APIVersion   string   `json:"api_version,omitempty"`
	Timeout      int      `json:"timeout,omitempty"`
	MaxRetries   *int     `json:"max_retries,omitempty"`
	BackoffBase  *float64 `json:"backoff_base,omitempty"`
}

// APIKeyRequest is the body of PUT /api/settings/api-key. Passphrase is
// only needed when the OS keyring is unavailable.
//
// swagger:model APIKeyRequest
type APIKeyRequest struct {
	APIKey     string `json:"api_key"`
	Passphrase string `json:"passphrase,omitempty"`
}

// APIKeyResponse reports where the key was stored.
type APIKeyResponse struct {
	Method string `json:"method"`
}

// DeleteKeyResponse reports whether anything was removed.
type DeleteKeyResponse struct {
	Removed bool `json:"removed"`
}

// TestConnectionRequest is the optional body of POST /api/settings/test.
// Timeout is in seconds; zero uses the configured timeout.
//
// swagger:model TestConnectionRequest
type TestConnectionRequest struct {
	Deployment string  `json:"deployment,omitempty"`
	Timeout    float64 `json:"timeout,omitempty"`
}

// Connection handles GET /api/settings/connection.
func (h *SettingsHandler) Connection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.settings.Connection(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load connection settings")
		return
	}
	writeJSON(ctx, w, http.StatusOK, view)
}

// SaveConnection handles PUT /api/settings/connection.
func (h *SettingsHandler) SaveConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ConnectionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.settings.SaveConnection(ctx, service.ConnectionInput{
		Endpoint:       req.Endpoint,
		DeploymentID:   req.DeploymentID,
		APIVersion:     req.APIVersion,
		TimeoutSeconds: req.Timeout,
		MaxRetries:     req.MaxRetries,
		BackoffBase:    req.BackoffBase,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to save connection settings")
		return
	}
	writeJSON(ctx, w, http.StatusOK, view)
}

// SetAPIKey handles PUT /api/settings/api-key.
func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req APIKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	method, err := h.settings.SetAPIKey(ctx, req.APIKey, req.Passphrase)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to store API key")
		return
	}
	writeJSON(ctx, w, http.StatusOK, APIKeyResponse{Method: string(method)})
}

// DeleteAPIKey handles DELETE /api/settings/api-key.
func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(ctx, w, http.StatusOK, DeleteKeyResponse{Removed: h.settings.DeleteAPIKey(ctx)})
}

// TestConnection handles POST /api/settings/test. The outcome is always
// reported with 200; the status field carries the classification.
func (h *SettingsHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req TestConnectionRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	if req.Timeout < 0 {
		writeError(w, http.StatusBadRequest, "timeout must not be negative")
		return
	}
	timeout := time.Duration(req.Timeout * float64(time.Second))
	writeJSON(ctx, w, http.StatusOK, h.rewrite.TestConnection(ctx, req.Deployment, timeout))
}
