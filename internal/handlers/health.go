package handlers

import (
	"context"
	"net/http"
	"time"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/service"
)

// Health check values.
const (
	checkOK            = "ok"
	checkError         = "error"
	checkConfigured    = "configured"
	checkNotConfigured = "not_configured"
)

// Pinger checks that the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports database reachability and whether an AI connection
// is configured.
type HealthHandler struct {
	db       Pinger
	settings service.SettingsService
	timeout  time.Duration
}

// NewHealthHandler creates a new HealthHandler. settings may be nil, in
// which case the ai_connection check is omitted.
func NewHealthHandler(db Pinger, settings service.SettingsService) *HealthHandler {
	return &HealthHandler{
		db:       db,
		settings: settings,
		timeout:  5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// "healthy" or "unhealthy"
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
//
// Only the database decides the status code. An unconfigured AI connection
// is reported but leaves the service healthy; no request is sent to Azure.
//
// swagger:route GET /api/health healthCheck
//
// responses:
//
//	200: HealthResponse
//	503: HealthResponse
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"database": checkOK},
	}
	status := http.StatusOK

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database ping failed", "error", err)
		resp.Checks["database"] = checkError
		resp.Issues = append(resp.Issues, "database_unavailable")
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	if h.settings != nil {
		resp.Checks["ai_connection"] = h.aiConnection(checkCtx)
	}

	writeJSON(ctx, w, status, resp)
}

func (h *HealthHandler) aiConnection(ctx context.Context) string {
	view, err := h.settings.Connection(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to resolve connection settings", "error", err)
		return checkNotConfigured
	}
	if view.Effective.Configured {
		return checkConfigured
	}
	return checkNotConfigured
}
