package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-notepad/internal/contextutil"
)

// captureDefault routes slog.Default into a buffer for the test.
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generates request id"},
		{name: "reuses caller request id", incoming: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t)

			var requestID string
			handler := LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := r.Context()
				requestID = contextutil.RequestIDFromContext(ctx)
				contextutil.LoggerFromContext(ctx).InfoContext(ctx, "inside handler")
			}))

			req := httptest.NewRequest(http.MethodPut, "/api/modes/order", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if requestID == "" {
				t.Fatal("request id missing from context")
			}
			if tt.incoming != "" && requestID != tt.incoming {
				t.Errorf("request id = %q, want %q", requestID, tt.incoming)
			}
			if got := w.Header().Get(RequestIDHeader); got != requestID {
				t.Errorf("%s header = %q, want %q", RequestIDHeader, got, requestID)
			}

			line := buf.String()
			for _, want := range []string{"request_id=" + requestID, "method=PUT", "path=/api/modes/order"} {
				if !strings.Contains(line, want) {
					t.Errorf("log line %q missing %q", line, want)
				}
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		wantLevel  string
	}{
		{name: "rewrite", method: http.MethodPost, path: "/api/rewrite", statusCode: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", method: http.MethodPost, path: "/api/notes", statusCode: http.StatusBadRequest, wantLevel: "INFO"},
		{name: "server error", method: http.MethodPost, path: "/api/rewrite", statusCode: http.StatusBadGateway, wantLevel: "ERROR"},
		{name: "root probe skipped", method: http.MethodGet, path: "/", statusCode: http.StatusOK},
		{name: "health probe skipped", method: http.MethodGet, path: "/api/health", statusCode: http.StatusOK},
		{name: "failing health probe logged", method: http.MethodGet, path: "/api/health", statusCode: http.StatusServiceUnavailable, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t)

			handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.statusCode {
				t.Errorf("status = %d, want %d", w.Code, tt.statusCode)
			}

			logged := buf.String()
			if tt.wantLevel == "" {
				if logged != "" {
					t.Errorf("expected no log output, got %q", logged)
				}
				return
			}
			if !strings.Contains(logged, "level="+tt.wantLevel) || !strings.Contains(logged, "request completed") {
				t.Errorf("log output = %q, want level %s", logged, tt.wantLevel)
			}
		})
	}
}

func TestResponseWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("body"))
	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d after implicit header", rw.statusCode)
	}

	rw.WriteHeader(http.StatusConflict)
	if rw.statusCode != http.StatusConflict {
		t.Errorf("statusCode = %d, want 409", rw.statusCode)
	}
}

func TestCORS(t *testing.T) {
	var reached bool
	handler := CORS([]string{"http://localhost:5173/", " "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantReached bool
	}{
		{name: "preflight stops here", method: http.MethodOptions, origin: "http://localhost:5173", wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:5173"},
		{name: "allowed origin", method: http.MethodPatch, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantOrigin: "http://localhost:5173", wantReached: true},
		{name: "no origin passes without headers", method: http.MethodDelete, wantStatus: http.StatusOK, wantReached: true},
		{name: "foreign preflight refused", method: http.MethodOptions, origin: "https://evil.example", wantStatus: http.StatusForbidden},
		{name: "foreign write refused", method: http.MethodPut, origin: "https://evil.example", wantStatus: http.StatusForbidden},
		{name: "null origin refused", method: http.MethodPost, origin: "null", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, "/api/notebooks/1", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if reached != tt.wantReached {
				t.Errorf("next handler reached = %v, want %v", reached, tt.wantReached)
			}
			if tt.wantOrigin == "" {
				return
			}
			if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, PATCH, DELETE, OPTIONS" {
				t.Errorf("Allow-Methods = %q", got)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, RequestIDHeader) {
				t.Errorf("Allow-Headers = %q, want %s listed", got, RequestIDHeader)
			}
			if got := w.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, want Origin", got)
			}
		})
	}
}

func TestCORS_NoOriginsAllowed(t *testing.T) {
	handler := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached for a cross-origin request")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/settings/connection", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none", got)
	}
}
