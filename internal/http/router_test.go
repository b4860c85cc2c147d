package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	importmocks "ai-notepad/internal/importer/mocks"
	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
	"ai-notepad/internal/service/mocks"
	"ai-notepad/internal/storage"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type routerMocks struct {
	notes    *mocks.MockNoteService
	modes    *mocks.MockModeService
	settings *mocks.MockSettingsService
	rewrite  *mocks.MockRewriteService
	metadata *mocks.MockMetadataService
	importer *importmocks.MockService
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		notes:    mocks.NewMockNoteService(ctrl),
		modes:    mocks.NewMockModeService(ctrl),
		settings: mocks.NewMockSettingsService(ctrl),
		rewrite:  mocks.NewMockRewriteService(ctrl),
		metadata: mocks.NewMockMetadataService(ctrl),
		importer: importmocks.NewMockService(ctrl),
	}
	router := NewRouter(&Deps{
		Notes:          m.notes,
		Modes:          m.modes,
		Settings:       m.settings,
		Rewrite:        m.rewrite,
		Metadata:       m.metadata,
		Importer:       m.importer,
		DB:             okPinger{},
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return router, m
}

func TestNewRouter(t *testing.T) {
	router, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		mockSetup  func(m routerMocks)
		wantStatus int
	}{
		{
			name:   "GET /api/health",
			method: http.MethodGet,
			path:   "/api/health",
			mockSetup: func(m routerMocks) {
				m.settings.EXPECT().Connection(gomock.Any()).Return(service.ConnectionView{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/notebooks",
			method: http.MethodGet,
			path:   "/api/notebooks",
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().ListNotebooks(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "PATCH /api/notebooks/{id}",
			method: http.MethodPatch,
			path:   "/api/notebooks/3",
			body:   `{"name":"x"}`,
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().RenameNotebook(gomock.Any(), int64(3), "x").Return(&storage.Notebook{ID: 3, Name: "x"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/notes/{id}",
			method: http.MethodGet,
			path:   "/api/notes/7",
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().GetNote(gomock.Any(), int64(7)).Return(&storage.Note{ID: 7}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/notes/{id}/open",
			method: http.MethodPost,
			path:   "/api/notes/7/open",
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().OpenNote(gomock.Any(), int64(7)).Return(&storage.Note{ID: 7}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/notes/{id}/tags/{tag}",
			method: http.MethodDelete,
			path:   "/api/notes/7/tags/work",
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().RemoveTag(gomock.Any(), int64(7), "work").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "GET /api/search",
			method: http.MethodGet,
			path:   "/api/search?q=unicorn",
			mockSetup: func(m routerMocks) {
				m.notes.EXPECT().Search(gomock.Any(), "unicorn").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "PUT /api/modes/order is not a mode id",
			method: http.MethodPut,
			path:   "/api/modes/order",
			body:   `{"ids":[2,1]}`,
			mockSetup: func(m routerMocks) {
				m.modes.EXPECT().Reorder(gomock.Any(), []int64{2, 1}).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "POST /api/modes/{id}/move",
			method: http.MethodPost,
			path:   "/api/modes/2/move",
			body:   `{"direction":"up"}`,
			mockSetup: func(m routerMocks) {
				m.modes.EXPECT().Move(gomock.Any(), int64(2), storage.Up).Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/presets",
			method: http.MethodGet,
			path:   "/api/presets",
			mockSetup: func(m routerMocks) {
				m.rewrite.EXPECT().Presets().Return(llm.Presets)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/settings/test",
			method: http.MethodPost,
			path:   "/api/settings/test",
			mockSetup: func(m routerMocks) {
				m.rewrite.EXPECT().TestConnection(gomock.Any(), "", gomock.Any()).
					Return(llm.ConnectionResult{Status: llm.StatusEndpointError})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/import without body",
			method:     http.MethodPost,
			path:       "/api/import",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /api/rewrite method not allowed",
			method:     http.MethodGet,
			path:       "/api/rewrite",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/chat",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			if tt.mockSetup != nil {
				tt.mockSetup(m)
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v (body %s)", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, m := newTestRouter(t)
	m.notes.EXPECT().ListTags(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("Router should apply CORS middleware")
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Router should set a request id")
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	router, m := newTestRouter(t)
	m.notes.EXPECT().ListTags(gomock.Any()).DoAndReturn(func(context.Context) ([]storage.Tag, error) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Router panic status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}

func TestRouter_RefusesForeignOrigin(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "preflight for connection change", method: http.MethodOptions, path: "/api/settings/connection"},
		{name: "connection change", method: http.MethodPut, path: "/api/settings/connection", body: `{"endpoint":"https://evil.example","deployment_id":"d"}`},
		{name: "connection test", method: http.MethodPost, path: "/api/settings/test"},
		{name: "read notes", method: http.MethodGet, path: "/api/notes"},
		{name: "read request log", method: http.MethodGet, path: "/api/rewrite/log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any service call fails the test.
			router, _ := newTestRouter(t)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Origin", "https://evil.example")
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, http.StatusForbidden)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Errorf("Allow-Origin = %q, want none", got)
			}
		})
	}
}

func TestRouter_RequiresJSONBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/connection",
		strings.NewReader(`{"endpoint":"https://evil.example","deployment_id":"d"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Router text/plain body status = %v, want %v", w.Code, http.StatusUnsupportedMediaType)
	}
}
