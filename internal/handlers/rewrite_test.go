package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
	"ai-notepad/internal/service/mocks"
)

func TestRewriteHandler_Rewrite(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(rewrite *mocks.MockRewriteService)
		wantStatus int
		wantText   string
	}{
		{
			name: "preset",
			body: `{"text":"hello there","preset":"shorten"}`,
			mockSetup: func(rewrite *mocks.MockRewriteService) {
				rewrite.EXPECT().Rewrite(gomock.Any(), service.RewriteRequest{Text: "hello there", Preset: "shorten"}).
					Return(service.RewriteResponse{Text: "hi", Original: "hello there"}, nil)
			},
			wantStatus: http.StatusOK,
			wantText:   "hi",
		},
		{
			name: "mode with deployment",
			body: `{"text":"x","mode_id":4,"deployment":"gpt-b"}`,
			mockSetup: func(rewrite *mocks.MockRewriteService) {
				rewrite.EXPECT().Rewrite(gomock.Any(), service.RewriteRequest{Text: "x", ModeID: 4, Deployment: "gpt-b"}).
					Return(service.RewriteResponse{Text: "y", Original: "x"}, nil)
			},
			wantStatus: http.StatusOK,
			wantText:   "y",
		},
		{
			name: "not configured",
			body: `{"text":"x","preset":"shorten"}`,
			mockSetup: func(rewrite *mocks.MockRewriteService) {
				rewrite.EXPECT().Rewrite(gomock.Any(), gomock.Any()).
					Return(service.RewriteResponse{}, fmt.Errorf("%w: missing endpoint", service.ErrNotConfigured))
			},
			wantStatus: http.StatusPreconditionFailed,
		},
		{
			name: "retries exhausted",
			body: `{"text":"x","preset":"shorten"}`,
			mockSetup: func(rewrite *mocks.MockRewriteService) {
				rewrite.EXPECT().Rewrite(gomock.Any(), gomock.Any()).
					Return(service.RewriteResponse{}, fmt.Errorf("%w: 3 attempts", service.ErrExternalService))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown field",
			body:       `{"text":"x","mode":"shorten"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewrite := mocks.NewMockRewriteService(gomock.NewController(t))
			if tt.mockSetup != nil {
				tt.mockSetup(rewrite)
			}
			h := NewRewriteHandler(rewrite)

			w := serve(http.MethodPost, "/api/rewrite", h.Rewrite, "/api/rewrite", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("Rewrite() status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp RewriteResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Text != tt.wantText {
				t.Errorf("Rewrite() text = %q, want %q", resp.Text, tt.wantText)
			}
		})
	}
}

func TestRewriteHandler_PresetsAndLog(t *testing.T) {
	rewrite := mocks.NewMockRewriteService(gomock.NewController(t))
	h := NewRewriteHandler(rewrite)

	rewrite.EXPECT().Presets().Return(llm.Presets)
	w := serve(http.MethodGet, "/api/presets", h.Presets, "/api/presets", "")
	var presets []llm.Preset
	if err := json.NewDecoder(w.Body).Decode(&presets); err != nil {
		t.Fatalf("decode presets: %v", err)
	}
	if len(presets) != len(llm.Presets) || presets[0].Key != llm.Presets[0].Key {
		t.Errorf("Presets() = %+v", presets)
	}

	rewrite.EXPECT().RequestLog().Return([]llm.RequestLogEntry{
		{Prompt: "p", Attempt: 1, Success: false, Error: "503", Timestamp: time.Unix(0, 0).UTC()},
		{Prompt: "p", Attempt: 2, Success: true, Timestamp: time.Unix(1, 0).UTC()},
	})
	w = serve(http.MethodGet, "/api/rewrite/log", h.Log, "/api/rewrite/log", "")
	var entries []llm.RequestLogEntry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if len(entries) != 2 || entries[0].Success || !entries[1].Success {
		t.Errorf("Log() = %+v", entries)
	}

	rewrite.EXPECT().RequestLog().Return(nil)
	w = serve(http.MethodGet, "/api/rewrite/log", h.Log, "/api/rewrite/log", "")
	if w.Body.String() != "[]\n" {
		t.Errorf("Log() empty body = %q", w.Body.String())
	}
}
