package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
	"ai-notepad/internal/service/mocks"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"

	"go.uber.org/mock/gomock"
)

var configured = settings.Snapshot{
	Endpoint:   "https://x.openai.azure.com",
	Deployment: "gpt",
	APIKey:     "k",
	Timeout:    6 * time.Second,
}

type rewriteMocks struct {
	client   *mocks.MockRewriteClient
	settings *mocks.MockSettingsSource
	modes    *mocks.MockModeLookup
}

func newRewriteService(t *testing.T) (service.RewriteService, rewriteMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := rewriteMocks{
		client:   mocks.NewMockRewriteClient(ctrl),
		settings: mocks.NewMockSettingsSource(ctrl),
		modes:    mocks.NewMockModeLookup(ctrl),
	}
	return service.NewRewriteService(m.client, m.settings, m.modes), m
}

func TestRewriteService_Rewrite(t *testing.T) {
	tests := []struct {
		name      string
		req       service.RewriteRequest
		mockSetup func(m rewriteMocks)
		wantText  string
		checkErr  func(error) bool
	}{
		{
			name: "preset",
			req:  service.RewriteRequest{Text: "hello", Preset: "shorten"},
			mockSetup: func(m rewriteMocks) {
				m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
				m.client.EXPECT().ApplyRewriteMode(gomock.Any(), configured, llm.NamedPreset("shorten"), "hello").
					Return("hi", nil)
			},
			wantText: "hi",
		},
		{
			name: "saved mode with deployment override",
			req:  service.RewriteRequest{Text: "hello", ModeID: 4, Deployment: " other "},
			mockSetup: func(m rewriteMocks) {
				m.modes.EXPECT().Get(gomock.Any(), int64(4)).
					Return(&storage.RewriteMode{ID: 4, Enabled: true, InstructionTemplate: "Pirate: {text}"}, nil)
				m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
				m.client.EXPECT().ApplyRewriteMode(gomock.Any(), configured.WithDeployment("other"), llm.CustomTemplate("Pirate: {text}"), "hello").
					Return("Arr", nil)
			},
			wantText: "Arr",
		},
		{
			name: "custom template",
			req:  service.RewriteRequest{Text: "hello", Template: "Echo {text}"},
			mockSetup: func(m rewriteMocks) {
				m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
				m.client.EXPECT().ApplyRewriteMode(gomock.Any(), configured, llm.CustomTemplate("Echo {text}"), "hello").
					Return("Echo hello", nil)
			},
			wantText: "Echo hello",
		},
		{
			name:     "empty text",
			req:      service.RewriteRequest{Text: "  ", Preset: "shorten"},
			checkErr: isValidation("text"),
		},
		{
			name:     "no instruction",
			req:      service.RewriteRequest{Text: "hello"},
			checkErr: isValidation("instruction"),
		},
		{
			name:     "two instructions",
			req:      service.RewriteRequest{Text: "hello", Preset: "shorten", Template: "{text}"},
			checkErr: isValidation("instruction"),
		},
		{
			name:     "unknown preset",
			req:      service.RewriteRequest{Text: "hello", Preset: "translate"},
			checkErr: isValidation("preset"),
		},
		{
			name: "missing mode",
			req:  service.RewriteRequest{Text: "hello", ModeID: 9},
			mockSetup: func(m rewriteMocks) {
				m.modes.EXPECT().Get(gomock.Any(), int64(9)).Return(nil, storage.ErrNotFound)
			},
			checkErr: func(err error) bool { return errors.Is(err, service.ErrNotFound) },
		},
		{
			name: "disabled mode",
			req:  service.RewriteRequest{Text: "hello", ModeID: 4},
			mockSetup: func(m rewriteMocks) {
				m.modes.EXPECT().Get(gomock.Any(), int64(4)).Return(&storage.RewriteMode{ID: 4, Name: "Off"}, nil)
			},
			checkErr: isValidation("mode_id"),
		},
		{
			name: "not configured",
			req:  service.RewriteRequest{Text: "hello", Preset: "shorten"},
			mockSetup: func(m rewriteMocks) {
				m.settings.EXPECT().Resolve(gomock.Any()).Return(settings.Snapshot{Endpoint: "https://x"})
			},
			checkErr: func(err error) bool { return errors.Is(err, service.ErrNotConfigured) },
		},
		{
			name: "retries exhausted",
			req:  service.RewriteRequest{Text: "hello", Preset: "shorten"},
			mockSetup: func(m rewriteMocks) {
				m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
				m.client.EXPECT().ApplyRewriteMode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &llm.RequestError{Attempts: 3, Err: errors.New("503")})
			},
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrExternalService) && errors.Is(err, llm.ErrRequestFailed)
			},
		},
		{
			name: "template rejected by client",
			req:  service.RewriteRequest{Text: "hello", Preset: "shorten"},
			mockSetup: func(m rewriteMocks) {
				m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
				m.client.EXPECT().ApplyRewriteMode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", llm.ErrInstructionNotFound)
			},
			checkErr: isValidation("preset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newRewriteService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(m)
			}

			resp, err := svc.Rewrite(testContext(), tt.req)
			if tt.checkErr != nil {
				if !tt.checkErr(err) {
					t.Errorf("Rewrite() error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if resp.Text != tt.wantText || resp.Original != tt.req.Text {
				t.Errorf("Rewrite() = %+v, want text %q", resp, tt.wantText)
			}
		})
	}
}

func TestRewriteService_TestConnection(t *testing.T) {
	svc, m := newRewriteService(t)
	want := llm.ConnectionResult{OK: true, Status: llm.StatusOK, Details: "200 OK"}

	m.settings.EXPECT().Resolve(gomock.Any()).Return(configured)
	m.client.EXPECT().TestConnection(gomock.Any(), configured, "probe", 2*time.Second).Return(want)

	if got := svc.TestConnection(context.Background(), " probe ", 2*time.Second); got != want {
		t.Errorf("TestConnection() = %+v, want %+v", got, want)
	}
}

func TestRewriteService_RequestLogAndPresets(t *testing.T) {
	svc, m := newRewriteService(t)

	log := llm.NewRequestLog(2)
	log.Add(llm.RequestLogEntry{Prompt: "a", Attempt: 1, Success: true})
	m.client.EXPECT().Log().Return(log)

	entries := svc.RequestLog()
	if len(entries) != 1 || entries[0].Prompt != "a" {
		t.Errorf("RequestLog() = %+v", entries)
	}

	presets := svc.Presets()
	if len(presets) != len(llm.Presets) {
		t.Fatalf("Presets() len = %d, want %d", len(presets), len(llm.Presets))
	}
	presets[0].Label = "changed"
	if llm.Presets[0].Label == "changed" {
		t.Error("Presets() must return a copy")
	}
}
