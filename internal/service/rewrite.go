package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rewrite_deps.go -package=mocks ai-notepad/internal/service RewriteClient,ModeLookup
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rewrite_service.go -package=mocks ai-notepad/internal/service RewriteService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/llm"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"
)

// RewriteClient is the AI client as seen by the service layer.
type RewriteClient interface {
	ApplyRewriteMode(ctx context.Context, snap settings.Snapshot, in llm.Instruction, text string) (string, error)
	TestConnection(ctx context.Context, snap settings.Snapshot, deployment string, timeout time.Duration) llm.ConnectionResult
	Log() *llm.RequestLog
}

// ModeLookup finds a saved rewrite mode.
type ModeLookup interface {
	Get(ctx context.Context, id int64) (*storage.RewriteMode, error)
}

// RewriteRequest selects exactly one of Preset, ModeID or Template.
// Deployment overrides the configured deployment for this call.
type RewriteRequest struct {
	Text       string
	Preset     string
	ModeID     int64
	Template   string
	Deployment string
}

// RewriteResponse holds the rewritten text next to the input.
type RewriteResponse struct {
	Text     string
	Original string
}

// RewriteService runs rewrites against the configured AI deployment.
type RewriteService interface {
	Rewrite(ctx context.Context, req RewriteRequest) (RewriteResponse, error)
	TestConnection(ctx context.Context, deployment string, timeout time.Duration) llm.ConnectionResult
	RequestLog() []llm.RequestLogEntry
	Presets() []llm.Preset
}

type rewriteService struct {
	client   RewriteClient
	settings SettingsSource
	modes    ModeLookup
}

// NewRewriteService creates a new RewriteService.
func NewRewriteService(client RewriteClient, settings SettingsSource, modes ModeLookup) RewriteService {
	return &rewriteService{
		client:   client,
		settings: settings,
		modes:    modes,
	}
}

func (s *rewriteService) Rewrite(ctx context.Context, req RewriteRequest) (RewriteResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Text) == "" {
		return RewriteResponse{}, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	in, err := s.instruction(ctx, req)
	if err != nil {
		return RewriteResponse{}, err
	}

	snap := s.settings.Resolve(ctx).WithDeployment(strings.TrimSpace(req.Deployment))
	if err := snap.Validate(); err != nil {
		return RewriteResponse{}, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	logger.InfoContext(ctx, "rewrite requested",
		"instruction", in.String(),
		"deployment", snap.Deployment,
		"text_length", len(req.Text),
	)

	text, err := s.client.ApplyRewriteMode(ctx, snap, in, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrInstructionNotFound):
			return RewriteResponse{}, &ValidationError{Field: "preset", Message: err.Error()}
		case errors.Is(err, settings.ErrNotConfigured):
			return RewriteResponse{}, fmt.Errorf("%w: %w", ErrNotConfigured, err)
		case errors.Is(err, llm.ErrRequestFailed):
			logger.ErrorContext(ctx, "rewrite failed", "error", err)
			return RewriteResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
		default:
			return RewriteResponse{}, WrapError(err, "rewrite failed")
		}
	}

	return RewriteResponse{Text: text, Original: req.Text}, nil
}

// instruction picks the template source named by req.
func (s *rewriteService) instruction(ctx context.Context, req RewriteRequest) (llm.Instruction, error) {
	chosen := 0
	for _, set := range []bool{req.Preset != "", req.ModeID != 0, strings.TrimSpace(req.Template) != ""} {
		if set {
			chosen++
		}
	}
	if chosen != 1 {
		return llm.Instruction{}, &ValidationError{Field: "instruction", Message: "exactly one of preset, mode_id or template is required"}
	}

	switch {
	case req.Preset != "":
		if _, ok := llm.LookupPreset(req.Preset); !ok {
			return llm.Instruction{}, &ValidationError{Field: "preset", Message: fmt.Sprintf("unknown preset %q", req.Preset)}
		}
		return llm.NamedPreset(req.Preset), nil
	case req.ModeID != 0:
		mode, err := s.modes.Get(ctx, req.ModeID)
		if err != nil {
			return llm.Instruction{}, storeError(err, "failed to load rewrite mode")
		}
		if !mode.Enabled {
			return llm.Instruction{}, &ValidationError{Field: "mode_id", Message: fmt.Sprintf("rewrite mode %q is disabled", mode.Name)}
		}
		return llm.CustomTemplate(mode.InstructionTemplate), nil
	default:
		return llm.CustomTemplate(req.Template), nil
	}
}

func (s *rewriteService) TestConnection(ctx context.Context, deployment string, timeout time.Duration) llm.ConnectionResult {
	snap := s.settings.Resolve(ctx)
	result := s.client.TestConnection(ctx, snap, strings.TrimSpace(deployment), timeout)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "connection tested", "status", result.Status)
	return result
}

func (s *rewriteService) RequestLog() []llm.RequestLogEntry {
	return s.client.Log().Entries()
}

func (s *rewriteService) Presets() []llm.Preset {
	out := make([]llm.Preset, len(llm.Presets))
	copy(out, llm.Presets)
	return out
}
