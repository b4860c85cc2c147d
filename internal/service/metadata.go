package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_metadata_deps.go -package=mocks ai-notepad/internal/service Summarizer,MetadataStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_metadata_service.go -package=mocks ai-notepad/internal/service MetadataService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/llm"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"
)

// Summarizer produces a title and summary for a note body.
type Summarizer interface {
	Summarize(ctx context.Context, snap settings.Snapshot, body string) (llm.Summary, error)
}

// MetadataStore reads notes and stores generated metadata.
type MetadataStore interface {
	Get(ctx context.Context, id int64) (*storage.Note, error)
	SetGeneratedMetadata(ctx context.Context, id int64, title, summary string) error
}

// MetadataService fills the generated title and summary of a note.
type MetadataService interface {
	Generate(ctx context.Context, noteID int64) (*storage.Note, error)
}

type metadataService struct {
	summarizer Summarizer
	settings   SettingsSource
	notes      MetadataStore
}

// NewMetadataService creates a new MetadataService.
func NewMetadataService(summarizer Summarizer, settings SettingsSource, notes MetadataStore) MetadataService {
	return &metadataService{
		summarizer: summarizer,
		settings:   settings,
		notes:      notes,
	}
}

func (s *metadataService) Generate(ctx context.Context, noteID int64) (*storage.Note, error) {
	note, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return nil, storeError(err, "failed to load note")
	}
	if strings.TrimSpace(note.Body) == "" {
		return nil, &ValidationError{Field: "body", Message: "note is empty"}
	}

	snap := s.settings.Resolve(ctx)
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	summary, err := s.summarizer.Summarize(ctx, snap, note.Body)
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	if err := s.notes.SetGeneratedMetadata(ctx, noteID, summary.Title, summary.Summary); err != nil {
		return nil, storeError(err, "failed to store generated metadata")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note metadata generated", "note_id", noteID)

	updated, err := s.notes.Get(ctx, noteID)
	return updated, storeError(err, "failed to load note")
}
