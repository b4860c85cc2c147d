package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_mode_store.go -package=mocks ai-notepad/internal/service ModeStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_mode_service.go -package=mocks ai-notepad/internal/service ModeService

import (
	"context"
	"fmt"
	"strings"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/storage"
)

// ModeStore persists rewrite modes.
type ModeStore interface {
	List(ctx context.Context) ([]storage.RewriteMode, error)
	ListEnabled(ctx context.Context) ([]storage.RewriteMode, error)
	Get(ctx context.Context, id int64) (*storage.RewriteMode, error)
	Save(ctx context.Context, m *storage.RewriteMode) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	NextOrder(ctx context.Context) (int, error)
	Duplicate(ctx context.Context, id int64) (*storage.RewriteMode, error)
	Move(ctx context.Context, id int64, dir storage.Direction) (bool, error)
	Reorder(ctx context.Context, ids []int64) error
}

// ModeInput carries the editable fields of a rewrite mode. A nil Order on
// create appends the mode at the end.
type ModeInput struct {
	Name                string
	InstructionTemplate string
	Enabled             bool
	Order               *int
	AppliesTo           storage.AppliesTo
	AdvancedSettings    map[string]any
}

// ModeService manages the ordered list of rewrite modes.
type ModeService interface {
	List(ctx context.Context, enabledOnly bool) ([]storage.RewriteMode, error)
	Create(ctx context.Context, in ModeInput) (*storage.RewriteMode, error)
	Update(ctx context.Context, id int64, in ModeInput) (*storage.RewriteMode, error)
	Delete(ctx context.Context, id int64) error
	Duplicate(ctx context.Context, id int64) (*storage.RewriteMode, error)
	// Move reports false when the mode is already at that end of the list.
	Move(ctx context.Context, id int64, dir storage.Direction) (bool, error)
	Reorder(ctx context.Context, ids []int64) error
}

type modeService struct {
	store ModeStore
}

// NewModeService creates a new ModeService.
func NewModeService(store ModeStore) ModeService {
	return &modeService{store: store}
}

func (s *modeService) List(ctx context.Context, enabledOnly bool) ([]storage.RewriteMode, error) {
	var (
		modes []storage.RewriteMode
		err   error
	)
	if enabledOnly {
		modes, err = s.store.ListEnabled(ctx)
	} else {
		modes, err = s.store.List(ctx)
	}
	return modes, storeError(err, "failed to list rewrite modes")
}

func (s *modeService) Create(ctx context.Context, in ModeInput) (*storage.RewriteMode, error) {
	if err := validateMode(in); err != nil {
		return nil, err
	}

	m := &storage.RewriteMode{
		Name:                strings.TrimSpace(in.Name),
		InstructionTemplate: in.InstructionTemplate,
		Enabled:             in.Enabled,
		AppliesTo:           in.AppliesTo,
		AdvancedSettings:    in.AdvancedSettings,
	}
	if in.Order != nil {
		m.Order = *in.Order
	} else {
		next, err := s.store.NextOrder(ctx)
		if err != nil {
			return nil, storeError(err, "failed to compute mode order")
		}
		m.Order = next
	}

	if _, err := s.store.Save(ctx, m); err != nil {
		return nil, storeError(err, "failed to create rewrite mode")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "rewrite mode created", "mode_id", m.ID, "name", m.Name)

	created, err := s.store.Get(ctx, m.ID)
	return created, storeError(err, "failed to load rewrite mode")
}

func (s *modeService) Update(ctx context.Context, id int64, in ModeInput) (*storage.RewriteMode, error) {
	if err := validateMode(in); err != nil {
		return nil, err
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load rewrite mode")
	}
	if current.Builtin {
		return nil, fmt.Errorf("rewrite mode %q is built-in: %w", current.Name, ErrConflict)
	}

	m := &storage.RewriteMode{
		ID:                  id,
		Name:                strings.TrimSpace(in.Name),
		InstructionTemplate: in.InstructionTemplate,
		Enabled:             in.Enabled,
		Order:               current.Order,
		AppliesTo:           in.AppliesTo,
		AdvancedSettings:    in.AdvancedSettings,
	}
	if in.Order != nil {
		m.Order = *in.Order
	}

	changed, err := s.store.Save(ctx, m)
	if err != nil {
		return nil, storeError(err, "failed to update rewrite mode")
	}
	if !changed {
		return nil, fmt.Errorf("rewrite mode %d was not updated: %w", id, ErrConflict)
	}

	updated, err := s.store.Get(ctx, id)
	return updated, storeError(err, "failed to load rewrite mode")
}

func (s *modeService) Delete(ctx context.Context, id int64) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return storeError(err, "failed to load rewrite mode")
	}
	if current.Builtin {
		return fmt.Errorf("rewrite mode %q is built-in: %w", current.Name, ErrConflict)
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return storeError(err, "failed to delete rewrite mode")
	}
	if !deleted {
		return fmt.Errorf("rewrite mode %d was not deleted: %w", id, ErrConflict)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "rewrite mode deleted", "mode_id", id)
	return nil
}

func (s *modeService) Duplicate(ctx context.Context, id int64) (*storage.RewriteMode, error) {
	dup, err := s.store.Duplicate(ctx, id)
	return dup, storeError(err, "failed to duplicate rewrite mode")
}

func (s *modeService) Move(ctx context.Context, id int64, dir storage.Direction) (bool, error) {
	moved, err := s.store.Move(ctx, id, dir)
	return moved, storeError(err, "failed to move rewrite mode")
}

func (s *modeService) Reorder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "ids", Message: "cannot be empty"}
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: "ids", Message: fmt.Sprintf("duplicate id %d", id)}
		}
		seen[id] = struct{}{}
	}
	return storeError(s.store.Reorder(ctx, ids), "failed to reorder rewrite modes")
}

func validateMode(in ModeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if strings.TrimSpace(in.InstructionTemplate) == "" {
		return &ValidationError{Field: "instruction_template", Message: "cannot be empty"}
	}
	if in.AppliesTo != "" && !in.AppliesTo.Valid() {
		return &ValidationError{Field: "applies_to", Message: "must be selection-only or whole-note-default"}
	}
	return nil
}
