package storage

import (
	"context"
	"errors"
	"testing"
)

func modeNames(modes []RewriteMode) []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.Name
	}
	return names
}

func TestModeRepo_SeedBuiltinsIdempotent(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	n, err := repo.SeedBuiltins(ctx)
	if err != nil {
		t.Fatalf("SeedBuiltins() error = %v", err)
	}
	if n != len(BuiltinModes) {
		t.Errorf("SeedBuiltins() inserted %d, want %d", n, len(BuiltinModes))
	}

	n, err = repo.SeedBuiltins(ctx)
	if err != nil {
		t.Fatalf("SeedBuiltins() second error = %v", err)
	}
	if n != 0 {
		t.Errorf("SeedBuiltins() second run inserted %d, want 0", n)
	}

	modes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(modes) != len(BuiltinModes) {
		t.Fatalf("List() len = %d, want %d", len(modes), len(BuiltinModes))
	}
	for i, m := range modes {
		if !m.Builtin || !m.Enabled || m.Order != i+1 || m.AppliesTo != AppliesToSelection {
			t.Errorf("seeded mode %d = %+v", i, m)
		}
	}
}

func TestModeRepo_OrderZeroSortsFirst(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"one", "two"} {
		m := &RewriteMode{Name: name, InstructionTemplate: "{text}", Enabled: true, Order: i + 1}
		if _, err := repo.Save(ctx, m); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}

	first := &RewriteMode{Name: "zero", InstructionTemplate: "Rewrite THIS: {text}", Enabled: true, Order: 0}
	if _, err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save(zero) error = %v", err)
	}

	modes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := modeNames(modes)
	want := []string{"zero", "one", "two"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

func TestModeRepo_BuiltinGuard(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.SeedBuiltins(ctx); err != nil {
		t.Fatalf("SeedBuiltins() error = %v", err)
	}
	modes, _ := repo.List(ctx)
	builtin := modes[0]

	deleted, err := repo.Delete(ctx, builtin.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted {
		t.Error("Delete() of a builtin reported a change")
	}

	edited := builtin
	edited.InstructionTemplate = "hijacked {text}"
	changed, err := repo.Save(ctx, &edited)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if changed {
		t.Error("Save() of a builtin reported a change")
	}

	got, err := repo.Get(ctx, builtin.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.InstructionTemplate != builtin.InstructionTemplate || !got.Builtin {
		t.Errorf("builtin row changed: %+v", got)
	}
}

func TestModeRepo_SaveUpdateDelete(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	m := &RewriteMode{
		Name:                "Pirate",
		InstructionTemplate: "Say it like a pirate: {text}",
		Enabled:             true,
		Order:               1,
		AppliesTo:           AppliesToWholeNote,
		AdvancedSettings:    map[string]any{"temperature": 0.9},
	}
	if _, err := repo.Save(ctx, m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if m.ID == 0 {
		t.Fatal("Save() did not set ID")
	}

	m.Enabled = false
	m.Name = "Pirate v2"
	changed, err := repo.Save(ctx, m)
	if err != nil || !changed {
		t.Fatalf("Save() update = %v, %v", changed, err)
	}

	got, err := repo.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Pirate v2" || got.Enabled || got.AppliesTo != AppliesToWholeNote {
		t.Errorf("Get() = %+v", got)
	}
	if got.AdvancedSettings["temperature"] != 0.9 {
		t.Errorf("AdvancedSettings = %v", got.AdvancedSettings)
	}

	enabled, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	if len(enabled) != 0 {
		t.Errorf("ListEnabled() = %v, want none", modeNames(enabled))
	}

	deleted, err := repo.Delete(ctx, m.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	if _, err := repo.Get(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
}

func TestModeRepo_SaveErrors(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Save(ctx, &RewriteMode{Name: "a", InstructionTemplate: "{text}", Order: 1}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		name    string
		mode    *RewriteMode
		wantErr error
	}{
		{
			name:    "duplicate name",
			mode:    &RewriteMode{Name: "a", InstructionTemplate: "{text}", Order: 2},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "bad applies_to",
			mode:    &RewriteMode{Name: "b", InstructionTemplate: "{text}", AppliesTo: "paragraph"},
			wantErr: ErrInvalidAppliesTo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Save(ctx, tt.mode); !errors.Is(err, tt.wantErr) {
				t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModeRepo_MoveAndReorder(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	var ids []int64
	for i, name := range []string{"a", "b", "c"} {
		m := &RewriteMode{Name: name, InstructionTemplate: "{text}", Enabled: true, Order: i + 1}
		if _, err := repo.Save(ctx, m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, m.ID)
	}

	moved, err := repo.Move(ctx, ids[2], Up)
	if err != nil || !moved {
		t.Fatalf("Move(c, up) = %v, %v", moved, err)
	}
	modes, _ := repo.List(ctx)
	if got := modeNames(modes); got[1] != "c" || got[2] != "b" {
		t.Errorf("after Move(c, up) = %v, want [a c b]", got)
	}

	moved, err = repo.Move(ctx, ids[0], Up)
	if err != nil || moved {
		t.Errorf("Move(first, up) = %v, %v, want false", moved, err)
	}

	if _, err := repo.Move(ctx, 999, Down); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move(missing) error = %v, want ErrNotFound", err)
	}

	if err := repo.Reorder(ctx, []int64{ids[1], ids[2], ids[0]}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	modes, _ = repo.List(ctx)
	if got := modeNames(modes); got[0] != "b" || got[1] != "c" || got[2] != "a" {
		t.Errorf("after Reorder = %v, want [b c a]", got)
	}
	for i, m := range modes {
		if m.Order != i+1 {
			t.Errorf("mode %s order = %d, want %d", m.Name, m.Order, i+1)
		}
	}
}

func TestModeRepo_MoveEqualOrders(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"a", "b"} {
		m := &RewriteMode{Name: name, InstructionTemplate: "{text}", Order: 5}
		if _, err := repo.Save(ctx, m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		ids = append(ids, m.ID)
	}

	if moved, err := repo.Move(ctx, ids[0], Down); err != nil || !moved {
		t.Fatalf("Move() = %v, %v", moved, err)
	}
	modes, _ := repo.List(ctx)
	if got := modeNames(modes); got[0] != "b" {
		t.Errorf("after Move = %v, want b first", got)
	}
}

func TestModeRepo_BuiltinsCanBeReordered(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.SeedBuiltins(ctx); err != nil {
		t.Fatalf("SeedBuiltins() error = %v", err)
	}
	modes, _ := repo.List(ctx)

	if moved, err := repo.Move(ctx, modes[1].ID, Up); err != nil || !moved {
		t.Fatalf("Move() = %v, %v", moved, err)
	}
	after, _ := repo.List(ctx)
	if after[0].ID != modes[1].ID {
		t.Errorf("builtin did not move: %v", modeNames(after))
	}
}

func TestModeRepo_DuplicateAndNextOrder(t *testing.T) {
	repo := NewModeRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.SeedBuiltins(ctx); err != nil {
		t.Fatalf("SeedBuiltins() error = %v", err)
	}
	modes, _ := repo.List(ctx)
	src := modes[0]

	dup, err := repo.Duplicate(ctx, src.ID)
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}
	if dup.Name != src.Name+" (copy)" || dup.Builtin || dup.Order != src.Order+1 {
		t.Errorf("Duplicate() = %+v", dup)
	}
	if dup.InstructionTemplate != src.InstructionTemplate {
		t.Errorf("Duplicate() template = %q", dup.InstructionTemplate)
	}

	second, err := repo.Duplicate(ctx, src.ID)
	if err != nil {
		t.Fatalf("Duplicate() second error = %v", err)
	}
	if second.Name != src.Name+" (copy 2)" {
		t.Errorf("Duplicate() second name = %q", second.Name)
	}

	if _, err := repo.Duplicate(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Duplicate(missing) error = %v, want ErrNotFound", err)
	}

	next, err := repo.NextOrder(ctx)
	if err != nil {
		t.Fatalf("NextOrder() error = %v", err)
	}
	if next != len(BuiltinModes)+1 {
		t.Errorf("NextOrder() = %d, want %d", next, len(BuiltinModes)+1)
	}
}
