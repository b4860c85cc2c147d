package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicateName is returned when a rewrite mode name is already taken.
	ErrDuplicateName = errors.New("rewrite mode name already exists")
	// ErrInvalidAppliesTo is returned for an unknown applies_to value.
	ErrInvalidAppliesTo = errors.New("invalid applies_to value")
)

// Direction is used by Move.
type Direction int

const (
	Up Direction = iota
	Down
)

// BuiltinModes are seeded once into an empty rewrite_modes table.
var BuiltinModes = []RewriteMode{
	{Name: "Rewrite clearer", InstructionTemplate: "Rewrite the following text to be clearer and more concise:\n\n{text}"},
	{Name: "Shorten", InstructionTemplate: "Shorten the following text while preserving meaning:\n\n{text}"},
	{Name: "Make more formal", InstructionTemplate: "Make the following text more formal:\n\n{text}"},
	{Name: "Fix grammar", InstructionTemplate: "Fix grammar and spelling in the following text:\n\n{text}"},
	{Name: "Bullet points", InstructionTemplate: "Convert the following text into bullet points:\n\n{text}"},
}

// ModeRepo stores rewrite modes. Rows flagged builtin can be reordered but
// their content cannot be changed and they cannot be deleted.
type ModeRepo struct {
	db *sql.DB
}

// NewModeRepo creates a new ModeRepo.
func NewModeRepo(db *sql.DB) *ModeRepo {
	return &ModeRepo{db: db}
}

const modeColumns = `id, name, instruction_template, enabled, "order", applies_to, builtin,
	advanced_settings, created_at, updated_at`

func scanMode(row rowScanner) (*RewriteMode, error) {
	var m RewriteMode
	var enabled, builtin sql.NullInt64
	var appliesTo, advanced sql.NullString
	var created, updated timestamp

	if err := row.Scan(&m.ID, &m.Name, &m.InstructionTemplate, &enabled, &m.Order,
		&appliesTo, &builtin, &advanced, &created, &updated); err != nil {
		return nil, err
	}

	m.Enabled = !enabled.Valid || enabled.Int64 != 0
	m.Builtin = builtin.Valid && builtin.Int64 != 0
	m.AppliesTo = AppliesToSelection
	if appliesTo.Valid {
		m.AppliesTo = AppliesTo(appliesTo.String)
	}
	if advanced.Valid && advanced.String != "" {
		if err := json.Unmarshal([]byte(advanced.String), &m.AdvancedSettings); err != nil {
			return nil, fmt.Errorf("failed to decode advanced settings for mode %d: %w", m.ID, err)
		}
	}
	m.CreatedAt, m.UpdatedAt = created.Time, updated.Time
	return &m, nil
}

// List returns all modes ordered by their order key, then by ID.
func (r *ModeRepo) List(ctx context.Context) ([]RewriteMode, error) {
	return r.list(ctx, false)
}

// ListEnabled returns only enabled modes, in display order.
func (r *ModeRepo) ListEnabled(ctx context.Context) ([]RewriteMode, error) {
	return r.list(ctx, true)
}

func (r *ModeRepo) list(ctx context.Context, enabledOnly bool) ([]RewriteMode, error) {
	query := "SELECT " + modeColumns + " FROM rewrite_modes"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += ` ORDER BY "order", id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewrite modes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	modes := []RewriteMode{}
	for rows.Next() {
		m, err := scanMode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rewrite mode: %w", err)
		}
		modes = append(modes, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rewrite modes: %w", err)
	}
	return modes, nil
}

// Get returns a mode by ID or ErrNotFound.
func (r *ModeRepo) Get(ctx context.Context, id int64) (*RewriteMode, error) {
	m, err := scanMode(r.db.QueryRowContext(ctx,
		"SELECT "+modeColumns+" FROM rewrite_modes WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rewrite mode: %w", err)
	}
	return m, nil
}

// Save inserts m when m.ID is zero and sets m.ID. Otherwise it updates the
// row unless it is builtin. The returned flag reports whether a row changed;
// updating a builtin row is a silent no-op.
func (r *ModeRepo) Save(ctx context.Context, m *RewriteMode) (bool, error) {
	if m.AppliesTo == "" {
		m.AppliesTo = AppliesToSelection
	}
	if !m.AppliesTo.Valid() {
		return false, ErrInvalidAppliesTo
	}

	advanced, err := encodeAdvanced(m.AdvancedSettings)
	if err != nil {
		return false, err
	}

	if m.ID == 0 {
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO rewrite_modes (name, instruction_template, enabled, "order", applies_to, builtin, advanced_settings)
			 VALUES (?, ?, ?, ?, ?, 0, ?)`,
			m.Name, m.InstructionTemplate, boolInt(m.Enabled), m.Order, string(m.AppliesTo), advanced,
		)
		if err != nil {
			return false, mapModeError("insert", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("failed to get rewrite mode id: %w", err)
		}
		m.ID = id
		m.Builtin = false
		return true, nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE rewrite_modes SET name = ?, instruction_template = ?, enabled = ?, "order" = ?,
		 applies_to = ?, advanced_settings = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND builtin = 0`,
		m.Name, m.InstructionTemplate, boolInt(m.Enabled), m.Order, string(m.AppliesTo), advanced, m.ID,
	)
	if err != nil {
		return false, mapModeError("update", err)
	}
	return affected(result)
}

// Delete removes a non-builtin mode. Deleting a builtin or unknown ID
// reports false without an error.
func (r *ModeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM rewrite_modes WHERE id = ? AND builtin = 0", id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete rewrite mode: %w", err)
	}
	return affected(result)
}

// NextOrder returns one past the largest order key in use.
func (r *ModeRepo) NextOrder(ctx context.Context) (int, error) {
	var next int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX("order"), 0) + 1 FROM rewrite_modes`,
	).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next order: %w", err)
	}
	return next, nil
}

// SeedBuiltins inserts BuiltinModes unless a builtin row already exists.
// It returns the number of rows inserted.
func (r *ModeRepo) SeedBuiltins(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existing int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rewrite_modes WHERE builtin = 1",
	).Scan(&existing); err != nil {
		return 0, fmt.Errorf("failed to count builtin modes: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	var order int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX("order"), 0) FROM rewrite_modes`,
	).Scan(&order); err != nil {
		return 0, fmt.Errorf("failed to compute next order: %w", err)
	}

	inserted := 0
	for _, m := range BuiltinModes {
		order++
		result, err := tx.ExecContext(ctx,
			`INSERT INTO rewrite_modes (name, instruction_template, enabled, "order", applies_to, builtin)
			 VALUES (?, ?, 1, ?, ?, 1)
			 ON CONFLICT (name) DO NOTHING`,
			m.Name, m.InstructionTemplate, order, string(AppliesToSelection),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to seed mode %q: %w", m.Name, err)
		}
		if ok, err := affected(result); err != nil {
			return 0, err
		} else if ok {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return inserted, nil
}

// Duplicate copies a mode under a free "(copy)" name, placed right after the
// source. The copy is never builtin.
func (r *ModeRepo) Duplicate(ctx context.Context, id int64) (*RewriteMode, error) {
	src, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := r.freeCopyName(ctx, src.Name)
	if err != nil {
		return nil, err
	}

	dup := &RewriteMode{
		Name:                name,
		InstructionTemplate: src.InstructionTemplate,
		Enabled:             src.Enabled,
		Order:               src.Order + 1,
		AppliesTo:           src.AppliesTo,
		AdvancedSettings:    src.AdvancedSettings,
	}
	if _, err := r.Save(ctx, dup); err != nil {
		return nil, err
	}
	return r.Get(ctx, dup.ID)
}

func (r *ModeRepo) freeCopyName(ctx context.Context, base string) (string, error) {
	candidate := base + " (copy)"
	for i := 2; ; i++ {
		var n int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM rewrite_modes WHERE name = ?", candidate,
		).Scan(&n); err != nil {
			return "", fmt.Errorf("failed to check mode name: %w", err)
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (copy %d)", base, i)
	}
}

// Move swaps a mode with its neighbor in display order. It reports false when
// the mode is already first (Up) or last (Down). Builtin rows move too.
func (r *ModeRepo) Move(ctx context.Context, id int64, dir Direction) (bool, error) {
	modes, err := r.List(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i, m := range modes {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, ErrNotFound
	}

	other := idx - 1
	if dir == Down {
		other = idx + 1
	}
	if other < 0 || other >= len(modes) {
		return false, nil
	}

	a, b := modes[idx], modes[other]
	if a.Order != b.Order {
		return true, r.setOrders(ctx, map[int64]int{a.ID: b.Order, b.ID: a.Order})
	}

	// Equal keys cannot express the swap; renumber the whole list instead.
	modes[idx], modes[other] = modes[other], modes[idx]
	ids := make([]int64, len(modes))
	for i, m := range modes {
		ids[i] = m.ID
	}
	return true, r.Reorder(ctx, ids)
}

// Reorder renumbers the given IDs to 1..n in slice order.
func (r *ModeRepo) Reorder(ctx context.Context, ids []int64) error {
	orders := make(map[int64]int, len(ids))
	for i, id := range ids {
		orders[id] = i + 1
	}
	return r.setOrders(ctx, orders)
}

func (r *ModeRepo) setOrders(ctx context.Context, orders map[int64]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for id, order := range orders {
		if _, err := tx.ExecContext(ctx,
			`UPDATE rewrite_modes SET "order" = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			order, id,
		); err != nil {
			return fmt.Errorf("failed to update order of mode %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order change: %w", err)
	}
	return nil
}

func encodeAdvanced(settings map[string]any) (any, error) {
	if len(settings) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode advanced settings: %w", err)
	}
	return string(raw), nil
}

func mapModeError(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateName
	}
	return fmt.Errorf("failed to %s rewrite mode: %w", op, err)
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
