package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NotebookRepo provides notebook operations.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a new NotebookRepo.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

// Create inserts a notebook and returns it with its timestamps.
func (r *NotebookRepo) Create(ctx context.Context, name string) (*Notebook, error) {
	result, err := r.db.ExecContext(ctx, "INSERT INTO notebooks (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notebook: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get notebook id: %w", err)
	}

	return r.Get(ctx, id)
}

// Get returns a notebook by ID or ErrNotFound.
func (r *NotebookRepo) Get(ctx context.Context, id int64) (*Notebook, error) {
	var nb Notebook
	var created, updated timestamp
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM notebooks WHERE id = ?", id,
	).Scan(&nb.ID, &nb.Name, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	nb.CreatedAt, nb.UpdatedAt = created.Time, updated.Time
	return &nb, nil
}

// GetByName returns the first notebook with the given name or ErrNotFound.
func (r *NotebookRepo) GetByName(ctx context.Context, name string) (*Notebook, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM notebooks WHERE name = ? ORDER BY id LIMIT 1", name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return r.Get(ctx, id)
}

// List returns all notebooks ordered by name.
func (r *NotebookRepo) List(ctx context.Context) ([]Notebook, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM notebooks ORDER BY name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notebooks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notebooks := []Notebook{}
	for rows.Next() {
		var nb Notebook
		var created, updated timestamp
		if err := rows.Scan(&nb.ID, &nb.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		nb.CreatedAt, nb.UpdatedAt = created.Time, updated.Time
		notebooks = append(notebooks, nb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notebooks: %w", err)
	}

	return notebooks, nil
}

// Rename changes a notebook's name. Returns ErrNotFound for unknown IDs.
func (r *NotebookRepo) Rename(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notebooks SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", name, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename notebook: %w", err)
	}
	return requireRow(result)
}

// Delete removes a notebook. Its notes stay, with notebook_id set to NULL.
func (r *NotebookRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row result to ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
