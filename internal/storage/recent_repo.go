package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// RecentRepo records and lists note opens.
type RecentRepo struct {
	db *sql.DB
}

// NewRecentRepo creates a new RecentRepo.
func NewRecentRepo(db *sql.DB) *RecentRepo {
	return &RecentRepo{db: db}
}

// Touch appends an open event for the note.
func (r *RecentRepo) Touch(ctx context.Context, noteID int64) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO recent (note_id, last_opened_at) VALUES (?, CURRENT_TIMESTAMP)", noteID,
	); err != nil {
		return fmt.Errorf("failed to record recent note: %w", err)
	}
	return nil
}

// List returns the newest open events first. Rows with equal timestamps are
// ordered by insertion. A non-positive limit returns every event.
func (r *RecentRepo) List(ctx context.Context, limit int) ([]RecentEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT r.note_id, COALESCE(n.title, ''), r.last_opened_at
		 FROM recent r LEFT JOIN notes n ON n.id = r.note_id
		 ORDER BY r.last_opened_at DESC, r.id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := []RecentEntry{}
	for rows.Next() {
		var e RecentEntry
		var opened timestamp
		if err := rows.Scan(&e.NoteID, &e.Title, &opened); err != nil {
			return nil, fmt.Errorf("failed to scan recent entry: %w", err)
		}
		e.LastOpenedAt = opened.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent entries: %w", err)
	}
	return entries, nil
}
