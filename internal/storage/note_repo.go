package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// SearchLimit caps the number of notes returned by Search.
const SearchLimit = 50

// NoteRepo provides methods for note operations.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = `id, notebook_id, title, body, ai_generated_title, generated_title,
	generated_summary, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*Note, error) {
	var note Note
	var notebookID sql.NullInt64
	var aiTitle sql.NullInt64
	var genTitle, genSummary sql.NullString
	var created, updated timestamp

	if err := row.Scan(&note.ID, &notebookID, &note.Title, &note.Body, &aiTitle,
		&genTitle, &genSummary, &created, &updated); err != nil {
		return nil, err
	}

	if notebookID.Valid {
		id := notebookID.Int64
		note.NotebookID = &id
	}
	note.AIGeneratedTitle = aiTitle.Valid && aiTitle.Int64 != 0
	if genTitle.Valid {
		note.GeneratedTitle = &genTitle.String
	}
	if genSummary.Valid {
		note.GeneratedSummary = &genSummary.String
	}
	note.CreatedAt, note.UpdatedAt = created.Time, updated.Time
	return &note, nil
}

// Create inserts a note and returns the stored row.
func (r *NoteRepo) Create(ctx context.Context, notebookID *int64, title, body string) (*Note, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (notebook_id, title, body) VALUES (?, ?, ?)",
		nullableID(notebookID), title, body,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get note id: %w", err)
	}

	return r.Get(ctx, id)
}

// Get returns a note by ID. Returns nil and ErrNotFound if not found.
func (r *NoteRepo) Get(ctx context.Context, id int64) (*Note, error) {
	note, err := scanNote(r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// List returns notes, most recently updated first. A non-nil notebookID
// restricts the result to that notebook.
func (r *NoteRepo) List(ctx context.Context, notebookID *int64) ([]Note, error) {
	query := "SELECT " + noteColumns + " FROM notes"
	var args []any
	if notebookID != nil {
		query += " WHERE notebook_id = ?"
		args = append(args, *notebookID)
	}
	query += " ORDER BY updated_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// Update replaces a note's title and body and bumps updated_at.
func (r *NoteRepo) Update(ctx context.Context, id int64, title, body string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, body = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		title, body, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(result)
}

// Rename changes only the title.
func (r *NoteRepo) Rename(ctx context.Context, id int64, title string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", title, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename note: %w", err)
	}
	return requireRow(result)
}

// Move assigns a note to a notebook, or detaches it when notebookID is nil.
func (r *NoteRepo) Move(ctx context.Context, id int64, notebookID *int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notes SET notebook_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullableID(notebookID), id,
	)
	if err != nil {
		return fmt.Errorf("failed to move note: %w", err)
	}
	return requireRow(result)
}

// SetGeneratedMetadata stores an AI generated title and summary and marks the
// note's title as AI generated.
func (r *NoteRepo) SetGeneratedMetadata(ctx context.Context, id int64, title, summary string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET generated_title = ?, generated_summary = ?, ai_generated_title = 1,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, summary, id,
	)
	if err != nil {
		return fmt.Errorf("failed to store generated metadata: %w", err)
	}
	return requireRow(result)
}

// Delete removes a note. Returns ErrNotFound for unknown IDs.
func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireRow(result)
}

// Search uses the notes_fts index when it exists. Any failure there, including
// a missing index or an invalid MATCH expression, falls back to a
// case-insensitive substring match over title and body.
func (r *NoteRepo) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if enabled, err := FullTextEnabled(ctx, r.db); err == nil && enabled {
		results, err := r.queryResults(ctx,
			`SELECT notes.id, notes.title, notes.body FROM notes_fts
			 JOIN notes ON notes.id = notes_fts.rowid
			 WHERE notes_fts MATCH ? ORDER BY rank LIMIT ?`,
			query, SearchLimit,
		)
		if err == nil {
			return results, nil
		}
	}

	like := "%" + query + "%"
	results, err := r.queryResults(ctx,
		"SELECT id, title, body FROM notes WHERE title LIKE ? OR body LIKE ? ORDER BY updated_at DESC, id DESC LIMIT ?",
		like, like, SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return results, nil
}

func (r *NoteRepo) queryResults(ctx context.Context, query string, args ...any) ([]SearchResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	results := []SearchResult{}
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(&res.ID, &res.Title, &res.Body); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
