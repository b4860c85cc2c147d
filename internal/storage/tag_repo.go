package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// NormalizeTag trims a tag, collapses internal whitespace runs to a single
// space and lowercases it.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NormalizeTags normalizes names, dropping empty results and duplicates while
// keeping first-seen order.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		nn := NormalizeTag(n)
		if nn == "" {
			continue
		}
		if _, ok := seen[nn]; ok {
			continue
		}
		seen[nn] = struct{}{}
		out = append(out, nn)
	}
	return out
}

// ErrEmptyTag is returned when a tag normalizes to the empty string.
var ErrEmptyTag = errors.New("tag name is empty")

// TagRepo provides tag operations.
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo creates a new TagRepo.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// GetOrCreate returns the tag with the normalized name, creating it if needed.
func (r *TagRepo) GetOrCreate(ctx context.Context, name string) (*Tag, error) {
	name = NormalizeTag(name)
	if name == "" {
		return nil, ErrEmptyTag
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name,
	); err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	var tag Tag
	if err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM tags WHERE name = ?", name,
	).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}
	return &tag, nil
}

// AddToNote links a tag to a note. Linking twice is a no-op.
func (r *TagRepo) AddToNote(ctx context.Context, noteID int64, name string) (*Tag, error) {
	tag, err := r.GetOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		noteID, tag.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to link tag: %w", err)
	}
	return tag, nil
}

// RemoveFromNote unlinks a tag from a note. Returns ErrNotFound when the link
// does not exist.
func (r *TagRepo) RemoveFromNote(ctx context.Context, noteID int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ?
		 AND tag_id = (SELECT id FROM tags WHERE name = ?)`,
		noteID, NormalizeTag(name),
	)
	if err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}
	return requireRow(result)
}

// ForNote returns the tag names of a note, sorted.
func (r *TagRepo) ForNote(ctx context.Context, noteID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.name FROM tags t JOIN note_tags nt ON t.id = nt.tag_id
		 WHERE nt.note_id = ? ORDER BY t.name`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query note tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return names, nil
}

// List returns every tag ordered by name.
func (r *TagRepo) List(ctx context.Context) ([]Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tags := []Tag{}
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

// Notes returns the notes carrying the tag, most recently updated first.
func (r *TagRepo) Notes(ctx context.Context, name string) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT n.id, n.notebook_id, n.title, n.body, n.ai_generated_title, n.generated_title,
		 n.generated_summary, n.created_at, n.updated_at
		 FROM notes n
		 JOIN note_tags nt ON nt.note_id = n.id
		 JOIN tags t ON t.id = nt.tag_id
		 WHERE t.name = ? ORDER BY n.updated_at DESC, n.id DESC`,
		NormalizeTag(name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tagged notes: %w", err)
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
		return nil, fmt.Errorf("error iterating tagged notes: %w", err)
	}
	return notes, nil
}
