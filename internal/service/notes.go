package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_stores.go -package=mocks ai-notepad/internal/service NotebookStore,NoteStore,TagStore,RecentStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks ai-notepad/internal/service NoteService

import (
	"context"
	"strings"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/storage"
)

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "Untitled"

// NotebookStore persists notebooks.
type NotebookStore interface {
	Create(ctx context.Context, name string) (*storage.Notebook, error)
	Get(ctx context.Context, id int64) (*storage.Notebook, error)
	List(ctx context.Context) ([]storage.Notebook, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// NoteStore persists notes and answers search queries.
type NoteStore interface {
	Create(ctx context.Context, notebookID *int64, title, body string) (*storage.Note, error)
	Get(ctx context.Context, id int64) (*storage.Note, error)
	List(ctx context.Context, notebookID *int64) ([]storage.Note, error)
	Update(ctx context.Context, id int64, title, body string) error
	Move(ctx context.Context, id int64, notebookID *int64) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]storage.SearchResult, error)
}

// TagStore persists tags and their links to notes.
type TagStore interface {
	AddToNote(ctx context.Context, noteID int64, name string) (*storage.Tag, error)
	RemoveFromNote(ctx context.Context, noteID int64, name string) error
	ForNote(ctx context.Context, noteID int64) ([]string, error)
	List(ctx context.Context) ([]storage.Tag, error)
	Notes(ctx context.Context, name string) ([]storage.Note, error)
}

// RecentStore records which notes were opened.
type RecentStore interface {
	Touch(ctx context.Context, noteID int64) error
	List(ctx context.Context, limit int) ([]storage.RecentEntry, error)
}

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	NotebookID *int64
	Title      string
	Body       string
}

// NoteService manages notebooks, notes, tags, search and the recent list.
type NoteService interface {
	ListNotebooks(ctx context.Context) ([]storage.Notebook, error)
	CreateNotebook(ctx context.Context, name string) (*storage.Notebook, error)
	RenameNotebook(ctx context.Context, id int64, name string) (*storage.Notebook, error)
	DeleteNotebook(ctx context.Context, id int64) error

	ListNotes(ctx context.Context, notebookID *int64) ([]storage.Note, error)
	CreateNote(ctx context.Context, in NoteInput) (*storage.Note, error)
	GetNote(ctx context.Context, id int64) (*storage.Note, error)
	UpdateNote(ctx context.Context, id int64, in NoteInput) (*storage.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	// OpenNote returns the note and records it in the recent list.
	OpenNote(ctx context.Context, id int64) (*storage.Note, error)

	NoteTags(ctx context.Context, id int64) ([]string, error)
	AddTag(ctx context.Context, id int64, tag string) (*storage.Tag, error)
	RemoveTag(ctx context.Context, id int64, tag string) error
	ListTags(ctx context.Context) ([]storage.Tag, error)
	NotesByTag(ctx context.Context, tag string) ([]storage.Note, error)

	Search(ctx context.Context, query string) ([]storage.SearchResult, error)
	Recent(ctx context.Context, limit int) ([]storage.RecentEntry, error)
}

type noteService struct {
	notebooks NotebookStore
	notes     NoteStore
	tags      TagStore
	recent    RecentStore
}

// NewNoteService creates a new NoteService.
func NewNoteService(notebooks NotebookStore, notes NoteStore, tags TagStore, recent RecentStore) NoteService {
	return &noteService{
		notebooks: notebooks,
		notes:     notes,
		tags:      tags,
		recent:    recent,
	}
}

func (s *noteService) ListNotebooks(ctx context.Context) ([]storage.Notebook, error) {
	notebooks, err := s.notebooks.List(ctx)
	return notebooks, storeError(err, "failed to list notebooks")
}

func (s *noteService) CreateNotebook(ctx context.Context, name string) (*storage.Notebook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	nb, err := s.notebooks.Create(ctx, name)
	if err != nil {
		return nil, storeError(err, "failed to create notebook")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "notebook created", "notebook_id", nb.ID)
	return nb, nil
}

func (s *noteService) RenameNotebook(ctx context.Context, id int64, name string) (*storage.Notebook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if err := s.notebooks.Rename(ctx, id, name); err != nil {
		return nil, storeError(err, "failed to rename notebook")
	}
	nb, err := s.notebooks.Get(ctx, id)
	return nb, storeError(err, "failed to load notebook")
}

func (s *noteService) DeleteNotebook(ctx context.Context, id int64) error {
	return storeError(s.notebooks.Delete(ctx, id), "failed to delete notebook")
}

func (s *noteService) ListNotes(ctx context.Context, notebookID *int64) ([]storage.Note, error) {
	notes, err := s.notes.List(ctx, notebookID)
	return notes, storeError(err, "failed to list notes")
}

func (s *noteService) CreateNote(ctx context.Context, in NoteInput) (*storage.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultNoteTitle
	}
	if err := s.requireNotebook(ctx, in.NotebookID); err != nil {
		return nil, err
	}

	note, err := s.notes.Create(ctx, in.NotebookID, title, in.Body)
	if err != nil {
		return nil, storeError(err, "failed to create note")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note created", "note_id", note.ID)
	return note, nil
}

func (s *noteService) GetNote(ctx context.Context, id int64) (*storage.Note, error) {
	note, err := s.notes.Get(ctx, id)
	return note, storeError(err, "failed to load note")
}

func (s *noteService) UpdateNote(ctx context.Context, id int64, in NoteInput) (*storage.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if err := s.requireNotebook(ctx, in.NotebookID); err != nil {
		return nil, err
	}

	if err := s.notes.Update(ctx, id, title, in.Body); err != nil {
		return nil, storeError(err, "failed to update note")
	}
	if err := s.notes.Move(ctx, id, in.NotebookID); err != nil {
		return nil, storeError(err, "failed to move note")
	}
	note, err := s.notes.Get(ctx, id)
	return note, storeError(err, "failed to load note")
}

func (s *noteService) DeleteNote(ctx context.Context, id int64) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return storeError(err, "failed to delete note")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note deleted", "note_id", id)
	return nil
}

func (s *noteService) OpenNote(ctx context.Context, id int64) (*storage.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load note")
	}
	if err := s.recent.Touch(ctx, id); err != nil {
		return nil, storeError(err, "failed to record recent note")
	}
	return note, nil
}

func (s *noteService) NoteTags(ctx context.Context, id int64) ([]string, error) {
	if _, err := s.notes.Get(ctx, id); err != nil {
		return nil, storeError(err, "failed to load note")
	}
	tags, err := s.tags.ForNote(ctx, id)
	return tags, storeError(err, "failed to list note tags")
}

func (s *noteService) AddTag(ctx context.Context, id int64, tag string) (*storage.Tag, error) {
	if storage.NormalizeTag(tag) == "" {
		return nil, &ValidationError{Field: "tag", Message: "cannot be empty"}
	}
	if _, err := s.notes.Get(ctx, id); err != nil {
		return nil, storeError(err, "failed to load note")
	}
	t, err := s.tags.AddToNote(ctx, id, tag)
	return t, storeError(err, "failed to tag note")
}

func (s *noteService) RemoveTag(ctx context.Context, id int64, tag string) error {
	return storeError(s.tags.RemoveFromNote(ctx, id, tag), "failed to untag note")
}

func (s *noteService) ListTags(ctx context.Context) ([]storage.Tag, error) {
	tags, err := s.tags.List(ctx)
	return tags, storeError(err, "failed to list tags")
}

func (s *noteService) NotesByTag(ctx context.Context, tag string) ([]storage.Note, error) {
	if storage.NormalizeTag(tag) == "" {
		return nil, &ValidationError{Field: "tag", Message: "cannot be empty"}
	}
	notes, err := s.tags.Notes(ctx, tag)
	return notes, storeError(err, "failed to list tagged notes")
}

func (s *noteService) Search(ctx context.Context, query string) ([]storage.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	results, err := s.notes.Search(ctx, query)
	if err != nil {
		return nil, storeError(err, "failed to search notes")
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "search finished", "results", len(results))
	return results, nil
}

func (s *noteService) Recent(ctx context.Context, limit int) ([]storage.RecentEntry, error) {
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Message: "must not be negative"}
	}
	entries, err := s.recent.List(ctx, limit)
	return entries, storeError(err, "failed to list recent notes")
}

func (s *noteService) requireNotebook(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.notebooks.Get(ctx, *id); err != nil {
		return storeError(err, "failed to load notebook")
	}
	return nil
}
