// Package importer loads a directory of markdown files into a notebook.
package importer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_importer.go -package=mocks ai-notepad/internal/importer Service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/storage"
)

// ErrNotDirectory is returned when the import root is not a directory.
var ErrNotDirectory = errors.New("import root is not a directory")

// NotebookStore finds or creates the target notebook.
type NotebookStore interface {
	GetByName(ctx context.Context, name string) (*storage.Notebook, error)
	Create(ctx context.Context, name string) (*storage.Notebook, error)
}

// NoteStore lists and creates notes.
type NoteStore interface {
	List(ctx context.Context, notebookID *int64) ([]storage.Note, error)
	Create(ctx context.Context, notebookID *int64, title, body string) (*storage.Note, error)
}

// TagStore links tags to notes.
type TagStore interface {
	AddToNote(ctx context.Context, noteID int64, name string) (*storage.Tag, error)
}

// Result summarizes one import run.
type Result struct {
	Notebook *storage.Notebook `json:"notebook"`
	Imported int               `json:"imported"`
	// Skipped lists files whose title already exists in the notebook.
	Skipped []string `json:"skipped,omitempty"`
	// Failed maps relative paths to the error that stopped them.
	Failed map[string]string `json:"failed,omitempty"`
}

// Service imports a directory tree.
type Service interface {
	Import(ctx context.Context, root string) (Result, error)
}

// Importer creates one notebook per import root and one note per markdown
// file, tagging each note with its folder names.
type Importer struct {
	notebooks NotebookStore
	notes     NoteStore
	tags      TagStore
	parser    goldmark.Markdown
}

// New creates an Importer.
func New(notebooks NotebookStore, notes NoteStore, tags TagStore) *Importer {
	return &Importer{
		notebooks: notebooks,
		notes:     notes,
		tags:      tags,
		parser:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Import reads every markdown file under root into the notebook named after
// root. Running it again skips notes whose title is already present.
func (im *Importer) Import(ctx context.Context, root string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat import root: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	files, err := Scan(ctx, root)
	if err != nil {
		return Result{}, err
	}

	nb, err := im.notebook(ctx, filepath.Base(root))
	if err != nil {
		return Result{}, err
	}

	existing, err := im.notes.List(ctx, &nb.ID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list notebook notes: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, n := range existing {
		titles[n.Title] = true
	}

	result := Result{Notebook: nb}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			result.fail(f.RelPath, err)
			continue
		}

		title := im.Title(content, f.RelPath)
		if titles[title] {
			result.Skipped = append(result.Skipped, f.RelPath)
			continue
		}

		note, err := im.notes.Create(ctx, &nb.ID, title, string(content))
		if err != nil {
			result.fail(f.RelPath, err)
			continue
		}
		titles[title] = true
		result.Imported++

		for _, tag := range storage.NormalizeTags(strings.Split(f.Folder, "/")) {
			if _, err := im.tags.AddToNote(ctx, note.ID, tag); err != nil {
				logger.WarnContext(ctx, "failed to tag imported note", "note_id", note.ID, "tag", tag, "error", err)
			}
		}
	}

	logger.InfoContext(ctx, "import finished",
		"root", root,
		"notebook_id", nb.ID,
		"imported", result.Imported,
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)
	return result, nil
}

// Title derives a note title from markdown content.
func (im *Importer) Title(content []byte, filename string) string {
	if len(content) == 0 {
		return titleFromFilename(filename)
	}
	doc := im.parser.Parser().Parse(text.NewReader(content))
	return extractTitle(doc, content, filename)
}

func (im *Importer) notebook(ctx context.Context, name string) (*storage.Notebook, error) {
	nb, err := im.notebooks.GetByName(ctx, name)
	if err == nil {
		return nb, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up notebook: %w", err)
	}
	nb, err = im.notebooks.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create notebook: %w", err)
	}
	return nb, nil
}

func (r *Result) fail(relPath string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]string)
	}
	r.Failed[relPath] = err.Error()
}
