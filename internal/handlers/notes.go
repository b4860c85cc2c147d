package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/service"
)

// NoteHandler serves the note, note tag and note rendering endpoints.
type NoteHandler struct {
	notes    service.NoteService
	metadata service.MetadataService
	markdown goldmark.Markdown
	page     *template.Template
}

// NoteRequest is the body of note create and update.
//
// swagger:model NoteRequest
type NoteRequest struct {
	NotebookID *int64 `json:"notebook_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// TagRequest is the body of POST /api/notes/{id}/tags.
//
// swagger:model TagRequest
type TagRequest struct {
	Tag string `json:"tag"`
}

// TagsResponse lists the tags of one note.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	Summary string
	Content template.HTML
}

var notePage = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #ddd;
      padding-bottom: 1rem;
    }
    pre {
      background: #f6f8fa;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 6px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
    }
    blockquote {
      border-left: 4px solid #ccc;
      padding-left: 1rem;
      margin-left: 0;
      color: #555;
    }
    .summary {
      color: #666;
      font-style: italic;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    {{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes service.NoteService, metadata service.MetadataService) *NoteHandler {
	return &NoteHandler{
		notes:    notes,
		metadata: metadata,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		page: notePage,
	}
}

// List handles GET /api/notes[?notebook_id=].
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebookID, err := queryID(r, "notebook_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notes, err := h.notes.ListNotes(ctx, notebookID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, notes)
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.notes.CreateNote(ctx, service.NoteInput(req))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create note")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, note)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.notes.GetNote(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, note)
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.notes.UpdateNote(ctx, id, service.NoteInput(req))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Open handles POST /api/notes/{id}/open: returns the note and records it as
// recently opened.
func (h *NoteHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.notes.OpenNote(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to open note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, note)
}

// Tags handles GET /api/notes/{id}/tags.
func (h *NoteHandler) Tags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tags, err := h.notes.NoteTags(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list note tags")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, TagsResponse{Tags: tags})
}

// AddTag handles POST /api/notes/{id}/tags.
func (h *NoteHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req TagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tag, err := h.notes.AddTag(ctx, id, req.Tag)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to tag note")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, tag)
}

// RemoveTag handles DELETE /api/notes/{id}/tags/{tag}.
func (h *NoteHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.notes.RemoveTag(ctx, id, chi.URLParam(r, "tag")); err != nil {
		handleServiceError(w, ctx, err, "Failed to untag note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateMetadata handles POST /api/notes/{id}/metadata: asks the AI
// deployment for a title and summary and stores them on the note.
func (h *NoteHandler) GenerateMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.metadata.Generate(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate note metadata")
		return
	}
	writeJSON(ctx, w, http.StatusOK, note)
}

// HTML handles GET /api/notes/{id}/html: renders the note body as markdown.
// Raw HTML in the body is not passed through.
func (h *NoteHandler) HTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	note, err := h.notes.GetNote(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load note")
		return
	}

	var body bytes.Buffer
	if err := h.markdown.Convert([]byte(note.Body), &body); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "note_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render note")
		return
	}

	data := notePageData{
		Title:   note.Title,
		Content: template.HTML(body.String()),
	}
	if note.GeneratedSummary != nil {
		data.Summary = *note.GeneratedSummary
	}

	var page bytes.Buffer
	if err := h.page.Execute(&page, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "note_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render note")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", fmt.Sprint(page.Len()))
	_, _ = page.WriteTo(w)
}
