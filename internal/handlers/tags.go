package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ai-notepad/internal/service"
	"ai-notepad/internal/storage"
)

// DefaultRecentLimit is used when /api/recent has no limit parameter.
const DefaultRecentLimit = 20

// BrowseHandler serves tag listing, search and the recent list.
type BrowseHandler struct {
	notes service.NoteService
}

// NewBrowseHandler creates a new BrowseHandler.
func NewBrowseHandler(notes service.NoteService) *BrowseHandler {
	return &BrowseHandler{notes: notes}
}

// SearchResponse wraps search results.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []storage.SearchResult `json:"results"`
}

// Tags handles GET /api/tags.
func (h *BrowseHandler) Tags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tags, err := h.notes.ListTags(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list tags")
		return
	}
	writeJSON(ctx, w, http.StatusOK, tags)
}

// TagNotes handles GET /api/tags/{tag}/notes.
func (h *BrowseHandler) TagNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes, err := h.notes.NotesByTag(ctx, chi.URLParam(r, "tag"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list tagged notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, notes)
}

// Search handles GET /api/search?q=.
func (h *BrowseHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	results, err := h.notes.Search(ctx, query)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search notes")
		return
	}
	if results == nil {
		results = []storage.SearchResult{}
	}
	writeJSON(ctx, w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

// Recent handles GET /api/recent[?limit=]. limit=0 returns every entry.
func (h *BrowseHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	entries, err := h.notes.Recent(ctx, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list recent notes")
		return
	}
	writeJSON(ctx, w, http.StatusOK, entries)
}
