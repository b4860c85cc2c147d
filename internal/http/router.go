package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ai-notepad/internal/handlers"
	"ai-notepad/internal/importer"
	"ai-notepad/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Notes    service.NoteService
	Modes    service.ModeService
	Settings service.SettingsService
	Rewrite  service.RewriteService
	Metadata service.MetadataService
	Importer importer.Service
	DB       handlers.Pinger
	// AllowedOrigins lists the browser origins that may call the API.
	// Empty refuses every cross-origin request.
	AllowedOrigins []string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.AllowedOrigins))
	r.Use(middleware.AllowContentType("application/json"))

	health := handlers.NewHealthHandler(deps.DB, deps.Settings)
	notebooks := handlers.NewNotebookHandler(deps.Notes)
	notes := handlers.NewNoteHandler(deps.Notes, deps.Metadata)
	browse := handlers.NewBrowseHandler(deps.Notes)
	modes := handlers.NewModeHandler(deps.Modes)
	settings := handlers.NewSettingsHandler(deps.Settings, deps.Rewrite)
	rewrite := handlers.NewRewriteHandler(deps.Rewrite)
	imports := handlers.NewImportHandler(deps.Importer)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", health)

		r.Route("/notebooks", func(r chi.Router) {
			r.Get("/", notebooks.List)
			r.Post("/", notebooks.Create)
			r.Patch("/{id}", notebooks.Rename)
			r.Delete("/{id}", notebooks.Delete)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", notes.List)
			r.Post("/", notes.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", notes.Get)
				r.Put("/", notes.Update)
				r.Delete("/", notes.Delete)
				r.Post("/open", notes.Open)
				r.Get("/html", notes.HTML)
				r.Post("/metadata", notes.GenerateMetadata)
				r.Get("/tags", notes.Tags)
				r.Post("/tags", notes.AddTag)
				r.Delete("/tags/{tag}", notes.RemoveTag)
			})
		})

		r.Get("/tags", browse.Tags)
		r.Get("/tags/{tag}/notes", browse.TagNotes)
		r.Get("/search", browse.Search)
		r.Get("/recent", browse.Recent)

		r.Route("/modes", func(r chi.Router) {
			r.Get("/", modes.List)
			r.Post("/", modes.Create)
			r.Put("/order", modes.Reorder)
			r.Put("/{id}", modes.Update)
			r.Delete("/{id}", modes.Delete)
			r.Post("/{id}/duplicate", modes.Duplicate)
			r.Post("/{id}/move", modes.Move)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/connection", settings.Connection)
			r.Put("/connection", settings.SaveConnection)
			r.Put("/api-key", settings.SetAPIKey)
			r.Delete("/api-key", settings.DeleteAPIKey)
			r.Post("/test", settings.TestConnection)
		})

		r.Get("/presets", rewrite.Presets)
		r.Post("/rewrite", rewrite.Rewrite)
		r.Get("/rewrite/log", rewrite.Log)

		r.Method(http.MethodPost, "/import", imports)
	})

	return r
}
