package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-notepad/internal/config"
	"ai-notepad/internal/credstore"
	"ai-notepad/internal/http"
	"ai-notepad/internal/importer"
	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API stores notes, notebooks, tags and rewrite modes in a local SQLite
// database and rewrites note text through an Azure OpenAI deployment.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: AI Notepad API
//   description: |
//     Local note-taking API with AI-assisted rewriting.
//     Notes are searchable by full text; rewrite modes are ordered, user-editable prompt templates.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer func() {
		_ = logCloser.Close()
	}()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fts, err := storage.FullTextEnabled(ctx, db)
	if err != nil {
		slog.Warn("Failed to check full-text index", "error", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "fts5", fts)
	if !storage.FullTextCompiled {
		// go build -tags sqlite_fts5 ./cmd/api
		slog.Warn("Binary built without sqlite_fts5; search uses substring matching")
	}

	// Create repository instances
	notebookRepo := storage.NewNotebookRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	tagRepo := storage.NewTagRepo(db)
	recentRepo := storage.NewRecentRepo(db)
	modeRepo := storage.NewModeRepo(db)
	settingsRepo := storage.NewSettingsRepo(db)

	seeded, err := modeRepo.SeedBuiltins(ctx)
	if err != nil {
		log.Fatalf("Failed to seed rewrite modes: %v", err)
	}
	if seeded > 0 {
		slog.Info("Built-in rewrite modes seeded", "count", seeded)
	}

	// Connection settings are resolved per request: environment, then the
	// saved row, then defaults.
	keys := cfg.KeyBinding(credstore.New(nil))
	resolver := settings.NewResolver(settingsRepo, keys, settings.WithEnvFile(cfg.EnvFile))
	slog.Info("Credential store ready", "keyring", keys.Store.KeyringAvailable(), "file", cfg.APIKeyFile)

	// Create AI clients (external service layer)
	aiClient := llm.NewClient()
	summarizer := llm.NewSummarizer(nil)

	deps := &http.Deps{
		Notes:          service.NewNoteService(notebookRepo, noteRepo, tagRepo, recentRepo),
		Modes:          service.NewModeService(modeRepo),
		Settings:       service.NewSettingsService(settingsRepo, keys, resolver),
		Rewrite:        service.NewRewriteService(aiClient, resolver, modeRepo),
		Metadata:       service.NewMetadataService(summarizer, resolver, noteRepo),
		Importer:       importer.New(notebookRepo, noteRepo, tagRepo),
		DB:             db,
		AllowedOrigins: cfg.CORSOrigins,
	}
	router := http.NewRouter(deps)

	srv := &nethttp.Server{
		Addr:              cfg.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	// Start API server
	slog.Info("Starting API server", "addr", cfg.APIAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
