package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"ai-notepad/internal/cli"
	"ai-notepad/internal/config"
	"ai-notepad/internal/credstore"
	"ai-notepad/internal/llm"
	"ai-notepad/internal/service"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return cli.ExitFailure
	}

	// Diagnostics go to stderr so prompts and results stay readable.
	logger, logCloser, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Printf("Failed to configure logging: %v", err)
		return cli.ExitFailure
	}
	defer func() {
		_ = logCloser.Close()
	}()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Printf("Failed to open database: %v", err)
		return cli.ExitFailure
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(ctx, db); err != nil {
		log.Printf("Failed to run migrations: %v", err)
		return cli.ExitFailure
	}

	settingsRepo := storage.NewSettingsRepo(db)
	keys := cfg.KeyBinding(credstore.New(nil))
	resolver := settings.NewResolver(settingsRepo, keys, settings.WithEnvFile(cfg.EnvFile))

	app := cli.NewApp(
		service.NewSettingsService(settingsRepo, keys, resolver),
		service.NewRewriteService(llm.NewClient(), resolver, storage.NewModeRepo(db)),
	)
	return app.Run(ctx, os.Args[1:])
}
