package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New opens a SQLite database at the given path with foreign keys enabled.
// The handle keeps a single open connection: the notepad has one local user
// and SQLite serializes writers anyway.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Migrate applies the embedded schema migrations and then tries to create the
// notes_fts shadow index. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger: slog.Default()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := ensureFullText(ctx, db); err != nil {
		// Builds without FTS5 still work; Search falls back to LIKE.
		slog.Default().DebugContext(ctx, "full-text index unavailable", "error", err)
	}

	return nil
}

var fullTextSchema = []string{
	`CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
		INSERT INTO notes_fts(rowid, title, body) VALUES (new.id, new.title, new.body);
	END;`,
	`CREATE TRIGGER IF NOT EXISTS notes_au AFTER UPDATE ON notes BEGIN
		INSERT INTO notes_fts(notes_fts, rowid, title, body) VALUES ('delete', old.id, old.title, old.body);
		INSERT INTO notes_fts(rowid, title, body) VALUES (new.id, new.title, new.body);
	END;`,
	`CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
		INSERT INTO notes_fts(notes_fts, rowid, title, body) VALUES ('delete', old.id, old.title, old.body);
	END;`,
}

// ensureFullText creates the FTS5 table over notes and its sync triggers.
// When the table is new, existing notes are indexed with a rebuild.
func ensureFullText(ctx context.Context, db *sql.DB) error {
	existed, err := FullTextEnabled(ctx, db)
	if err != nil {
		return err
	}
	if existed {
		return nil
	}

	if _, err := db.ExecContext(ctx,
		"CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(title, body, content='notes', content_rowid='id')",
	); err != nil {
		return fmt.Errorf("failed to create notes_fts: %w", err)
	}

	for _, stmt := range fullTextSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create notes_fts trigger: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO notes_fts(notes_fts) VALUES ('rebuild')"); err != nil {
		return fmt.Errorf("failed to rebuild notes_fts: %w", err)
	}

	return nil
}

// FullTextEnabled reports whether the notes_fts shadow index exists.
func FullTextEnabled(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'notes_fts'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}
