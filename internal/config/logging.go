package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ai-notepad/internal/credstore"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the process logger writing to w, and also to LogFile
// when one is configured. The returned closer releases the log file.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(w, f)
		closer = f
	}

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
	}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer, nil
}

// KeyBinding locates the API key: the configured keyring entry, with the
// encrypted file as fallback.
func (c *Config) KeyBinding(store *credstore.Store) credstore.Binding {
	return credstore.Binding{
		Store:   store,
		Service: c.KeyringService,
		Account: c.KeyringAccount,
		Fallback: &credstore.FileFallback{
			Path:       c.APIKeyFile,
			Passphrase: c.APIKeyPassphrase,
		},
	}
}
