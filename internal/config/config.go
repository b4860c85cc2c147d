package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process configuration. Connection settings for the AI
// service are not part of it; they are resolved per request.
type Config struct {
	DBPath           string
	APIAddr          string
	LogLevel         slog.Level
	LogFormat        string
	LogFile          string
	KeyringService   string
	KeyringAccount   string
	APIKeyFile       string
	APIKeyPassphrase string
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
	// EnvFile is the .env file found at startup, if any.
	EnvFile string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is
// loaded first. Environment variables already set take precedence over .env
// file values.
func Load() (*Config, error) {
	envFile := findEnvFile()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	dataDir := defaultDataDir()
	cfg := &Config{
		DBPath:           getEnv("DB_PATH", filepath.Join(dataDir, "notes.db")),
		APIAddr:          getEnv("API_ADDR", "127.0.0.1:9000"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:          getEnv("LOG_FILE", ""),
		KeyringService:   getEnv("KEYRING_SERVICE", "ai_notepad"),
		KeyringAccount:   getEnv("KEYRING_ACCOUNT", "default"),
		APIKeyFile:       getEnv("API_KEY_FILE", filepath.Join(dataDir, "api_key.json")),
		APIKeyPassphrase: os.Getenv("API_KEY_PASSPHRASE"),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),
		EnvFile:          envFile,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// findEnvFile looks for .env in the working directory and up to four parents.
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// defaultDataDir is ~/.local/share/ai_notepad, or ./data without a home.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "ai_notepad")
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
