package settings

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sources.go -package=mocks ai-notepad/internal/settings ConnectionStore,APIKeySource

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/storage"
)

// Environment variables that override persisted settings.
const (
	EnvEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvAPIVersion = "AZURE_OPENAI_API_VERSION"
	EnvTimeout    = "AZURE_OPENAI_TIMEOUT"
	EnvAPIKey     = "AZURE_OPENAI_API_KEY"
)

// ConnectionStore loads the persisted connection settings row.
// It returns storage.ErrNotFound when nothing was saved.
type ConnectionStore interface {
	Load(ctx context.Context) (*storage.ConnectionSettings, error)
}

// APIKeySource supplies the API key when the environment does not.
type APIKeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// Defaults are the lowest-precedence values.
type Defaults struct {
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
}

// DefaultDefaults mirrors the schema default timeout and the client's retry
// defaults.
var DefaultDefaults = Defaults{
	Timeout:     time.Duration(storage.DefaultTimeoutSeconds) * time.Second,
	MaxRetries:  2,
	BackoffBase: 500 * time.Millisecond,
}

// Resolver merges environment, persisted settings and defaults.
type Resolver struct {
	store     ConnectionStore
	keys      APIKeySource
	envFile   string
	lookupEnv func(string) (string, bool)
	defaults  Defaults
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnvFile makes Resolve re-read a .env file on every call. Values set in
// the process environment take precedence over the file.
func WithEnvFile(path string) Option {
	return func(r *Resolver) {
		r.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(r *Resolver) {
		r.lookupEnv = fn
	}
}

// WithDefaults replaces DefaultDefaults.
func WithDefaults(d Defaults) Option {
	return func(r *Resolver) {
		r.defaults = d
	}
}

// NewResolver creates a Resolver. store and keys may be nil.
func NewResolver(store ConnectionStore, keys APIKeySource, opts ...Option) *Resolver {
	r := &Resolver{
		store:     store,
		keys:      keys,
		lookupEnv: os.LookupEnv,
		defaults:  DefaultDefaults,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds a fresh Snapshot. It never fails: unreadable layers are
// logged and skipped, and validation happens when a request is attempted.
func (r *Resolver) Resolve(ctx context.Context) Snapshot {
	logger := contextutil.LoggerFromContext(ctx)

	snap := Snapshot{
		Timeout:     r.defaults.Timeout,
		MaxRetries:  r.defaults.MaxRetries,
		BackoffBase: r.defaults.BackoffBase,
	}

	if r.store != nil {
		persisted, err := r.store.Load(ctx)
		switch {
		case err == nil:
			applyPersisted(&snap, persisted)
		case errors.Is(err, storage.ErrNotFound):
		default:
			logger.WarnContext(ctx, "failed to load persisted connection settings", "error", err)
		}
	}

	env := r.environment(ctx)
	if v := env(EnvEndpoint); v != "" {
		snap.Endpoint = v
	}
	if v := env(EnvDeployment); v != "" {
		snap.Deployment = v
	}
	if v := env(EnvAPIVersion); v != "" {
		snap.APIVersion = v
	}
	if v := env(EnvTimeout); v != "" {
		seconds, err := strconv.ParseFloat(v, 64)
		if err != nil || seconds <= 0 {
			logger.WarnContext(ctx, "ignoring invalid timeout", "env", EnvTimeout, "value", v)
		} else {
			snap.Timeout = time.Duration(seconds * float64(time.Second))
		}
	}

	snap.APIKey = env(EnvAPIKey)
	if snap.APIKey == "" && r.keys != nil {
		key, err := r.keys.APIKey(ctx)
		if err != nil {
			logger.DebugContext(ctx, "no api key in credential store", "error", err)
		} else {
			snap.APIKey = key
		}
	}

	return snap
}

func applyPersisted(snap *Snapshot, s *storage.ConnectionSettings) {
	snap.Endpoint = s.Endpoint
	snap.Deployment = s.DeploymentID
	snap.APIVersion = s.APIVersion
	if s.TimeoutSeconds > 0 {
		snap.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
	}
	if s.RetryPrefs != nil {
		if s.RetryPrefs.MaxRetries != nil && *s.RetryPrefs.MaxRetries >= 0 {
			snap.MaxRetries = *s.RetryPrefs.MaxRetries
		}
		if s.RetryPrefs.BackoffBase != nil && *s.RetryPrefs.BackoffBase >= 0 {
			snap.BackoffBase = time.Duration(*s.RetryPrefs.BackoffBase * float64(time.Second))
		}
	}
}

// environment returns a lookup over the process environment backed by the
// .env file, which is read once per Resolve call.
func (r *Resolver) environment(ctx context.Context) func(string) string {
	var file map[string]string
	if r.envFile != "" {
		values, err := godotenv.Read(r.envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to read env file", "path", r.envFile, "error", err)
		}
		file = values
	}

	return func(key string) string {
		if v, ok := r.lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(file[key])
	}
}
