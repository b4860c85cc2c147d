package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_settings_deps.go -package=mocks ai-notepad/internal/service SettingsStore,KeyStore,SettingsSource
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_settings_service.go -package=mocks ai-notepad/internal/service SettingsService

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/credstore"
	"ai-notepad/internal/settings"
	"ai-notepad/internal/storage"
)

const maxRetriesLimit = 10

// SettingsStore persists the connection settings row.
type SettingsStore interface {
	Save(ctx context.Context, s storage.ConnectionSettings) error
	Load(ctx context.Context) (*storage.ConnectionSettings, error)
}

// KeyStore keeps the API key. An empty passphrase on Put uses the
// configured one.
type KeyStore interface {
	Put(ctx context.Context, secret, passphrase string) (credstore.Method, error)
	Delete(ctx context.Context) bool
	Status(ctx context.Context) (credstore.Method, bool)
}

// SettingsSource resolves the effective connection settings.
type SettingsSource interface {
	Resolve(ctx context.Context) settings.Snapshot
}

// ConnectionInput is the editable connection configuration.
type ConnectionInput struct {
	Endpoint       string
	DeploymentID   string
	APIVersion     string
	TimeoutSeconds int
	MaxRetries     *int
	BackoffBase    *float64
}

// EffectiveSettings is the resolved snapshot without the secret.
type EffectiveSettings struct {
	Endpoint       string  `json:"endpoint"`
	Deployment     string  `json:"deployment"`
	APIVersion     string  `json:"api_version,omitempty"`
	TimeoutSeconds float64 `json:"timeout"`
	MaxRetries     int     `json:"max_retries"`
	BackoffBase    float64 `json:"backoff_base"`
	APIKeySet      bool    `json:"api_key_set"`
	Configured     bool    `json:"configured"`
}

// ConnectionView combines the stored row with what requests will use.
type ConnectionView struct {
	Saved      *storage.ConnectionSettings `json:"saved,omitempty"`
	Effective  EffectiveSettings           `json:"effective"`
	KeyStorage string                      `json:"key_storage,omitempty"`
}

// SettingsService reads and writes connection settings and the API key.
type SettingsService interface {
	Connection(ctx context.Context) (ConnectionView, error)
	SaveConnection(ctx context.Context, in ConnectionInput) (ConnectionView, error)
	SetAPIKey(ctx context.Context, key, passphrase string) (credstore.Method, error)
	DeleteAPIKey(ctx context.Context) bool
}

type settingsService struct {
	store    SettingsStore
	keys     KeyStore
	resolver SettingsSource
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store SettingsStore, keys KeyStore, resolver SettingsSource) SettingsService {
	return &settingsService{
		store:    store,
		keys:     keys,
		resolver: resolver,
	}
}

func (s *settingsService) Connection(ctx context.Context) (ConnectionView, error) {
	var view ConnectionView

	saved, err := s.store.Load(ctx)
	switch {
	case err == nil:
		view.Saved = saved
	case errors.Is(err, storage.ErrNotFound):
	default:
		return ConnectionView{}, WrapError(err, "failed to load connection settings")
	}

	snap := s.resolver.Resolve(ctx)
	view.Effective = EffectiveSettings{
		Endpoint:       snap.Endpoint,
		Deployment:     snap.Deployment,
		APIVersion:     snap.APIVersion,
		TimeoutSeconds: snap.Timeout.Seconds(),
		MaxRetries:     snap.MaxRetries,
		BackoffBase:    snap.BackoffBase.Seconds(),
		APIKeySet:      snap.HasAPIKey(),
		Configured:     snap.Validate() == nil,
	}
	if method, ok := s.keys.Status(ctx); ok {
		view.KeyStorage = string(method)
	}
	return view, nil
}

func (s *settingsService) SaveConnection(ctx context.Context, in ConnectionInput) (ConnectionView, error) {
	if err := validateConnection(in); err != nil {
		return ConnectionView{}, err
	}

	row := storage.ConnectionSettings{
		Endpoint:       strings.TrimSpace(in.Endpoint),
		DeploymentID:   strings.TrimSpace(in.DeploymentID),
		APIVersion:     strings.TrimSpace(in.APIVersion),
		TimeoutSeconds: in.TimeoutSeconds,
	}
	if in.MaxRetries != nil || in.BackoffBase != nil {
		row.RetryPrefs = &storage.RetryPrefs{MaxRetries: in.MaxRetries, BackoffBase: in.BackoffBase}
	}

	if err := s.store.Save(ctx, row); err != nil {
		return ConnectionView{}, WrapError(err, "failed to save connection settings")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "connection settings saved",
		"endpoint", row.Endpoint,
		"deployment", row.DeploymentID,
	)
	return s.Connection(ctx)
}

func (s *settingsService) SetAPIKey(ctx context.Context, key, passphrase string) (credstore.Method, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", &ValidationError{Field: "api_key", Message: "cannot be empty"}
	}

	method, err := s.keys.Put(ctx, key, passphrase)
	if err != nil {
		if errors.Is(err, credstore.ErrNoFallback) {
			return "", &ValidationError{Field: "passphrase", Message: "required when the OS keyring is unavailable"}
		}
		return "", WrapError(err, "failed to store API key")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "api key stored", "method", method)
	return method, nil
}

func (s *settingsService) DeleteAPIKey(ctx context.Context) bool {
	removed := s.keys.Delete(ctx)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "api key deleted", "removed", removed)
	return removed
}

func validateConnection(in ConnectionInput) error {
	endpoint := strings.TrimSpace(in.Endpoint)
	if endpoint == "" {
		return &ValidationError{Field: "endpoint", Message: "cannot be empty"}
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "endpoint", Message: "must be an http(s) URL"}
	}
	if strings.TrimSpace(in.DeploymentID) == "" {
		return &ValidationError{Field: "deployment_id", Message: "cannot be empty"}
	}
	if in.TimeoutSeconds < 0 {
		return &ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if in.MaxRetries != nil && (*in.MaxRetries < 0 || *in.MaxRetries > maxRetriesLimit) {
		return &ValidationError{Field: "max_retries", Message: "must be between 0 and 10"}
	}
	if in.BackoffBase != nil && *in.BackoffBase < 0 {
		return &ValidationError{Field: "backoff_base", Message: "must not be negative"}
	}
	return nil
}
