package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ai-notepad/internal/settings/mocks"
	"ai-notepad/internal/storage"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestResolve_Precedence(t *testing.T) {
	persisted := &storage.ConnectionSettings{
		Endpoint:       "https://db.example.com",
		DeploymentID:   "db-deploy",
		APIVersion:     "2023-05-15",
		TimeoutSeconds: 9,
		RetryPrefs:     &storage.RetryPrefs{MaxRetries: intPtr(4), BackoffBase: floatPtr(0.25)},
	}

	tests := []struct {
		name      string
		persisted *storage.ConnectionSettings
		loadErr   error
		env       map[string]string
		storedKey string
		keyErr    error
		want      Snapshot
	}{
		{
			name:    "defaults only",
			loadErr: storage.ErrNotFound,
			keyErr:  errors.New("no key"),
			want: Snapshot{
				Timeout:     6 * time.Second,
				MaxRetries:  2,
				BackoffBase: 500 * time.Millisecond,
			},
		},
		{
			name:      "database over defaults",
			persisted: persisted,
			storedKey: "stored-key",
			want: Snapshot{
				Endpoint:    "https://db.example.com",
				Deployment:  "db-deploy",
				APIVersion:  "2023-05-15",
				Timeout:     9 * time.Second,
				APIKey:      "stored-key",
				MaxRetries:  4,
				BackoffBase: 250 * time.Millisecond,
			},
		},
		{
			name:      "environment over database",
			persisted: persisted,
			env: map[string]string{
				EnvEndpoint:   "https://env.example.com",
				EnvDeployment: "env-deploy",
				EnvAPIVersion: "2024-02-01",
				EnvTimeout:    "1.5",
				EnvAPIKey:     "env-key",
			},
			want: Snapshot{
				Endpoint:    "https://env.example.com",
				Deployment:  "env-deploy",
				APIVersion:  "2024-02-01",
				Timeout:     1500 * time.Millisecond,
				APIKey:      "env-key",
				MaxRetries:  4,
				BackoffBase: 250 * time.Millisecond,
			},
		},
		{
			name:      "invalid env timeout keeps database value",
			persisted: persisted,
			env:       map[string]string{EnvTimeout: "soon"},
			storedKey: "stored-key",
			want: Snapshot{
				Endpoint:    "https://db.example.com",
				Deployment:  "db-deploy",
				APIVersion:  "2023-05-15",
				Timeout:     9 * time.Second,
				APIKey:      "stored-key",
				MaxRetries:  4,
				BackoffBase: 250 * time.Millisecond,
			},
		},
		{
			name:    "database failure is ignored",
			loadErr: errors.New("disk on fire"),
			env:     map[string]string{EnvEndpoint: "https://env.example.com", EnvDeployment: "d"},
			keyErr:  errors.New("no key"),
			want: Snapshot{
				Endpoint:    "https://env.example.com",
				Deployment:  "d",
				Timeout:     6 * time.Second,
				MaxRetries:  2,
				BackoffBase: 500 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockConnectionStore(ctrl)
			keys := mocks.NewMockAPIKeySource(ctrl)

			store.EXPECT().Load(gomock.Any()).Return(tt.persisted, tt.loadErr)
			if tt.env[EnvAPIKey] == "" {
				keys.EXPECT().APIKey(gomock.Any()).Return(tt.storedKey, tt.keyErr)
			}

			r := NewResolver(store, keys, WithLookupEnv(envMap(tt.env)))
			got := r.Resolve(context.Background())

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_IsFreshEveryCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockConnectionStore(ctrl)

	gomock.InOrder(
		store.EXPECT().Load(gomock.Any()).Return(&storage.ConnectionSettings{Endpoint: "https://a", DeploymentID: "one"}, nil),
		store.EXPECT().Load(gomock.Any()).Return(&storage.ConnectionSettings{Endpoint: "https://a", DeploymentID: "two"}, nil),
	)

	r := NewResolver(store, nil, WithLookupEnv(envMap(nil)))
	assert.Equal(t, "one", r.Resolve(context.Background()).Deployment)
	assert.Equal(t, "two", r.Resolve(context.Background()).Deployment)
}

func TestResolve_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AZURE_OPENAI_ENDPOINT=https://file.example.com\nAZURE_OPENAI_DEPLOYMENT=file-deploy\n"), 0o600))

	r := NewResolver(nil, nil,
		WithEnvFile(path),
		WithLookupEnv(envMap(map[string]string{EnvDeployment: "process-deploy"})),
	)

	snap := r.Resolve(context.Background())
	assert.Equal(t, "https://file.example.com", snap.Endpoint)
	assert.Equal(t, "process-deploy", snap.Deployment, "process environment wins over .env")

	// Edits to the file are picked up by the next call.
	require.NoError(t, os.WriteFile(path, []byte("AZURE_OPENAI_ENDPOINT=https://edited.example.com\n"), 0o600))
	assert.Equal(t, "https://edited.example.com", r.Resolve(context.Background()).Endpoint)
}

func TestResolve_MissingEnvFile(t *testing.T) {
	r := NewResolver(nil, nil,
		WithEnvFile(filepath.Join(t.TempDir(), "missing.env")),
		WithLookupEnv(envMap(nil)),
	)
	snap := r.Resolve(context.Background())
	assert.ErrorIs(t, snap.Validate(), ErrNotConfigured)
}

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantErr bool
	}{
		{name: "complete", snap: Snapshot{Endpoint: "https://x", Deployment: "d"}},
		{name: "no endpoint", snap: Snapshot{Deployment: "d"}, wantErr: true},
		{name: "no deployment", snap: Snapshot{Endpoint: "https://x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotConfigured)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSnapshot_WithDeployment(t *testing.T) {
	base := Snapshot{Endpoint: "https://x", Deployment: "default"}
	assert.Equal(t, "default", base.WithDeployment("").Deployment)
	assert.Equal(t, "override", base.WithDeployment("override").Deployment)
	assert.Equal(t, "default", base.Deployment)
}
