// Package settings resolves the Azure OpenAI connection settings used by each
// AI request.
package settings

import (
	"errors"
	"time"
)

// ErrNotConfigured is returned when the endpoint or deployment is missing.
var ErrNotConfigured = errors.New("azure openai endpoint and deployment must be configured")

// Snapshot is an immutable view of the connection settings, resolved fresh
// for every request.
type Snapshot struct {
	Endpoint    string
	Deployment  string
	APIVersion  string
	Timeout     time.Duration
	APIKey      string
	MaxRetries  int
	BackoffBase time.Duration
}

// Validate fails with ErrNotConfigured when endpoint or deployment is empty.
func (s Snapshot) Validate() error {
	if s.Endpoint == "" || s.Deployment == "" {
		return ErrNotConfigured
	}
	return nil
}

// WithDeployment returns a copy using deployment when it is non-empty.
func (s Snapshot) WithDeployment(deployment string) Snapshot {
	if deployment != "" {
		s.Deployment = deployment
	}
	return s
}

// HasAPIKey reports whether an API key was resolved.
func (s Snapshot) HasAPIKey() bool {
	return s.APIKey != ""
}
