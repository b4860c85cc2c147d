package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultTimeoutSeconds is the column default for connection_settings.timeout.
const DefaultTimeoutSeconds = 6

// SettingsRepo persists the singleton connection settings row.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Save writes the settings row, replacing any previous values.
func (r *SettingsRepo) Save(ctx context.Context, s ConnectionSettings) error {
	var prefs any
	if s.RetryPrefs != nil {
		raw, err := json.Marshal(s.RetryPrefs)
		if err != nil {
			return fmt.Errorf("failed to encode retry prefs: %w", err)
		}
		prefs = string(raw)
	}

	var apiVersion any
	if s.APIVersion != "" {
		apiVersion = s.APIVersion
	}

	timeout := s.TimeoutSeconds
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO connection_settings (id, endpoint, deployment_id, api_version, timeout, retry_prefs, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
		 endpoint = excluded.endpoint, deployment_id = excluded.deployment_id,
		 api_version = excluded.api_version, timeout = excluded.timeout,
		 retry_prefs = excluded.retry_prefs, updated_at = CURRENT_TIMESTAMP`,
		s.Endpoint, s.DeploymentID, apiVersion, timeout, prefs,
	); err != nil {
		return fmt.Errorf("failed to save connection settings: %w", err)
	}
	return nil
}

// Load returns the settings row or ErrNotFound when nothing was saved yet.
func (r *SettingsRepo) Load(ctx context.Context) (*ConnectionSettings, error) {
	var s ConnectionSettings
	var apiVersion, prefs sql.NullString
	var timeout sql.NullInt64
	var updated timestamp

	err := r.db.QueryRowContext(ctx,
		`SELECT endpoint, deployment_id, api_version, timeout, retry_prefs, updated_at
		 FROM connection_settings WHERE id = 1`,
	).Scan(&s.Endpoint, &s.DeploymentID, &apiVersion, &timeout, &prefs, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load connection settings: %w", err)
	}

	s.APIVersion = apiVersion.String
	s.TimeoutSeconds = DefaultTimeoutSeconds
	if timeout.Valid {
		s.TimeoutSeconds = int(timeout.Int64)
	}
	if prefs.Valid && prefs.String != "" {
		var rp RetryPrefs
		if err := json.Unmarshal([]byte(prefs.String), &rp); err != nil {
			return nil, fmt.Errorf("failed to decode retry prefs: %w", err)
		}
		s.RetryPrefs = &rp
	}
	s.UpdatedAt = updated.Time

	return &s, nil
}
