package service

import (
	"errors"
	"fmt"

	"ai-notepad/internal/storage"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a change is refused, e.g. editing a
	// built-in rewrite mode or reusing a mode name.
	ErrConflict = errors.New("conflict")
	// ErrNotConfigured is returned when the AI connection lacks an endpoint
	// or deployment.
	ErrNotConfigured = errors.New("AI connection not configured")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storeError translates repository sentinels into service errors.
func storeError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case errors.Is(err, storage.ErrDuplicateName):
		return fmt.Errorf("%s: %w: %w", msg, ErrConflict, err)
	case errors.Is(err, storage.ErrEmptyTag):
		return &ValidationError{Field: "tag", Message: "cannot be empty"}
	case errors.Is(err, storage.ErrInvalidAppliesTo):
		return &ValidationError{Field: "applies_to", Message: "must be selection-only or whole-note-default"}
	default:
		return WrapError(err, msg)
	}
}
