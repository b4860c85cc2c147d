package storage

import (
	"fmt"
	"time"
)

// Notebook groups notes. Notes keep only a weak reference to it.
type Notebook struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a single note row.
type Note struct {
	ID               int64     `json:"id"`
	NotebookID       *int64    `json:"notebook_id"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	AIGeneratedTitle bool      `json:"ai_generated_title"`
	GeneratedTitle   *string   `json:"generated_title,omitempty"`
	GeneratedSummary *string   `json:"generated_summary,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SearchResult is a note matched by Search.
type SearchResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Tag is a normalized tag name.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RecentEntry is one row of the recently-opened log joined with the note title.
type RecentEntry struct {
	NoteID       int64     `json:"note_id"`
	Title        string    `json:"title"`
	LastOpenedAt time.Time `json:"last_opened_at"`
}

// RetryPrefs holds optional overrides for the AI client's retry behavior.
// It is stored as JSON in connection_settings.retry_prefs.
type RetryPrefs struct {
	MaxRetries  *int     `json:"max_retries,omitempty"`
	BackoffBase *float64 `json:"backoff_base,omitempty"`
}

// ConnectionSettings is the singleton Azure OpenAI connection record.
type ConnectionSettings struct {
	Endpoint       string      `json:"endpoint"`
	DeploymentID   string      `json:"deployment_id"`
	APIVersion     string      `json:"api_version,omitempty"`
	TimeoutSeconds int         `json:"timeout"`
	RetryPrefs     *RetryPrefs `json:"retry_prefs,omitempty"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// AppliesTo says which part of a note a rewrite mode operates on.
type AppliesTo string

const (
	AppliesToSelection AppliesTo = "selection-only"
	AppliesToWholeNote AppliesTo = "whole-note-default"
)

// Valid reports whether a is one of the known values.
func (a AppliesTo) Valid() bool {
	return a == AppliesToSelection || a == AppliesToWholeNote
}

// RewriteMode is a user-visible, ordered rewrite instruction.
type RewriteMode struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	InstructionTemplate string         `json:"instruction_template"`
	Enabled             bool           `json:"enabled"`
	Order               int            `json:"order"`
	AppliesTo           AppliesTo      `json:"applies_to"`
	Builtin             bool           `json:"builtin"`
	AdvancedSettings    map[string]any `json:"advanced_settings,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// timestamp scans SQLite timestamp columns. The driver returns time.Time for
// declared TIMESTAMP columns and plain text for computed expressions.
type timestamp struct {
	Time time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("failed to parse timestamp %q", s)
}

