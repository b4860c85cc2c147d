package llm

import (
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultLogCapacity is the number of attempts kept by a new RequestLog.
	DefaultLogCapacity = 200
	// MaxLoggedPrompt is the most prompt text, in bytes, kept per entry.
	MaxLoggedPrompt = 4 << 10
)

// RequestLogEntry records one request attempt.
type RequestLogEntry struct {
	Prompt    string    `json:"prompt"`
	Truncated bool      `json:"truncated,omitempty"`
	Attempt   int       `json:"attempt"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestLog is an in-memory, bounded history of request attempts. The
// oldest entries are dropped once capacity is reached. It is safe for
// concurrent use.
type RequestLog struct {
	mu       sync.Mutex
	entries  []RequestLogEntry
	capacity int
}

// NewRequestLog creates a log holding at most capacity entries.
// A non-positive capacity selects DefaultLogCapacity.
func NewRequestLog(capacity int) *RequestLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &RequestLog{capacity: capacity}
}

// Add appends an entry, evicting the oldest one when full. Prompts longer
// than MaxLoggedPrompt are cut on a rune boundary.
func (l *RequestLog) Add(e RequestLogEntry) {
	if len(e.Prompt) > MaxLoggedPrompt {
		cut := MaxLoggedPrompt
		for cut > 0 && !utf8.RuneStart(e.Prompt[cut]) {
			cut--
		}
		e.Prompt = e.Prompt[:cut]
		e.Truncated = true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the log, oldest first.
func (l *RequestLog) Entries() []RequestLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]RequestLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries currently held.
func (l *RequestLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
