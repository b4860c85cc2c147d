package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/settings"
)

const (
	maxTokens   = 512
	temperature = 0.2
	probePrompt = "ping"
)

// ErrRequestFailed matches every *RequestError.
var ErrRequestFailed = errors.New("AI request failed")

// RequestError is returned by Rewrite once every attempt has failed.
type RequestError struct {
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("AI request failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports ErrRequestFailed as a match.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// StatusError is a non-2xx response from the completions endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status %s", e.Status)
	}
	return fmt.Sprintf("bad status %s: %s", e.Status, e.Body)
}

// Connection test outcomes.
const (
	StatusOK            = "ok"
	StatusAuthError     = "auth_error"
	StatusTimeout       = "timeout"
	StatusOther         = "other"
	StatusEndpointError = "endpoint_error"
)

// ConnectionResult classifies a single probe request.
type ConnectionResult struct {
	OK      bool   `json:"ok"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to an Azure OpenAI chat completions deployment. Connection
// settings arrive with each call as a settings.Snapshot.
type Client struct {
	http  Doer
	sleep func(ctx context.Context, d time.Duration) error
	log   *RequestLog
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// WithSleep replaces the backoff sleep.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

// WithLogCapacity bounds the request log.
func WithLogCapacity(n int) Option {
	return func(c *Client) {
		c.log = NewRequestLog(n)
	}
}

// NewClient creates a new AI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:  &http.Client{},
		sleep: sleepContext,
		log:   NewRequestLog(DefaultLogCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Log returns the client's request log.
func (c *Client) Log() *RequestLog {
	return c.log
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

func newChatRequest(prompt string, tokens int) ([]byte, error) {
	body, err := json.Marshal(chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   tokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}

// Rewrite sends prompt to the deployment (the snapshot's unless deployment is
// set) and returns the trimmed reply. Failed attempts are retried with
// BackoffDelays between them.
func (c *Client) Rewrite(ctx context.Context, snap settings.Snapshot, prompt, deployment string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	snap = snap.WithDeployment(deployment)
	if err := snap.Validate(); err != nil {
		return "", err
	}

	body, err := newChatRequest(prompt, maxTokens)
	if err != nil {
		return "", err
	}

	delays := BackoffDelays(snap.MaxRetries, snap.BackoffBase)
	attempts := len(delays) + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := c.complete(ctx, snap, body)
		entry := RequestLogEntry{Prompt: prompt, Attempt: attempt, Success: err == nil, Timestamp: time.Now()}
		if err != nil {
			entry.Error = err.Error()
		}
		c.log.Add(entry)

		if err == nil {
			logger.DebugContext(ctx, "rewrite completed", "deployment", snap.Deployment, "attempt", attempt)
			return text, nil
		}

		lastErr = err
		logger.WarnContext(ctx, "rewrite attempt failed",
			"deployment", snap.Deployment,
			"attempt", attempt,
			"of", attempts,
			"error", err,
		)

		if attempt < attempts {
			if err := c.sleep(ctx, delays[attempt-1]); err != nil {
				return "", fmt.Errorf("rewrite aborted: %w", err)
			}
		}
	}

	return "", &RequestError{Attempts: attempts, Err: lastErr}
}

// ApplyRewriteMode fills the instruction's template with text and rewrites
// it using the snapshot's deployment.
func (c *Client) ApplyRewriteMode(ctx context.Context, snap settings.Snapshot, in Instruction, text string) (string, error) {
	tmpl, err := in.Template()
	if err != nil {
		return "", err
	}
	return c.Rewrite(ctx, snap, FillTemplate(tmpl, text), "")
}

// TestConnection sends one tiny probe and classifies the outcome. It never
// returns an error. A non-positive timeout selects max(1s, snap.Timeout).
func (c *Client) TestConnection(ctx context.Context, snap settings.Snapshot, deployment string, timeout time.Duration) ConnectionResult {
	logger := contextutil.LoggerFromContext(ctx)

	snap = snap.WithDeployment(deployment)
	if err := snap.Validate(); err != nil {
		return ConnectionResult{Status: StatusEndpointError, Details: err.Error()}
	}

	if timeout <= 0 {
		timeout = max(time.Second, snap.Timeout)
	}
	snap.Timeout = timeout

	body, err := newChatRequest(probePrompt, 1)
	if err != nil {
		return ConnectionResult{Status: StatusOther, Details: err.Error()}
	}

	resp, cancel, err := c.send(ctx, snap, body)
	if err != nil {
		logger.InfoContext(ctx, "connection test failed", "deployment", snap.Deployment, "error", err)
		if isTimeout(err) {
			return ConnectionResult{Status: StatusTimeout, Details: err.Error()}
		}
		return ConnectionResult{Status: StatusOther, Details: err.Error()}
	}
	defer cancel()
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	logger.InfoContext(ctx, "connection test finished", "deployment", snap.Deployment, "status", resp.StatusCode)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return ConnectionResult{OK: true, Status: StatusOK, Details: resp.Status}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ConnectionResult{Status: StatusAuthError, Details: resp.Status}
	default:
		return ConnectionResult{Status: StatusOther, Details: resp.Status}
	}
}

// complete performs one attempt and normalizes the reply.
func (c *Client) complete(ctx context.Context, snap settings.Snapshot, body []byte) (string, error) {
	resp, cancel, err := c.send(ctx, snap, body)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	text, err := replyText(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return text, nil
}

// send posts body with the snapshot's per-attempt timeout. The returned
// cancel func must be called once the response body is consumed.
func (c *Client) send(ctx context.Context, snap settings.Snapshot, body []byte) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if snap.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, snap.Timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL(snap), bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if snap.APIKey != "" {
		req.Header.Set("api-key", snap.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, cancel, nil
}

func completionsURL(snap settings.Snapshot) string {
	u := strings.TrimRight(snap.Endpoint, "/") +
		"/openai/deployments/" + url.PathEscape(snap.Deployment) + "/chat/completions"
	if snap.APIVersion != "" {
		u += "?api-version=" + url.QueryEscape(snap.APIVersion)
	}
	return u
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// replyText extracts the reply from the chat, completion or bare-text
// response shapes. Fields of an unexpected type count as absent.
func replyText(raw []byte) (string, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return "", err
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return "", nil
	}

	if choices, ok := obj["choices"].([]any); ok && len(choices) > 0 {
		first, _ := choices[0].(map[string]any)
		if msg, ok := first["message"].(map[string]any); ok {
			if s, _ := msg["content"].(string); s != "" {
				return strings.TrimSpace(s), nil
			}
		}
		s, _ := first["text"].(string)
		return strings.TrimSpace(s), nil
	}

	s, _ := obj["text"].(string)
	return strings.TrimSpace(s), nil
}
