package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ai-notepad/internal/contextutil"
	"ai-notepad/internal/settings"
)

const (
	summarySystemPrompt = "You write titles and summaries for personal notes. " +
		"Reply with a short title on the first line, then a single paragraph summarizing the note. " +
		"Do not add labels or markdown."
	summaryMaxTokens  = 256
	minSummaryTimeout = 15 * time.Second
)

// ErrEmptyReply is returned when the model answers with nothing usable.
var ErrEmptyReply = errors.New("empty reply")

// Summary is a generated title and summary for a note.
type Summary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Summarizer generates note metadata through the go-openai Azure client.
type Summarizer struct {
	http openai.HTTPDoer
}

// NewSummarizer creates a Summarizer. A nil doer selects the library default.
func NewSummarizer(doer openai.HTTPDoer) *Summarizer {
	return &Summarizer{http: doer}
}

// Summarize asks the snapshot's deployment for a title and summary of body.
func (s *Summarizer) Summarize(ctx context.Context, snap settings.Snapshot, body string) (Summary, error) {
	if err := snap.Validate(); err != nil {
		return Summary{}, err
	}

	cfg := openai.DefaultAzureConfig(snap.APIKey, snap.Endpoint)
	if snap.APIVersion != "" {
		cfg.APIVersion = snap.APIVersion
	}
	deployment := snap.Deployment
	cfg.AzureModelMapperFunc = func(string) string { return deployment }
	if s.http != nil {
		cfg.HTTPClient = s.http
	}
	client := openai.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(ctx, max(snap.Timeout, minSummaryTimeout))
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: body},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Summary{}, fmt.Errorf("no choices returned: %w", ErrEmptyReply)
	}

	summary, err := parseSummary(resp.Choices[0].Message.Content)
	if err != nil {
		return Summary{}, err
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "summary generated",
		"deployment", deployment,
		"title_length", len(summary.Title),
		"summary_length", len(summary.Summary),
	)
	return summary, nil
}

// parseSummary takes the first non-empty line as the title and the rest as
// the summary.
func parseSummary(reply string) (Summary, error) {
	lines := strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n")
	for i, line := range lines {
		title := cleanTitle(line)
		if title == "" {
			continue
		}
		rest := strings.Join(strings.Fields(strings.Join(lines[i+1:], " ")), " ")
		return Summary{Title: title, Summary: rest}, nil
	}
	return Summary{}, ErrEmptyReply
}

func cleanTitle(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "# ")
	if len(line) >= 6 && strings.EqualFold(line[:6], "title:") {
		line = line[6:]
	}
	return strings.Trim(strings.TrimSpace(line), `"*`)
}
