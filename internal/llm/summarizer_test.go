package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-notepad/internal/settings"
)

func TestSummarizer_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/deployments/gpt-test/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api-version") != "2024-02-01" {
			t.Errorf("api-version = %q", r.URL.Query().Get("api-version"))
		}
		if r.Header.Get("api-key") != "secret" {
			t.Error("missing api-key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Title: Weekend plans\nHiking on Saturday,\nbrunch on Sunday."},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	snap := testSnapshot(server.URL)
	snap.APIVersion = "2024-02-01"

	got, err := NewSummarizer(server.Client()).Summarize(context.Background(), snap, "note body")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want := Summary{Title: "Weekend plans", Summary: "Hiking on Saturday, brunch on Sunday."}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizer_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := NewSummarizer(nil).Summarize(context.Background(), settings.Snapshot{}, "x")
		if !errors.Is(err, settings.ErrNotConfigured) {
			t.Errorf("Summarize() error = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
		}))
		defer server.Close()

		if _, err := NewSummarizer(server.Client()).Summarize(context.Background(), testSnapshot(server.URL), "x"); err == nil {
			t.Error("Summarize() expected error")
		}
	})

	t.Run("empty reply", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  \n "}}]}`)
		}))
		defer server.Close()

		_, err := NewSummarizer(server.Client()).Summarize(context.Background(), testSnapshot(server.URL), "x")
		if !errors.Is(err, ErrEmptyReply) {
			t.Errorf("Summarize() error = %v, want ErrEmptyReply", err)
		}
	})
}

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Summary
	}{
		{name: "plain", reply: "Groceries\nMilk and eggs.", want: Summary{Title: "Groceries", Summary: "Milk and eggs."}},
		{name: "markdown heading", reply: "# Groceries\n\nMilk and eggs.", want: Summary{Title: "Groceries", Summary: "Milk and eggs."}},
		{name: "leading blank lines", reply: "\n\n**Groceries**\r\nMilk.", want: Summary{Title: "Groceries", Summary: "Milk."}},
		{name: "title only", reply: "Groceries", want: Summary{Title: "Groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSummary(tt.reply)
			if err != nil {
				t.Fatalf("parseSummary() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseSummary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
