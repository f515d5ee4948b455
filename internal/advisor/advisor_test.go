package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildEnrichmentPrompt(t *testing.T) {
	summary := "Total income: $3200.00\nSpending by category:\n- Housing: $1200.00 (88.9%)\n"
	prompt := BuildEnrichmentPrompt(summary)

	if !strings.Contains(prompt, summary) {
		t.Fatalf("prompt must embed the summary")
	}
	if !strings.Contains(prompt, "finance assistant") || !strings.Contains(prompt, "recommendations") {
		t.Fatalf("prompt missing instructions:\n%s", prompt)
	}
}

func TestBuildChatPrompt(t *testing.T) {
	prompt := BuildChatPrompt("Net savings: $100.00", "can I afford a vacation?")
	if !strings.Contains(prompt, "Net savings: $100.00") {
		t.Fatalf("chat prompt must embed the summary")
	}
	if !strings.Contains(prompt, "can I afford a vacation?") {
		t.Fatalf("chat prompt must embed the question")
	}
}

func TestCleanModelText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain answer", "plain answer"},
		{"  padded  ", "padded"},
		{"```\nfenced answer\n```", "fenced answer"},
		{"```text\nfenced with language\n```", "fenced with language"},
		{"```json\n{\"a\":1}\n```\n", `{"a":1}`},
	}
	for i, tc := range cases {
		if got := cleanModelText(tc.in); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	wantErr := errors.New("always failing")
	calls := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, 3, time.Minute, func() error {
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
