// Package advisor integrates the optional language-model enrichment
// collaborator. Enrichment is strictly additive: the local analysis is
// always a complete, valid answer on its own, and every caller must fall
// back to it when the provider errs, times out, or returns garbage.
package advisor

import (
	"context"
	"errors"
	"strings"
)

// Enricher augments a budget summary with free-text guidance. Implementations
// must never be required for a correct response.
type Enricher interface {
	// EnrichAnalysis returns extra free-text recommendations for the
	// aggregate summary produced by the analysis engine.
	EnrichAnalysis(ctx context.Context, summary string) (string, error)
	// Chat answers a conversational question grounded in the summary.
	Chat(ctx context.Context, summary, message string) (string, error)
}

// ErrEmptyResponse is returned when the provider answers with no usable text.
var ErrEmptyResponse = errors.New("empty response from enrichment provider")

// BuildEnrichmentPrompt wraps the aggregate summary with instructions for
// the model. The summary contains only aggregate numbers and category
// names; no transaction descriptions or identifiers.
func BuildEnrichmentPrompt(summary string) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant.\n\n")
	b.WriteString("Below is an aggregate budget summary for one user:\n\n")
	b.WriteString(summary)
	b.WriteString("\nTask:\n")
	b.WriteString("- Give 2-4 short, concrete recommendations based only on the numbers above.\n")
	b.WriteString("- Plain sentences, one per line.\n")
	b.WriteString("- Do NOT use Markdown, bullets, or code fences.\n")
	b.WriteString("- Do NOT repeat the numbers back verbatim; interpret them.\n")
	return b.String()
}

// BuildChatPrompt grounds a conversational question in the same summary.
func BuildChatPrompt(summary, message string) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant answering one question.\n\n")
	b.WriteString("The user's aggregate budget summary:\n\n")
	b.WriteString(summary)
	b.WriteString("\nThe user's question:\n")
	b.WriteString(message)
	b.WriteString("\n\nAnswer briefly and concretely, grounded in the summary. ")
	b.WriteString("Plain text only, no Markdown and no code fences.\n")
	return b.String()
}

// cleanModelText strips Markdown code fences the model may wrap its answer
// in despite instructions, and trims surrounding whitespace.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
