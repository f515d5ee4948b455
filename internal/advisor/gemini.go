package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"budgeteer/internal/cache"
)

// GeminiEnricher talks to the Gemini API. Responses for identical summaries
// are cached by content hash so repeated analysis requests do not burn
// provider quota.
type GeminiEnricher struct {
	client *genai.Client
	model  string
	cache  *cache.LRU[string]
}

// NewGeminiEnricher creates a Gemini-backed enricher. The API key is read
// from the environment by the genai client itself.
func NewGeminiEnricher(ctx context.Context, model string) (*GeminiEnricher, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiEnricher{
		client: client,
		model:  model,
		cache:  cache.NewLRU[string](100, 15*time.Minute),
	}, nil
}

// EnrichAnalysis implements Enricher.
func (g *GeminiEnricher) EnrichAnalysis(ctx context.Context, summary string) (string, error) {
	key := cache.HashKey([]byte(summary))
	if text, ok := g.cache.Get(key); ok {
		slog.DebugContext(ctx, "Enrichment cache hit", "model", g.model)
		return text, nil
	}

	text, err := g.generate(ctx, BuildEnrichmentPrompt(summary))
	if err != nil {
		return "", err
	}

	g.cache.Set(key, text)
	return text, nil
}

// Chat implements Enricher. Chat answers are not cached: the same summary
// can carry many different questions.
func (g *GeminiEnricher) Chat(ctx context.Context, summary, message string) (string, error) {
	return g.generate(ctx, BuildChatPrompt(summary, message))
}

func (g *GeminiEnricher) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	var text string
	err := withRetry(ctx, 3, 500*time.Millisecond, func() error {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		raw := resp.Text()
		if raw == "" {
			return ErrEmptyResponse
		}
		text = cleanModelText(raw)
		if text == "" {
			return ErrEmptyResponse
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
