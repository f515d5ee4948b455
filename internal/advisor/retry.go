package advisor

import (
	"context"
	"log/slog"
	"time"
)

// withRetry runs the operation up to maxAttempts times with exponential
// backoff, respecting context cancellation between attempts.
func withRetry(ctx context.Context, maxAttempts int, initialDelay time.Duration, operation func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if initialDelay <= 0 {
		initialDelay = 100 * time.Millisecond
	}

	delay := initialDelay
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		slog.WarnContext(ctx, "Enrichment attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
