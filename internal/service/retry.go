package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/svidal/filmoteca/internal/domain"
)

const (
	// readRetries is the number of extra attempts for read operations.
	// Mutations never retry: a duplicated write is worse than a failed one.
	readRetries = 2

	retryBaseDelay = 200 * time.Millisecond
)

// fetchWithRetry runs a read operation, retrying transient failures
// (transport errors and 5xx) up to readRetries extra times. Validation
// and auth failures surface immediately.
func fetchWithRetry[T any](ctx context.Context, logger *slog.Logger, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= readRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			}
			logger.Debug("retrying read", "attempt", attempt)
		}

		val, err := fetch(ctx)
		if err == nil {
			return val, nil
		}
		if !domain.IsTransient(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}
