package discover

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lighterceptor"
)

// DefaultRetryDelays returns the backoff delays used by the CLI when
// retries are enabled: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds or the delays are
// exhausted, sleeping delays[i] before retry i+1. With no delays it makes a
// single attempt. The logger, if non-nil, receives one line per retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch LoadFunc, logger *slog.Logger, delays []time.Duration) (*lighterceptor.Resource, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger.Debug("retry", "url", url, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
