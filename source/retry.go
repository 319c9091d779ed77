package source

import (
	"context"
	"time"

	"github.com/fwojciec/encounter"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches slug, retrying after each failure with the
// given delays. It makes len(delays)+1 attempts in total and returns the
// last error if all of them fail. Not-found errors are not retried.
func FetchWithRetryDelays(ctx context.Context, fetcher encounter.Fetcher, slug string, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := fetcher.Fetch(ctx, slug)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if encounter.ErrorCode(err) == encounter.ENOTFOUND || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
