package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/encounter"
)

// Ensure LoggingFetcher implements encounter.Fetcher.
var _ encounter.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   encounter.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next encounter.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the slug, size and duration of every fetch.
func (f *LoggingFetcher) Fetch(ctx context.Context, slug string) (text string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"slug", slug,
			"bytes", len(text),
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Warn("fetch", append(attrs, "err", err.Error())...)
			return
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, slug)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
