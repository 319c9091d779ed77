package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/encounter"
)

// Ensure LoggingIndex implements encounter.Index.
var _ encounter.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with debug logging.
type LoggingIndex struct {
	next   encounter.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next encounter.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Ingest logs the tradition and how many artifacts replaced its entry.
func (i *LoggingIndex) Ingest(slug string, artifacts []*encounter.Artifact) {
	i.logger.Debug("ingest", "tradition", slug, "artifacts", len(artifacts))
	i.next.Ingest(slug, artifacts)
}

// Lookup logs the query, the result count and the duration.
func (i *LoggingIndex) Lookup(query string) (results []*encounter.SearchResult) {
	defer func(begin time.Time) {
		i.logger.Debug("lookup",
			"query", query,
			"results", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Lookup(query)
}
