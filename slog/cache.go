package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/encounter"
)

// Ensure LoggingCache implements encounter.DocumentCache.
var _ encounter.DocumentCache = (*LoggingCache)(nil)

// LoggingCache wraps a DocumentCache with debug logging of hits and misses.
type LoggingCache struct {
	next   encounter.DocumentCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next encounter.DocumentCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// FindDocument logs whether the lookup hit, missed or failed.
func (c *LoggingCache) FindDocument(ctx context.Context, slug string) (*encounter.TraditionDocument, error) {
	doc, err := c.next.FindDocument(ctx, slug)
	switch {
	case err == nil:
		c.logger.Debug("cache hit", "tradition", slug)
	case encounter.ErrorCode(err) == encounter.ENOTFOUND:
		c.logger.Debug("cache miss", "tradition", slug)
	default:
		c.logger.Warn("cache read failed", "tradition", slug, "err", err.Error())
	}
	return doc, err
}

// PutDocument logs failed writes.
func (c *LoggingCache) PutDocument(ctx context.Context, doc *encounter.TraditionDocument) error {
	err := c.next.PutDocument(ctx, doc)
	if err != nil {
		c.logger.Warn("cache write failed", "tradition", doc.Slug, "err", err.Error())
		return err
	}
	c.logger.Debug("cache write", "tradition", doc.Slug, "artifacts", len(doc.Artifacts))
	return nil
}
