// Package source resolves tradition slugs to parsed documents. It fronts a
// Fetcher with a document cache, collapses concurrent requests for the
// same tradition into one fetch, and degrades failures to placeholder
// documents instead of returning errors.
package source

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/fwojciec/encounter"
	"golang.org/x/sync/singleflight"
)

// Ensure Source implements encounter.TraditionSource at compile time.
var _ encounter.TraditionSource = (*Source)(nil)

// Source fetches, parses and caches tradition documents.
type Source struct {
	Fetcher encounter.Fetcher
	Parser  *encounter.Parser

	// Cache is optional. Cache errors are treated as misses.
	Cache encounter.DocumentCache

	// RetryDelays defaults to DefaultRetryDelays when nil.
	RetryDelays []time.Duration

	// Logger, if set, receives a warning for every placeholder returned.
	Logger *slog.Logger

	inflight singleflight.Group
}

// FetchTradition returns the parsed document for slug. It never fails: when
// the document cannot be fetched or parsed it returns an uncached
// placeholder with Failed set.
func (s *Source) FetchTradition(ctx context.Context, slug string) *encounter.TraditionDocument {
	if s.Cache != nil {
		if doc, err := s.Cache.FindDocument(ctx, slug); err == nil {
			return doc
		}
	}

	v, err, _ := s.inflight.Do(slug, func() (any, error) {
		return s.load(ctx, slug)
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("tradition unavailable", "tradition", slug, "err", err)
		}
		return Placeholder(slug)
	}
	return v.(*encounter.TraditionDocument)
}

func (s *Source) load(ctx context.Context, slug string) (*encounter.TraditionDocument, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	text, err := FetchWithRetryDelays(ctx, s.Fetcher, slug, delays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", slug, err)
	}

	doc, err := s.Parser.Parse(text, slug)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", slug, err)
	}

	if s.Cache != nil {
		_ = s.Cache.PutDocument(ctx, doc)
	}
	return doc, nil
}

// Placeholder returns the degraded document used when slug could not be
// retrieved.
func Placeholder(slug string) *encounter.TraditionDocument {
	return &encounter.TraditionDocument{
		Slug:        slug,
		Description: encounter.HTML("<p>Failed to retrieve content for " + html.EscapeString(slug) + "</p>"),
		SlugIndex:   map[string]int{},
		Failed:      true,
	}
}
