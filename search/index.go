// Package search provides an in-memory title index over the artifacts of
// every registered tradition.
package search

import (
	"regexp"
	"sync"

	"github.com/fwojciec/encounter"
)

// Ensure Index implements encounter.Index at compile time.
var _ encounter.Index = (*Index)(nil)

// Index holds the latest ingested artifacts of each tradition. Lookups
// interleave matches round-robin across traditions so that one tradition
// with many hits cannot crowd the others out of a result page.
type Index struct {
	mu        sync.RWMutex
	registry  encounter.Registry
	artifacts map[string][]*encounter.Artifact
	limit     int
}

// Option configures an Index.
type Option func(*Index)

// WithLimit sets the maximum number of results per lookup.
// Defaults to encounter.DefaultSearchLimit (10) if not specified.
func WithLimit(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.limit = n
		}
	}
}

// NewIndex creates an empty Index over the traditions of registry.
func NewIndex(registry encounter.Registry, opts ...Option) *Index {
	idx := &Index{
		registry:  registry,
		artifacts: make(map[string][]*encounter.Artifact),
		limit:     encounter.DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Ingest replaces the artifacts of the tradition identified by slug.
func (idx *Index) Ingest(slug string, artifacts []*encounter.Artifact) {
	stored := make([]*encounter.Artifact, len(artifacts))
	copy(stored, artifacts)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.artifacts[slug] = stored
}

// Lookup returns up to limit artifacts whose title contains query, ignoring
// case. The query is matched literally.
func (idx *Index) Lookup(query string) []*encounter.SearchResult {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))

	idx.mu.RLock()
	matches := make(map[string][]*encounter.SearchResult, len(idx.registry))
	for _, t := range idx.registry {
		matches[t.Slug] = idx.match(t, re)
	}
	idx.mu.RUnlock()

	return roundRobin(idx.registry.Slugs(), matches, idx.limit)
}

// match collects up to limit matching artifacts of one tradition in order.
func (idx *Index) match(t encounter.Tradition, re *regexp.Regexp) []*encounter.SearchResult {
	var out []*encounter.SearchResult
	for _, a := range idx.artifacts[t.Slug] {
		if len(out) >= idx.limit {
			break
		}
		if !re.MatchString(a.Title) {
			continue
		}
		out = append(out, &encounter.SearchResult{
			Artifact:      a,
			TraditionSlug: t.Slug,
			Tradition:     t.Name,
		})
	}
	return out
}

// roundRobin takes one result from each tradition in turn, removing
// traditions from the rotation once their matches are used up, until limit
// results are taken or nothing remains.
func roundRobin(slugs []string, matches map[string][]*encounter.SearchResult, limit int) []*encounter.SearchResult {
	out := make([]*encounter.SearchResult, 0, limit)
	live := append([]string(nil), slugs...)
	cursor := 0

	for len(live) > 0 && len(out) < limit {
		slug := live[cursor]
		if m := matches[slug]; len(m) > 0 {
			out = append(out, m[0])
			matches[slug] = m[1:]
			cursor = (cursor + 1) % len(live)
			continue
		}
		live = append(live[:cursor], live[cursor+1:]...)
		if len(live) > 0 {
			cursor %= len(live)
		}
	}

	return out
}
