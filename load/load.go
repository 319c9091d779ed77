// Package load fills a search index with the artifacts of every registered
// tradition.
package load

import (
	"context"

	"github.com/fwojciec/encounter"
	"golang.org/x/sync/errgroup"
)

// Loader fetches every tradition of a registry and ingests its artifacts
// into an index.
type Loader struct {
	Registry encounter.Registry
	Source   encounter.TraditionSource
	Index    encounter.Index

	// Concurrency bounds the number of traditions fetched at once.
	// Defaults to 1, which loads traditions strictly one after another.
	Concurrency int
}

// Result holds the outcome of a load.
type Result struct {
	Loaded    int
	Failed    int
	Artifacts int
}

// ProgressEvent reports progress during a load.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Tradition string
	Artifacts int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressLoaded
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting load progress.
type ProgressFunc func(event ProgressEvent)

// loadResult is the document fetched for one registry position.
type loadResult struct {
	slug string
	doc  *encounter.TraditionDocument
}

// LoadAll fetches every tradition and ingests the ones that were retrieved.
// Fetches may overlap up to Concurrency, but ingestion always happens on
// the calling goroutine, one tradition at a time. Traditions that could not
// be retrieved keep whatever the index already held for them.
func (l *Loader) LoadAll(ctx context.Context, progress ProgressFunc) (*Result, error) {
	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(l.Registry)
	notify := func(e ProgressEvent) {
		if progress != nil {
			e.Total = total
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	resultCh := make(chan loadResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, t := range l.Registry {
			slug := t.Slug
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				doc := l.Source.FetchTradition(gctx, slug)
				select {
				case resultCh <- loadResult{slug: slug, doc: doc}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	completed := 0
	for r := range resultCh {
		completed++
		if r.doc == nil || r.doc.Failed {
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Tradition: r.slug})
			continue
		}

		l.Index.Ingest(r.slug, r.doc.Artifacts)
		result.Loaded++
		result.Artifacts += len(r.doc.Artifacts)
		notify(ProgressEvent{
			Type:      ProgressLoaded,
			Completed: completed,
			Tradition: r.slug,
			Artifacts: len(r.doc.Artifacts),
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: completed})
	return result, nil
}
