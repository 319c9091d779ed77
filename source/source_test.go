package source_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/mock"
	"github.com/fwojciec/encounter/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const norseText = "Northern finds.\n---\ntitle: Axe\nimages: [ \"axe.jpg\" ]\n---\nIron head.\n"

func newParser() *encounter.Parser {
	return &encounter.Parser{Renderer: &mock.Renderer{
		RenderFn: func(markdown string) (encounter.HTML, error) {
			return encounter.HTML(markdown), nil
		},
	}}
}

// mapCache is a DocumentCache backed by a map.
func mapCache() (*mock.DocumentCache, func() int) {
	var mu sync.Mutex
	docs := make(map[string]*encounter.TraditionDocument)
	cache := &mock.DocumentCache{
		FindDocumentFn: func(_ context.Context, slug string) (*encounter.TraditionDocument, error) {
			mu.Lock()
			defer mu.Unlock()
			doc, ok := docs[slug]
			if !ok {
				return nil, encounter.Errorf(encounter.ENOTFOUND, "not cached")
			}
			return doc, nil
		},
		PutDocumentFn: func(_ context.Context, doc *encounter.TraditionDocument) error {
			mu.Lock()
			defer mu.Unlock()
			docs[doc.Slug] = doc
			return nil
		},
	}
	return cache, func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(docs)
	}
}

func TestSource_FetchTradition(t *testing.T) {
	t.Parallel()

	t.Run("fetches, parses and caches the document", func(t *testing.T) {
		t.Parallel()

		cache, cached := mapCache()
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, slug string) (string, error) {
					assert.Equal(t, "norse", slug)
					return norseText, nil
				},
			},
			Parser: newParser(),
			Cache:  cache,
		}

		doc := s.FetchTradition(context.Background(), "norse")

		require.NotNil(t, doc)
		assert.False(t, doc.Failed)
		assert.Equal(t, "norse", doc.Slug)
		assert.Equal(t, encounter.HTML("Northern finds."), doc.Description)
		require.Len(t, doc.Artifacts, 1)
		assert.Equal(t, "Axe", doc.Artifacts[0].Title)
		assert.Equal(t, 1, cached())
	})

	t.Run("serves cached documents without fetching", func(t *testing.T) {
		t.Parallel()

		want := &encounter.TraditionDocument{Slug: "norse", Description: "cached"}
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					t.Fatal("fetch should not be called")
					return "", nil
				},
			},
			Parser: newParser(),
			Cache: &mock.DocumentCache{
				FindDocumentFn: func(context.Context, string) (*encounter.TraditionDocument, error) {
					return want, nil
				},
			},
		}

		doc := s.FetchTradition(context.Background(), "norse")

		assert.Same(t, want, doc)
	})

	t.Run("treats cache errors as misses", func(t *testing.T) {
		t.Parallel()

		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return norseText, nil
				},
			},
			Parser: newParser(),
			Cache: &mock.DocumentCache{
				FindDocumentFn: func(context.Context, string) (*encounter.TraditionDocument, error) {
					return nil, errors.New("disk I/O error")
				},
				PutDocumentFn: func(context.Context, *encounter.TraditionDocument) error {
					return errors.New("disk I/O error")
				},
			},
		}

		doc := s.FetchTradition(context.Background(), "norse")

		assert.False(t, doc.Failed)
		assert.Len(t, doc.Artifacts, 1)
	})

	t.Run("works without a cache", func(t *testing.T) {
		t.Parallel()

		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return norseText, nil
				},
			},
			Parser: newParser(),
		}

		doc := s.FetchTradition(context.Background(), "norse")

		assert.False(t, doc.Failed)
	})

	t.Run("degrades fetch failure to an uncached placeholder", func(t *testing.T) {
		t.Parallel()

		cache, cached := mapCache()
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
			Parser:      newParser(),
			Cache:       cache,
			RetryDelays: []time.Duration{},
		}

		doc := s.FetchTradition(context.Background(), "norse")

		require.NotNil(t, doc)
		assert.True(t, doc.Failed)
		assert.Equal(t, "norse", doc.Slug)
		assert.Contains(t, string(doc.Description), "Failed to retrieve content for norse")
		assert.Empty(t, doc.Artifacts)
		assert.Equal(t, 0, cached())
	})

	t.Run("degrades parse failure to a placeholder", func(t *testing.T) {
		t.Parallel()

		parser := newParser()
		parser.Strict = true
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "Intro\n---\ntitle: Axe\nimages: [ axe.jpg ]\n---\n", nil
				},
			},
			Parser: parser,
		}

		doc := s.FetchTradition(context.Background(), "norse")

		assert.True(t, doc.Failed)
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					if calls.Add(1) < 3 {
						return "", errors.New("timeout")
					}
					return norseText, nil
				},
			},
			Parser:      newParser(),
			RetryDelays: []time.Duration{0, 0, 0},
		}

		doc := s.FetchTradition(context.Background(), "norse")

		assert.False(t, doc.Failed)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("collapses concurrent requests into one fetch", func(t *testing.T) {
		t.Parallel()

		cache, _ := mapCache()
		var calls atomic.Int32
		entered := make(chan struct{})
		release := make(chan struct{})
		s := &source.Source{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					if calls.Add(1) == 1 {
						close(entered)
					}
					<-release
					return norseText, nil
				},
			},
			Parser: newParser(),
			Cache:  cache,
		}

		var wg sync.WaitGroup
		docs := make([]*encounter.TraditionDocument, 5)
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs[0] = s.FetchTradition(context.Background(), "norse")
		}()
		<-entered
		for i := 1; i < len(docs); i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				docs[i] = s.FetchTradition(context.Background(), "norse")
			}(i)
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, doc := range docs {
			assert.Same(t, docs[0], doc)
		}
	})
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("timeout")
			},
		}

		_, err := source.FetchWithRetryDelays(context.Background(), fetcher, "norse", []time.Duration{0, 0})

		require.EqualError(t, err, "timeout")
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry not found", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", encounter.Errorf(encounter.ENOTFOUND, "no such tradition")
			},
		}

		_, err := source.FetchWithRetryDelays(context.Background(), fetcher, "norse", []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, encounter.ENOTFOUND, encounter.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				cancel()
				return "", errors.New("timeout")
			},
		}

		_, err := source.FetchWithRetryDelays(ctx, fetcher, "norse", []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	doc := source.Placeholder("<norse>")

	assert.True(t, doc.Failed)
	assert.Equal(t, encounter.HTML("<p>Failed to retrieve content for &lt;norse&gt;</p>"), doc.Description)
}
