package mock

import (
	"context"

	"github.com/fwojciec/encounter"
)

var _ encounter.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of encounter.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, slug string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, slug string) (string, error) {
	return f.FetchFn(ctx, slug)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
