package mock

import (
	"context"

	"github.com/fwojciec/encounter"
)

var _ encounter.DocumentCache = (*DocumentCache)(nil)

// DocumentCache is a mock implementation of encounter.DocumentCache.
type DocumentCache struct {
	FindDocumentFn func(ctx context.Context, slug string) (*encounter.TraditionDocument, error)
	PutDocumentFn  func(ctx context.Context, doc *encounter.TraditionDocument) error
}

func (c *DocumentCache) FindDocument(ctx context.Context, slug string) (*encounter.TraditionDocument, error) {
	return c.FindDocumentFn(ctx, slug)
}

func (c *DocumentCache) PutDocument(ctx context.Context, doc *encounter.TraditionDocument) error {
	return c.PutDocumentFn(ctx, doc)
}
