package mock

import (
	"context"

	"github.com/fwojciec/encounter"
)

var _ encounter.TraditionSource = (*TraditionSource)(nil)

// TraditionSource is a mock implementation of encounter.TraditionSource.
type TraditionSource struct {
	FetchTraditionFn func(ctx context.Context, slug string) *encounter.TraditionDocument
}

func (s *TraditionSource) FetchTradition(ctx context.Context, slug string) *encounter.TraditionDocument {
	return s.FetchTraditionFn(ctx, slug)
}
