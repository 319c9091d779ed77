package encounter

import "context"

// Fetcher retrieves the raw text of tradition documents.
type Fetcher interface {
	// Fetch returns the raw document text for the tradition slug.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, slug string) (text string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
