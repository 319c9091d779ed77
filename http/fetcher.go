// Package http provides an HTTP-based implementation of encounter.Fetcher
// that downloads tradition documents from a static site.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/encounter"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a single tradition document.
const DefaultMaxBytes = 8 << 20

// Ensure Fetcher implements encounter.Fetcher at compile time.
var _ encounter.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves tradition documents from <baseURL>/traditions/<slug>.md.
type Fetcher struct {
	baseURL  string
	client   *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit paces requests to at most rps per second.
// A non-positive rps disables pacing, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithMaxBytes caps the size of a fetched document.
// Defaults to DefaultMaxBytes (8 MiB).
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher rooted at baseURL.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:  baseURL,
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// URL returns the address of the tradition document for slug.
func (f *Fetcher) URL(slug string) (string, error) {
	u, err := url.JoinPath(f.baseURL, "traditions", slug+".md")
	if err != nil {
		return "", encounter.Errorf(encounter.EINVALID, "invalid base URL %q: %v", f.baseURL, err)
	}
	return u, nil
}

// Fetch downloads the raw text of the tradition document for slug.
// Returns ENOTFOUND if the server answers 404.
func (f *Fetcher) Fetch(ctx context.Context, slug string) (string, error) {
	u, err := f.URL(slug)
	if err != nil {
		return "", err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", encounter.Errorf(encounter.ENOTFOUND, "tradition %q not found at %s", slug, u)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", encounter.Errorf(encounter.EINVALID, "tradition %q exceeds %d bytes", slug, f.maxBytes)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
