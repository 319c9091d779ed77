// Package fs provides a filesystem implementation of encounter.Fetcher that
// reads tradition documents from a local copy of the site.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/encounter"
)

// Ensure Fetcher implements encounter.Fetcher at compile time.
var _ encounter.Fetcher = (*Fetcher)(nil)

// Fetcher reads tradition documents from <root>/traditions/<slug>.md.
type Fetcher struct {
	root string
}

// NewFetcher creates a Fetcher rooted at the site directory root.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{root: root}
}

// Path returns the file path of the tradition document for slug.
func (f *Fetcher) Path(slug string) (string, error) {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", encounter.Errorf(encounter.EINVALID, "invalid tradition slug %q", slug)
	}
	return filepath.Join(f.root, "traditions", slug+".md"), nil
}

// Fetch reads the raw text of the tradition document for slug.
// Returns ENOTFOUND if the file does not exist.
func (f *Fetcher) Fetch(ctx context.Context, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.Path(slug)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", encounter.Errorf(encounter.ENOTFOUND, "tradition %q not found at %s", slug, path)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close is a no-op; files are opened and closed per fetch.
func (f *Fetcher) Close() error {
	return nil
}
