package encounter

import "context"

// Tradition is a registry entry naming one tradition document.
type Tradition struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
}

// Registry is the ordered, fixed set of known traditions.
// Its order defines iteration order for loading and searching.
type Registry []Tradition

// Find returns the tradition with the given slug.
func (r Registry) Find(slug string) (Tradition, bool) {
	for _, t := range r {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tradition{}, false
}

// Slugs returns tradition slugs in registry order.
func (r Registry) Slugs() []string {
	slugs := make([]string, 0, len(r))
	for _, t := range r {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

// Validate returns an error if the registry contains invalid or duplicate entries.
func (r Registry) Validate() error {
	seen := make(map[string]bool, len(r))
	for i, t := range r {
		if t.Slug == "" {
			return Errorf(EINVALID, "tradition %d: slug required", i)
		}
		if t.Name == "" {
			return Errorf(EINVALID, "tradition %q: name required", t.Slug)
		}
		if seen[t.Slug] {
			return Errorf(ECONFLICT, "tradition %q registered twice", t.Slug)
		}
		seen[t.Slug] = true
	}
	return nil
}

// TraditionDocument is the parsed form of one tradition document.
// It is immutable once built and replaced wholesale on re-parse.
type TraditionDocument struct {
	Slug        string      `json:"slug"`
	Description HTML        `json:"description"`
	Artifacts   []*Artifact `json:"artifacts"`

	// SlugIndex maps each artifact slug to the index of the first artifact
	// in Artifacts that produced it.
	SlugIndex map[string]int `json:"slugIndex"`

	// Failed marks a placeholder produced when the document could not be
	// retrieved. A failed document has no artifacts and must not be indexed.
	Failed bool `json:"failed,omitempty"`
}

// ArtifactBySlug returns the first artifact with the given slug.
// Returns ENOTFOUND if no artifact has that slug.
func (d *TraditionDocument) ArtifactBySlug(slug string) (*Artifact, error) {
	i, ok := d.SlugIndex[slug]
	if !ok || i < 0 || i >= len(d.Artifacts) {
		return nil, Errorf(ENOTFOUND, "artifact %q not found in %q", slug, d.Slug)
	}
	return d.Artifacts[i], nil
}

// TraditionSource resolves a tradition slug to its parsed document.
type TraditionSource interface {
	// FetchTradition never fails. When the document cannot be retrieved
	// or parsed it returns a placeholder with Failed set and a description
	// explaining the failure.
	FetchTradition(ctx context.Context, slug string) *TraditionDocument
}

// DocumentCache stores parsed tradition documents by slug.
type DocumentCache interface {
	// FindDocument returns the cached document for slug.
	// Returns ENOTFOUND if nothing is cached.
	FindDocument(ctx context.Context, slug string) (*TraditionDocument, error)

	// PutDocument caches doc under its slug, replacing any previous entry.
	PutDocument(ctx context.Context, doc *TraditionDocument) error
}
