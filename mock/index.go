package mock

import "github.com/fwojciec/encounter"

var _ encounter.Index = (*Index)(nil)

// Index is a mock implementation of encounter.Index.
type Index struct {
	IngestFn func(slug string, artifacts []*encounter.Artifact)
	LookupFn func(query string) []*encounter.SearchResult
}

func (i *Index) Ingest(slug string, artifacts []*encounter.Artifact) {
	i.IngestFn(slug, artifacts)
}

func (i *Index) Lookup(query string) []*encounter.SearchResult {
	return i.LookupFn(query)
}

var _ encounter.Diagnostics = (*Diagnostics)(nil)

// Diagnostics is a mock implementation of encounter.Diagnostics.
type Diagnostics struct {
	ArtifactDroppedFn func(tradition string, artifact *encounter.Artifact, reason error)
}

func (d *Diagnostics) ArtifactDropped(tradition string, artifact *encounter.Artifact, reason error) {
	d.ArtifactDroppedFn(tradition, artifact, reason)
}
