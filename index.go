package encounter

// DefaultSearchLimit is the maximum number of results returned by a lookup,
// and the maximum number of matches taken from any single tradition.
const DefaultSearchLimit = 10

// SearchResult is a read-only view of a matched artifact annotated with
// its owning tradition.
type SearchResult struct {
	Artifact      *Artifact `json:"artifact"`
	TraditionSlug string    `json:"traditionSlug"`
	Tradition     string    `json:"tradition"`
}

// Index holds the most recently ingested artifacts of every tradition and
// answers title lookups across all of them.
type Index interface {
	// Ingest replaces the artifacts for slug wholesale.
	Ingest(slug string, artifacts []*Artifact)

	// Lookup returns artifacts whose title contains query, ignoring case,
	// interleaved round-robin across traditions in registry order.
	Lookup(query string) []*SearchResult
}

// Diagnostics receives non-fatal parser events.
type Diagnostics interface {
	// ArtifactDropped reports an artifact excluded from a tradition
	// document along with the reason it was excluded.
	ArtifactDropped(tradition string, artifact *Artifact, reason error)
}
