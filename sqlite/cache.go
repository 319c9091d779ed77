package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/encounter"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ encounter.DocumentCache = (*DocumentCache)(nil)

// DocumentCache implements encounter.DocumentCache using SQLite. Documents
// are stored as JSON alongside an xxHash of the payload, which is checked
// when the document is read back.
type DocumentCache struct {
	db *DB
}

// NewDocumentCache creates a new DocumentCache.
func NewDocumentCache(db *DB) *DocumentCache {
	return &DocumentCache{db: db}
}

// hashContent computes the xxHash of content as a 16-digit hex string.
func hashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// PutDocument caches doc under its slug, replacing any previous entry.
// Placeholder documents are rejected.
func (c *DocumentCache) PutDocument(ctx context.Context, doc *encounter.TraditionDocument) error {
	if doc.Slug == "" {
		return encounter.Errorf(encounter.EINVALID, "document slug required")
	}
	if doc.Failed {
		return encounter.Errorf(encounter.EINVALID, "placeholder for %q cannot be cached", doc.Slug)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO traditions (id, slug, document, content_hash, artifact_count, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			document = excluded.document,
			content_hash = excluded.content_hash,
			artifact_count = excluded.artifact_count,
			cached_at = excluded.cached_at
	`, uuid.New().String(), doc.Slug, string(payload), hashContent(payload),
		len(doc.Artifacts), time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindDocument returns the cached document for slug.
// Returns ENOTFOUND if nothing is cached.
func (c *DocumentCache) FindDocument(ctx context.Context, slug string) (*encounter.TraditionDocument, error) {
	var payload, hash string

	err := c.db.QueryRowContext(ctx, `
		SELECT document, content_hash
		FROM traditions
		WHERE slug = ?
	`, slug).Scan(&payload, &hash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, encounter.Errorf(encounter.ENOTFOUND, "tradition %q not cached", slug)
	}
	if err != nil {
		return nil, err
	}

	if hashContent([]byte(payload)) != hash {
		return nil, encounter.Errorf(encounter.EINTERNAL, "cached document for %q is corrupt", slug)
	}

	var doc encounter.TraditionDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &doc, nil
}

// DeleteDocument removes the cached document for slug.
// Returns ENOTFOUND if nothing is cached.
func (c *DocumentCache) DeleteDocument(ctx context.Context, slug string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM traditions WHERE slug = ?", slug)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return encounter.Errorf(encounter.ENOTFOUND, "tradition %q not cached", slug)
	}

	return nil
}
