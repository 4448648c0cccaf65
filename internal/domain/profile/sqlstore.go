package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultSlug names the single document a deployment serves.
const DefaultSlug = "default"

// SQLStore keeps the profile document in the profile_document table so an
// operator can import it once and run without a data directory.
type SQLStore struct {
	db   *sql.DB
	slug string
}

// NewSQLStore creates a store bound to slug; an empty slug means DefaultSlug.
func NewSQLStore(db *sql.DB, slug string) *SQLStore {
	if slug == "" {
		slug = DefaultSlug
	}
	return &SQLStore{db: db, slug: slug}
}

// Load reads and validates the stored document.
func (s *SQLStore) Load(ctx context.Context) (*Bundle, error) {
	var doc, summary, external string
	err := s.db.QueryRowContext(ctx, `
		SELECT document, summary, external
		FROM profile_document
		WHERE slug = ?
	`, s.slug).Scan(&doc, &summary, &external)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: slug %q", ErrProfileNotFound, s.slug)
	}
	if err != nil {
		return nil, fmt.Errorf("profile: query %q: %w", s.slug, err)
	}

	p, err := Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("profile: stored %q: %w", s.slug, err)
	}
	return &Bundle{Profile: *p, Summary: summary, External: external}, nil
}

// Save validates b and upserts it under the store's slug.
func (s *SQLStore) Save(ctx context.Context, b *Bundle) error {
	if b == nil {
		return fmt.Errorf("profile: bundle is nil")
	}
	if err := Validate(&b.Profile); err != nil {
		return err
	}
	doc, err := json.Marshal(b.Profile)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile_document (slug, document, summary, external, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			document = excluded.document,
			summary = excluded.summary,
			external = excluded.external,
			updated_at = excluded.updated_at
	`, s.slug, string(doc), b.Summary, b.External, now)
	if err != nil {
		return fmt.Errorf("profile: save %q: %w", s.slug, err)
	}
	return nil
}
