// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists search results in a SQLite database keyed by
// query string, so re-running validation on a partially processed
// bibliography does not re-hit the remote API.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibcheck/internal/validate"
	"github.com/pdiddy/bibcheck/pkg/types"
)

const dbFile = "queries.db"

// Store manages the query cache database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at dir/queries.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS queries (
		query      TEXT PRIMARY KEY,
		candidates TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached candidates for query, with ok reporting whether
// the query was present.
func (s *Store) Get(ctx context.Context, query string) (candidates []types.Candidate, ok bool, err error) {
	var blob string
	err = s.db.QueryRowContext(ctx, `SELECT candidates FROM queries WHERE query = ?`, query).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}
	if err := json.Unmarshal([]byte(blob), &candidates); err != nil {
		return nil, false, fmt.Errorf("decoding cached candidates: %w", err)
	}
	return candidates, true, nil
}

// Put stores the candidates for query, replacing any previous row.
func (s *Store) Put(ctx context.Context, query string, candidates []types.Candidate) error {
	blob, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encoding candidates: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO queries (query, candidates, fetched_at) VALUES (?, ?, ?)`,
		query, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Len returns the number of cached queries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache rows: %w", err)
	}
	return n, nil
}

// Wrap layers the cache over a searcher. Hits skip the network entirely
// (and any throttling beneath); cache read or write failures degrade to a
// normal search with a warning on w.
func (s *Store) Wrap(inner validate.Searcher, w io.Writer) validate.Searcher {
	return &cachedSearcher{store: s, inner: inner, w: w}
}

type cachedSearcher struct {
	store *Store
	inner validate.Searcher
	w     io.Writer
}

func (c *cachedSearcher) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	candidates, ok, err := c.store.Get(ctx, query)
	if err != nil {
		fmt.Fprintf(c.w, "warning: query cache read failed: %v\n", err)
	} else if ok {
		return candidates, nil
	}

	candidates, err = c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(ctx, query, candidates); err != nil {
		fmt.Fprintf(c.w, "warning: query cache write failed: %v\n", err)
	}
	return candidates, nil
}
