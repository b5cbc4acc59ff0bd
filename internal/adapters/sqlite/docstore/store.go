// Package docstore persists documents to a single SQLite table as JSON text.
package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

// DefaultPath is used when Open is given an empty path.
const DefaultPath = "gear-catalog.db"

// Store is a SQLite implementation of docstore.Store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id         TEXT NOT NULL UNIQUE,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents index: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

func (s *Store) Create(ctx context.Context, c docstore.Collection, doc docstore.Document) (string, error) {
	body, err := docstore.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", docstore.ErrWriteFailed, err)
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO documents(collection, id, body) VALUES(?, ?, ?)`, string(c), id, string(body)); err != nil {
		return "", classify(err, docstore.ErrWriteFailed)
	}
	return id, nil
}

func (s *Store) Query(ctx context.Context, c docstore.Collection, match docstore.Predicate) ([]docstore.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM documents WHERE collection = ? ORDER BY seq`, string(c))
	if err != nil {
		return nil, classify(err, nil)
	}
	defer func() { _ = rows.Close() }()

	out := make([]docstore.Document, 0)
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, classify(err, nil)
		}
		doc, err := docstore.Decode(id, []byte(body))
		if err != nil {
			return nil, err
		}
		if match.Matches(doc) {
			out = append(out, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, nil)
	}
	return out, nil
}

func (s *Store) Collections(ctx context.Context) ([]docstore.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, classify(err, nil)
	}
	defer func() { _ = rows.Close() }()

	out := make([]docstore.Collection, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, classify(err, nil)
		}
		out = append(out, docstore.Collection(c))
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, nil)
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	return nil
}

func classify(err error, fallback error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	if fallback != nil {
		return fmt.Errorf("%w: %w", fallback, err)
	}
	return err
}

// isUnavailable reports errors caused by a closed handle or an abandoned
// context rather than by the statement itself.
func isUnavailable(err error) bool {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	// database/sql does not export its closed-database error.
	return strings.Contains(err.Error(), "database is closed")
}
