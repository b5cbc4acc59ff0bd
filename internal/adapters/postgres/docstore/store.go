package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

// Store is a Postgres implementation of docstore.Store backed by the documents table.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, c docstore.Collection, doc docstore.Document) (string, error) {
	if s.pool == nil {
		return "", fmt.Errorf("%w: nil postgres pool", docstore.ErrUnavailable)
	}
	body, err := docstore.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", docstore.ErrWriteFailed, err)
	}
	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3)
	`, string(c), id, json.RawMessage(body))
	if err != nil {
		return "", classify(err, docstore.ErrWriteFailed)
	}
	return id.String(), nil
}

func (s *Store) Query(ctx context.Context, c docstore.Collection, match docstore.Predicate) ([]docstore.Document, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("%w: nil postgres pool", docstore.ErrUnavailable)
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, body::text
		FROM documents
		WHERE collection = $1
		ORDER BY seq
	`, string(c))
	if err != nil {
		return nil, classify(err, nil)
	}
	defer rows.Close()

	out := make([]docstore.Document, 0)
	for rows.Next() {
		var (
			id   string
			body string
		)
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
	if s.pool == nil {
		return nil, fmt.Errorf("%w: nil postgres pool", docstore.ErrUnavailable)
	}
	rows, err := s.pool.Query(ctx, `SELECT collection FROM documents GROUP BY collection ORDER BY collection COLLATE "C"`)
	if err != nil {
		return nil, classify(err, nil)
	}
	defer rows.Close()

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
	if s.pool == nil {
		return fmt.Errorf("%w: nil postgres pool", docstore.ErrUnavailable)
	}
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	return nil
}

// classify wraps err with ErrUnavailable when the database could not be
// reached, otherwise with fallback (or not at all when fallback is nil).
func classify(err error, fallback error) error {
	if errors.Is(err, docstore.ErrUnavailable) || errors.Is(err, docstore.ErrWriteFailed) {
		return err
	}
	if postgres.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	if fallback != nil {
		return fmt.Errorf("%w: %w", fallback, err)
	}
	return err
}
