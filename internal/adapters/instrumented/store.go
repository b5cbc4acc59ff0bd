// Package instrumented decorates a docstore.Store with operation metrics.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/lier-bua/gear-catalog-api/internal/platform/metrics"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type Store struct {
	next docstore.Store
	m    *metrics.Metrics
	now  func() time.Time
}

func NewStore(next docstore.Store, m *metrics.Metrics) *Store {
	return &Store{next: next, m: m, now: time.Now}
}

func (s *Store) Create(ctx context.Context, c docstore.Collection, doc docstore.Document) (string, error) {
	start := s.now()
	id, err := s.next.Create(ctx, c, doc)
	s.observe("create", string(c), err, start)
	return id, err
}

func (s *Store) Query(ctx context.Context, c docstore.Collection, match docstore.Predicate) ([]docstore.Document, error) {
	start := s.now()
	docs, err := s.next.Query(ctx, c, match)
	s.observe("query", string(c), err, start)
	return docs, err
}

func (s *Store) Collections(ctx context.Context) ([]docstore.Collection, error) {
	start := s.now()
	cs, err := s.next.Collections(ctx)
	s.observe("collections", "", err, start)
	return cs, err
}

func (s *Store) Ping(ctx context.Context) error {
	start := s.now()
	err := s.next.Ping(ctx)
	s.observe("ping", "", err, start)
	return err
}

func (s *Store) observe(op, collection string, err error, start time.Time) {
	s.m.ObserveStore(op, collection, Outcome(err), s.now().Sub(start))
}

// Outcome maps a store error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, docstore.ErrUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, docstore.ErrWriteFailed):
		return metrics.OutcomeWriteFailed
	default:
		return metrics.OutcomeError
	}
}
