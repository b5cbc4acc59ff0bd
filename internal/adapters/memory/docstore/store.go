package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type entry struct {
	id   string
	body []byte
}

// Store is an in-memory implementation of docstore.Store.
// It is safe for concurrent use.
//
// Documents are kept encoded; every Query decodes fresh maps.
type Store struct {
	mu           sync.RWMutex
	byCollection map[docstore.Collection][]entry

	newID func() string
}

func NewStore() *Store {
	return &Store{
		byCollection: make(map[docstore.Collection][]entry),
		newID:        uuid.NewString,
	}
}

func (s *Store) Create(ctx context.Context, c docstore.Collection, doc docstore.Document) (string, error) {
	_ = ctx
	body, err := docstore.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %w", docstore.ErrWriteFailed, err)
	}
	id := s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCollection[c] = append(s.byCollection[c], entry{id: id, body: body})
	return id, nil
}

func (s *Store) Query(ctx context.Context, c docstore.Collection, match docstore.Predicate) ([]docstore.Document, error) {
	_ = ctx
	s.mu.RLock()
	entries := s.byCollection[c]
	s.mu.RUnlock()

	// entries is append-only; the captured slice header stays valid without the lock.
	out := make([]docstore.Document, 0)
	for _, e := range entries {
		doc, err := docstore.Decode(e.id, e.body)
		if err != nil {
			return nil, err
		}
		if match.Matches(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) Collections(ctx context.Context) ([]docstore.Collection, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]docstore.Collection, 0, len(s.byCollection))
	for c, entries := range s.byCollection {
		if len(entries) > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	_ = ctx
	return nil
}

// Len returns the number of documents in c.
func (s *Store) Len(c docstore.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byCollection[c])
}
