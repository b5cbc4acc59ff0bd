package docstore

import (
	"context"
	"errors"
)

// Collection names a group of documents of one entity type.
type Collection string

const (
	Members      Collection = "member"
	Equipment    Collection = "equipment"
	Reservations Collection = "reservation"
	Reports      Collection = "report"
)

// IDField holds the store-assigned identifier in documents returned by Query.
// It is never persisted as part of the document body.
const IDField = "_id"

var (
	// ErrUnavailable indicates the store cannot be reached.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrWriteFailed indicates the store rejected or failed a write. The document does not exist.
	ErrWriteFailed = errors.New("document store write failed")
)

// Document is one stored record: field name to value.
//
// Values round-trip through JSON, so reads return encoding/json shapes
// (string, bool, float64, []any, map[string]any, nil) regardless of what was written.
type Document map[string]any

// Predicate selects documents during Query. A nil Predicate matches everything.
type Predicate func(Document) bool

// Store is the persistence collaborator: an opaque document store.
//
// Ordering expectations:
// - Query returns matches in insertion order, so repeated queries over unchanged data are stable.
//
// Each Create is atomic: either the whole document is stored or nothing is.
// Adapters wrap driver errors with ErrUnavailable or ErrWriteFailed.
type Store interface {
	// Create stores doc in c and returns its newly generated identifier.
	Create(ctx context.Context, c Collection, doc Document) (string, error)

	// Query returns all documents in c accepted by match, each with IDField set.
	Query(ctx context.Context, c Collection, match Predicate) ([]Document, error)

	// Collections lists collections holding at least one document, sorted by name.
	Collections(ctx context.Context) ([]Collection, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}
