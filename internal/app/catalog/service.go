package catalog

import (
	"context"

	"github.com/lier-bua/gear-catalog-api/internal/app/apperr"
	"github.com/lier-bua/gear-catalog-api/internal/app/records"
	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type Service struct {
	store docstore.Store
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// ListEquipment returns active equipment matching q, in store insertion order.
// Store failures are returned as *apperr.Error; there are no partial results.
func (s *Service) ListEquipment(ctx context.Context, q Query) ([]domain.Equipment, error) {
	docs, err := s.store.Query(ctx, docstore.Equipment, q.Predicate())
	if err != nil {
		return nil, apperr.FromStoreRead(err)
	}
	out := make([]domain.Equipment, 0, len(docs))
	for _, d := range docs {
		e, err := records.EquipmentFromDocument(d)
		if err != nil {
			id, _ := d[docstore.IDField].(string)
			return nil, apperr.Corrupt(id, err)
		}
		out = append(out, e)
	}
	return out, nil
}
