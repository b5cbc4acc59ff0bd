package intake

import (
	"context"

	"github.com/lier-bua/gear-catalog-api/internal/app/apperr"
	"github.com/lier-bua/gear-catalog-api/internal/app/records"
	"github.com/lier-bua/gear-catalog-api/internal/domain"
	clockport "github.com/lier-bua/gear-catalog-api/internal/ports/out/clock"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

// Service validates proposed records and appends them to the store.
// Each call writes at most one document and reads nothing.
type Service struct {
	store docstore.Store
	clk   clockport.Clock
}

func NewService(store docstore.Store, clk clockport.Clock) *Service {
	return &Service{store: store, clk: clk}
}

func (s *Service) CreateMember(ctx context.Context, p domain.Payload) (domain.MemberID, error) {
	m, err := domain.ValidateMember(p)
	if err != nil {
		return "", apperr.FromValidation(err)
	}
	m.CreatedAt = s.clk.Now().UTC()
	id, err := s.create(ctx, docstore.Members, records.MemberDocument(m))
	return domain.MemberID(id), err
}

func (s *Service) CreateEquipment(ctx context.Context, p domain.Payload) (domain.EquipmentID, error) {
	e, err := domain.ValidateEquipment(p)
	if err != nil {
		return "", apperr.FromValidation(err)
	}
	e.CreatedAt = s.clk.Now().UTC()
	id, err := s.create(ctx, docstore.Equipment, records.EquipmentDocument(e))
	return domain.EquipmentID(id), err
}

// CreateReservation does not check that the equipment or member exists, nor
// whether the dates overlap other reservations of the same item.
func (s *Service) CreateReservation(ctx context.Context, p domain.Payload) (domain.ReservationID, error) {
	r, err := domain.ValidateReservation(p)
	if err != nil {
		return "", apperr.FromValidation(err)
	}
	r.CreatedAt = s.clk.Now().UTC()
	id, err := s.create(ctx, docstore.Reservations, records.ReservationDocument(r))
	return domain.ReservationID(id), err
}

func (s *Service) CreateReport(ctx context.Context, p domain.Payload) (domain.ReportID, error) {
	r, err := domain.ValidateReport(p)
	if err != nil {
		return "", apperr.FromValidation(err)
	}
	r.CreatedAt = s.clk.Now().UTC()
	id, err := s.create(ctx, docstore.Reports, records.ReportDocument(r))
	return domain.ReportID(id), err
}

func (s *Service) create(ctx context.Context, c docstore.Collection, doc docstore.Document) (string, error) {
	id, err := s.store.Create(ctx, c, doc)
	if err != nil {
		return "", apperr.FromStoreWrite(err)
	}
	return id, nil
}
