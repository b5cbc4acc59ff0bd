// Package records converts domain entities to and from stored documents.
package records

import (
	"fmt"
	"time"

	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

// FieldCreatedAt is stamped on every stored document.
const FieldCreatedAt = "created_at"

func MemberDocument(m domain.Member) docstore.Document {
	return docstore.Document{
		domain.FieldMemberName:      m.Name,
		domain.FieldMemberEmail:     m.Email,
		domain.FieldMemberPhone:     optional(m.Phone),
		domain.FieldMemberAddress:   optional(m.Address),
		domain.FieldMemberAvatarURL: optional(m.AvatarURL),
		FieldCreatedAt:              timestamp(m.CreatedAt),
	}
}

func EquipmentDocument(e domain.Equipment) docstore.Document {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return docstore.Document{
		domain.FieldEquipmentTitle:       e.Title,
		domain.FieldEquipmentCategory:    e.Category,
		domain.FieldEquipmentCondition:   e.Condition,
		domain.FieldEquipmentDescription: optional(e.Description),
		domain.FieldEquipmentImageURL:    optional(e.ImageURL),
		domain.FieldEquipmentSize:        optional(e.Size),
		domain.FieldEquipmentLocation:    e.Location,
		domain.FieldEquipmentTags:        tags,
		domain.FieldEquipmentIsActive:    e.IsActive,
		FieldCreatedAt:                   timestamp(e.CreatedAt),
	}
}

func ReservationDocument(r domain.Reservation) docstore.Document {
	return docstore.Document{
		domain.FieldReservationMemberEmail: r.MemberEmail,
		domain.FieldReservationEquipmentID: string(r.EquipmentID),
		domain.FieldReservationStartDate:   r.StartDate.Format(domain.DateLayout),
		domain.FieldReservationEndDate:     r.EndDate.Format(domain.DateLayout),
		domain.FieldReservationNotes:       optional(r.Notes),
		FieldCreatedAt:                     timestamp(r.CreatedAt),
	}
}

func ReportDocument(r domain.Report) docstore.Document {
	var equipmentID any
	if r.EquipmentID != nil {
		equipmentID = string(*r.EquipmentID)
	}
	return docstore.Document{
		domain.FieldReportType:        r.Type,
		domain.FieldReportName:        r.Name,
		domain.FieldReportEmail:       r.Email,
		domain.FieldReportMessage:     r.Message,
		domain.FieldReportEquipmentID: equipmentID,
		FieldCreatedAt:                timestamp(r.CreatedAt),
	}
}

// EquipmentFromDocument rebuilds an Equipment from a document returned by Query.
// The stored fields are held to the same rules as intake, so a document that
// would not pass validation today is reported as an error.
func EquipmentFromDocument(d docstore.Document) (domain.Equipment, error) {
	id, _ := d[docstore.IDField].(string)
	if id == "" {
		return domain.Equipment{}, fmt.Errorf("equipment document without %s", docstore.IDField)
	}
	e, err := domain.ValidateEquipment(domain.Payload(d))
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("equipment %s: %w", id, err)
	}
	e.ID = domain.EquipmentID(id)
	if s, ok := d[FieldCreatedAt].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			e.CreatedAt = t
		}
	}
	return e, nil
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
