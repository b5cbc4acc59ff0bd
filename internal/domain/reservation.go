package domain

import "time"

const (
	FieldReservationMemberEmail = "member_email"
	FieldReservationEquipmentID = "equipment_id"
	FieldReservationStartDate   = "start_date"
	FieldReservationEndDate     = "end_date"
	FieldReservationNotes       = "notes"
)

// Reservation is a request to borrow one equipment item for a date range.
//
// MemberEmail and EquipmentID are weak references: nothing checks that the
// member or the equipment exists, and overlapping reservations are accepted.
type Reservation struct {
	ID ReservationID

	MemberEmail string
	EquipmentID EquipmentID
	StartDate   time.Time // date-only, UTC midnight
	EndDate     time.Time // date-only, UTC midnight
	Notes       *string

	CreatedAt time.Time
}

// ValidateReservation checks a proposed reservation payload, parses both dates
// and requires start_date <= end_date.
func ValidateReservation(p Payload) (Reservation, error) {
	r := newFieldReader("reservation", p)
	res := Reservation{
		MemberEmail: r.requiredString(FieldReservationMemberEmail),
		EquipmentID: EquipmentID(r.requiredString(FieldReservationEquipmentID)),
	}
	start, startOK := r.requiredDate(FieldReservationStartDate)
	end, endOK := r.requiredDate(FieldReservationEndDate)
	if startOK && endOK && end.Before(start) {
		r.fail(FieldReservationEndDate, "must be on or after start_date")
	}
	res.StartDate = start
	res.EndDate = end
	res.Notes = r.optionalString(FieldReservationNotes)
	if err := r.err(); err != nil {
		return Reservation{}, err
	}
	return res, nil
}
