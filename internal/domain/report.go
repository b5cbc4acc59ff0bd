package domain

import "time"

const (
	FieldReportType        = "type"
	FieldReportName        = "name"
	FieldReportEmail       = "email"
	FieldReportMessage     = "message"
	FieldReportEquipmentID = "equipment_id"
)

// Report types used by the public forms. Type is stored as free text and any
// string passes validation; these are conventions, not an enum.
const (
	ReportTypeDonation = "donation"
	ReportTypeRepair   = "repair"
)

// Report is a donation offer or a repair notice, optionally about one item.
type Report struct {
	ID ReportID

	Type        string
	Name        string
	Email       string
	Message     string
	EquipmentID *EquipmentID

	CreatedAt time.Time
}

// ValidateReport checks a proposed report payload. Type is free text and
// equipment_id is optional.
func ValidateReport(p Payload) (Report, error) {
	r := newFieldReader("report", p)
	rep := Report{
		Type:    r.requiredString(FieldReportType),
		Name:    r.requiredString(FieldReportName),
		Email:   r.requiredString(FieldReportEmail),
		Message: r.requiredString(FieldReportMessage),
	}
	if id := r.optionalString(FieldReportEquipmentID); id != nil {
		eid := EquipmentID(*id)
		rep.EquipmentID = &eid
	}
	if err := r.err(); err != nil {
		return Report{}, err
	}
	return rep, nil
}
