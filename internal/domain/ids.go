package domain

// MemberID is the store-assigned identifier of a member record.
// Identifiers are opaque: callers must not rely on their format.
type MemberID string

// EquipmentID is the store-assigned identifier of an equipment record.
type EquipmentID string

// ReservationID is the store-assigned identifier of a reservation record.
type ReservationID string

// ReportID is the store-assigned identifier of a donation/repair report.
type ReportID string
