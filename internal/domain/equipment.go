package domain

import "time"

const (
	FieldEquipmentTitle       = "title"
	FieldEquipmentCategory    = "category"
	FieldEquipmentCondition   = "condition"
	FieldEquipmentDescription = "description"
	FieldEquipmentImageURL    = "image_url"
	FieldEquipmentSize        = "size"
	FieldEquipmentLocation    = "location"
	FieldEquipmentTags        = "tags"
	FieldEquipmentIsActive    = "is_active"
)

// DefaultCondition is applied when an intake payload omits condition.
// Condition is free-form text ("new", "good", "needs service", ...); it is not an enum.
const DefaultCondition = "good"

// Equipment is a lendable item in the catalog.
//
// Only active items are visible through catalog search. Inactive items stay stored.
type Equipment struct {
	ID EquipmentID

	Title       string
	Category    string
	Condition   string
	Description *string
	ImageURL    *string
	Size        *string
	Location    string
	Tags        []string
	IsActive    bool

	CreatedAt time.Time
}

// ValidateEquipment checks a proposed equipment payload and fills defaults
// for condition, tags and is_active.
func ValidateEquipment(p Payload) (Equipment, error) {
	r := newFieldReader("equipment", p)
	e := Equipment{
		Title:       r.requiredString(FieldEquipmentTitle),
		Category:    r.requiredString(FieldEquipmentCategory),
		Condition:   r.stringOr(FieldEquipmentCondition, DefaultCondition),
		Description: r.optionalString(FieldEquipmentDescription),
		ImageURL:    r.optionalString(FieldEquipmentImageURL),
		Size:        r.optionalString(FieldEquipmentSize),
		Location:    r.requiredString(FieldEquipmentLocation),
		Tags:        r.stringList(FieldEquipmentTags),
		IsActive:    r.boolOr(FieldEquipmentIsActive, true),
	}
	if err := r.err(); err != nil {
		return Equipment{}, err
	}
	return e, nil
}
