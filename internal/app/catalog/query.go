package catalog

import (
	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

// Query holds the optional catalog search parameters. An empty string means
// the parameter was not supplied.
type Query struct {
	// Q is a case-insensitive substring matched against title, category and tags.
	Q string
	// Category is a case-insensitive exact match.
	Category string
	// Location is a case-insensitive exact match.
	Location string
}

// Predicate returns the filter evaluated by the store. Only active items
// match; every supplied parameter must also hold.
func (q Query) Predicate() docstore.Predicate {
	return func(d docstore.Document) bool {
		if active, ok := d[domain.FieldEquipmentIsActive].(bool); !ok || !active {
			return false
		}
		if q.Category != "" && !domain.EqualFold(stringField(d, domain.FieldEquipmentCategory), q.Category) {
			return false
		}
		if q.Location != "" && !domain.EqualFold(stringField(d, domain.FieldEquipmentLocation), q.Location) {
			return false
		}
		if q.Q != "" && !matchesText(d, q.Q) {
			return false
		}
		return true
	}
}

func matchesText(d docstore.Document, q string) bool {
	if domain.ContainsFold(stringField(d, domain.FieldEquipmentTitle), q) {
		return true
	}
	if domain.ContainsFold(stringField(d, domain.FieldEquipmentCategory), q) {
		return true
	}
	switch tags := d[domain.FieldEquipmentTags].(type) {
	case []any:
		for _, t := range tags {
			if s, ok := t.(string); ok && domain.ContainsFold(s, q) {
				return true
			}
		}
	case []string:
		for _, s := range tags {
			if domain.ContainsFold(s, q) {
				return true
			}
		}
	}
	return false
}

// stringField returns d[field], or "" when it is missing or not a string.
func stringField(d docstore.Document, field string) string {
	s, _ := d[field].(string)
	return s
}
