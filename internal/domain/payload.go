package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// Payload is a proposed entity: field name to value, as decoded from a JSON object.
// Values are expected in encoding/json shapes (string, bool, float64, []any, nil);
// []string is also accepted for list fields.
type Payload map[string]any

// fieldReader extracts typed fields from a Payload, accumulating every
// violation instead of stopping at the first one.
type fieldReader struct {
	p    Payload
	verr *ValidationError
}

func newFieldReader(entity string, p Payload) *fieldReader {
	return &fieldReader{p: p, verr: &ValidationError{Entity: entity}}
}

func (r *fieldReader) fail(field, msg string) {
	r.verr.Fields = append(r.verr.Fields, FieldError{Field: field, Message: msg})
}

func (r *fieldReader) err() error {
	if len(r.verr.Fields) == 0 {
		return nil
	}
	return r.verr
}

// lookup returns the raw value and whether it is present and non-null.
func (r *fieldReader) lookup(field string) (any, bool) {
	v, ok := r.p[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) requiredString(field string) string {
	v, ok := r.lookup(field)
	if !ok {
		r.fail(field, "field required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, "must be a string")
		return ""
	}
	return s
}

// nonBlankString is requiredString that also rejects whitespace-only values.
// The value is returned as given.
func (r *fieldReader) nonBlankString(field string) string {
	before := len(r.verr.Fields)
	s := r.requiredString(field)
	if len(r.verr.Fields) == before && strings.TrimSpace(s) == "" {
		r.fail(field, "must be non-empty")
	}
	return s
}

func (r *fieldReader) optionalString(field string) *string {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, "must be a string")
		return nil
	}
	return &s
}

func (r *fieldReader) stringOr(field, def string) string {
	if s := r.optionalString(field); s != nil {
		return *s
	}
	return def
}

func (r *fieldReader) boolOr(field string, def bool) bool {
	v, ok := r.lookup(field)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, "must be a boolean")
		return def
	}
	return b
}

// stringList defaults to an empty, non-nil slice.
func (r *fieldReader) stringList(field string) []string {
	v, ok := r.lookup(field)
	if !ok {
		return []string{}
	}
	switch vs := v.(type) {
	case []string:
		return append([]string{}, vs...)
	case []any:
		out := make([]string, 0, len(vs))
		valid := true
		for i, item := range vs {
			s, ok := item.(string)
			if !ok {
				r.fail(fmt.Sprintf("%s[%d]", field, i), "must be a string")
				valid = false
				continue
			}
			out = append(out, s)
		}
		if !valid {
			return []string{}
		}
		return out
	default:
		r.fail(field, "must be a list of strings")
		return []string{}
	}
}

func (r *fieldReader) requiredDate(field string) (time.Time, bool) {
	v, ok := r.lookup(field)
	if !ok {
		r.fail(field, "field required")
		return time.Time{}, false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		r.fail(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return d, true
}
