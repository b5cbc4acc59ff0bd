package docstore

import (
	"encoding/json"
	"fmt"
)

// Encode serializes doc for storage, leaving out IDField.
func Encode(doc Document) ([]byte, error) {
	body := make(Document, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		body[k] = v
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// Decode parses a stored body and sets IDField to id.
func Decode(id string, body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	if doc == nil {
		doc = Document{}
	}
	doc[IDField] = id
	return doc, nil
}

// Matches applies match to doc, treating a nil Predicate as match-all.
func (match Predicate) Matches(doc Document) bool {
	return match == nil || match(doc)
}
