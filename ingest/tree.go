package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lawpath_backend/models"
)

// ErrMalformedPayload marks a JSON-encoded form field that failed to
// parse. Unlike an unrecognized file name this is fatal: a corrupt tree
// cannot be merged with uploads safely.
var ErrMalformedPayload = errors.New("malformed payload")

// DecodeSections parses the textual `sections` form value into section
// shells. The decode is strict: unknown keys are rejected at the
// boundary so everything downstream operates on fully typed nodes.
func DecodeSections(raw string) ([]models.AudioSection, error) {
	var sections []models.AudioSection
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sections); err != nil {
		return nil, fmt.Errorf("%w: invalid sections JSON: %v", ErrMalformedPayload, err)
	}
	if err := ensureSingleValue(dec); err != nil {
		return nil, fmt.Errorf("%w: invalid sections JSON: %v", ErrMalformedPayload, err)
	}
	if sections == nil {
		sections = []models.AudioSection{}
	}
	return sections, nil
}

// DecodeTags parses the textual `tags` form value.
func DecodeTags(raw string) ([]string, error) {
	var tags []string
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&tags); err != nil {
		return nil, fmt.Errorf("%w: invalid tags JSON: %v", ErrMalformedPayload, err)
	}
	if err := ensureSingleValue(dec); err != nil {
		return nil, fmt.Errorf("%w: invalid tags JSON: %v", ErrMalformedPayload, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// ensureSingleValue rejects trailing garbage after the decoded value,
// which json.Decoder would otherwise silently leave unread.
func ensureSingleValue(dec *json.Decoder) error {
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
