package pattern

import (
	"fmt"

	"github.com/google/uuid"
)

// Pattern is a named regular expression (value object).
// Identity is the ID; the regex text may change through updates.
type Pattern struct {
	id    string
	regex string
}

// New validates the regex text and creates a Pattern with a fresh ID.
func New(regex string) (Pattern, error) {
	if _, err := Parse(regex); err != nil {
		return Pattern{}, err
	}
	return Pattern{id: uuid.NewString(), regex: regex}, nil
}

// Reconstruct creates a Pattern without validation (storage hydration).
func Reconstruct(id, regex string) Pattern {
	return Pattern{id: id, regex: regex}
}

// ID returns the pattern identifier.
func (p Pattern) ID() string { return p.id }

// Regex returns the raw /pattern/flags text.
func (p Pattern) Regex() string { return p.regex }

// WithRegex validates the new text and returns a copy with the same ID.
func (p Pattern) WithRegex(regex string) (Pattern, error) {
	if _, err := Parse(regex); err != nil {
		return Pattern{}, err
	}
	return Pattern{id: p.id, regex: regex}, nil
}

// Descriptor parses the stored regex text.
func (p Pattern) Descriptor() (Descriptor, error) {
	d, err := Parse(p.regex)
	if err != nil {
		return Descriptor{}, fmt.Errorf("pattern %s: %w", p.id, err)
	}
	return d, nil
}

// IndexOf returns the position of the pattern with the given ID, or -1.
func IndexOf(patterns []Pattern, id string) int {
	for i, p := range patterns {
		if p.id == id {
			return i
		}
	}
	return -1
}
