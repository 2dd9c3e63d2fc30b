package document

import "github.com/kailas-cloud/regexboard/internal/domain/match"

// Document is the single stored text and the matches derived from it (immutable value object).
// Text and matches are always persisted together.
type Document struct {
	text    string
	matches []match.Match
}

// New creates a Document with no matches.
func New(text string) Document {
	return Document{text: text, matches: []match.Match{}}
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(text string, matches []match.Match) Document {
	if matches == nil {
		matches = []match.Match{}
	}
	return Document{text: text, matches: matches}
}

// Text returns the document text.
func (d Document) Text() string { return d.text }

// Matches returns a copy of the derived matches.
func (d Document) Matches() []match.Match {
	out := match.Clone(d.matches)
	if out == nil {
		return []match.Match{}
	}
	return out
}

// WithMatches returns a copy with the match list replaced wholesale.
func (d Document) WithMatches(matches []match.Match) Document {
	return Reconstruct(d.text, match.Clone(matches))
}

// Approve returns a copy with the keyed match approved.
// ok is false when no match has that key; the returned Document is then d.
func (d Document) Approve(key match.Key) (Document, bool) {
	for i, m := range d.matches {
		if m.Key() != key {
			continue
		}
		updated := match.Clone(d.matches)
		updated[i].Approved = true
		return Document{text: d.text, matches: updated}, true
	}
	return d, false
}
