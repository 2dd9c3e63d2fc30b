package match

import "github.com/kailas-cloud/regexboard/internal/domain/pattern"

// Key identifies a match: at most one record exists per pattern ID and text.
type Key struct {
	PatternID string
	Text      string
}

// Match is one deduplicated occurrence of a pattern's matched text.
// It holds the pattern it was derived from, not a private projection of it.
type Match struct {
	Approved bool
	Pattern  pattern.Pattern
	Text     string
}

// New creates an unapproved match.
func New(p pattern.Pattern, text string) Match {
	return Match{Pattern: p, Text: text}
}

// Key returns the identity of the match.
func (m Match) Key() Key {
	return Key{PatternID: m.Pattern.ID(), Text: m.Text}
}

// Counts holds review progress for one pattern.
type Counts struct {
	Pending  int
	Approved int
}

// Total returns Pending + Approved.
func (c Counts) Total() int { return c.Pending + c.Approved }

// ForPattern returns the matches derived from the given pattern, in order.
func ForPattern(matches []Match, patternID string) []Match {
	out := make([]Match, 0)
	for _, m := range matches {
		if m.Pattern.ID() == patternID {
			out = append(out, m)
		}
	}
	return out
}

// Split partitions matches into pending and approved, preserving order.
func Split(matches []Match) (pending, approved []Match) {
	pending = make([]Match, 0)
	approved = make([]Match, 0)
	for _, m := range matches {
		if m.Approved {
			approved = append(approved, m)
		} else {
			pending = append(pending, m)
		}
	}
	return pending, approved
}

// CountByPattern tallies pending and approved matches per pattern ID.
func CountByPattern(matches []Match) map[string]Counts {
	counts := make(map[string]Counts)
	for _, m := range matches {
		c := counts[m.Pattern.ID()]
		if m.Approved {
			c.Approved++
		} else {
			c.Pending++
		}
		counts[m.Pattern.ID()] = c
	}
	return counts
}

// Clone returns a copy of the slice.
func Clone(matches []Match) []Match {
	if matches == nil {
		return nil
	}
	out := make([]Match, len(matches))
	copy(out, matches)
	return out
}
