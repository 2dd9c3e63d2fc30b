package pattern

import (
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// patternRow is the persisted shape of a pattern.
type patternRow struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

func patternsToRows(patterns []dompat.Pattern) []patternRow {
	rows := make([]patternRow, len(patterns))
	for i, p := range patterns {
		rows[i] = patternRow{ID: p.ID(), Regex: p.Regex()}
	}
	return rows
}

// patternsFromJSON hydrates patterns from a decoded JSON value without trusting its shape.
// A non-array yields an empty collection; entries without a non-empty string id or a
// string regex are dropped, as are repeated ids (first wins). The regex text is not
// validated here: the matching engine skips patterns that no longer parse.
func patternsFromJSON(v any) ([]dompat.Pattern, int) {
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return []dompat.Pattern{}, 0
		}
		return []dompat.Pattern{}, 1
	}

	patterns := make([]dompat.Pattern, 0, len(items))
	seen := make(map[string]bool, len(items))
	dropped := 0
	for _, item := range items {
		p, ok := PatternFromJSON(item)
		if !ok || seen[p.ID()] {
			dropped++
			continue
		}
		seen[p.ID()] = true
		patterns = append(patterns, p)
	}
	return patterns, dropped
}

// PatternFromJSON hydrates one {"id", "regex"} object.
func PatternFromJSON(v any) (dompat.Pattern, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return dompat.Pattern{}, false
	}
	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return dompat.Pattern{}, false
	}
	regex, ok := obj["regex"].(string)
	if !ok {
		return dompat.Pattern{}, false
	}
	return dompat.Reconstruct(id, regex), true
}
