package document

import (
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	patternrepo "github.com/kailas-cloud/regexboard/internal/repository/pattern"
)

type patternRow struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

type matchRow struct {
	Approved    bool       `json:"approved"`
	Pattern     patternRow `json:"pattern"`
	MatchedText string     `json:"matchedText"`
}

type documentRow struct {
	Text    string     `json:"text"`
	Matches []matchRow `json:"matches"`
}

func documentToRow(doc domdoc.Document) documentRow {
	matches := doc.Matches()
	rows := make([]matchRow, len(matches))
	for i, m := range matches {
		rows[i] = matchRow{
			Approved:    m.Approved,
			Pattern:     patternRow{ID: m.Pattern.ID(), Regex: m.Pattern.Regex()},
			MatchedText: m.Text,
		}
	}
	return documentRow{Text: doc.Text(), Matches: rows}
}

// documentFromJSON hydrates a document from a decoded object. A non-string text
// becomes empty, a non-array matches list becomes empty, and match entries
// without a usable pattern or a string matchedText are dropped. A non-bool
// approved flag reads as false. Returns the number of dropped entries.
func documentFromJSON(obj map[string]any) (domdoc.Document, int) {
	text, _ := obj["text"].(string)

	items, ok := obj["matches"].([]any)
	if !ok {
		dropped := 0
		if obj["matches"] != nil {
			dropped = 1
		}
		return domdoc.New(text), dropped
	}

	matches := make([]match.Match, 0, len(items))
	seen := make(map[match.Key]bool, len(items))
	dropped := 0
	for _, item := range items {
		m, ok := matchFromJSON(item)
		if !ok || seen[m.Key()] {
			dropped++
			continue
		}
		seen[m.Key()] = true
		matches = append(matches, m)
	}
	return domdoc.Reconstruct(text, matches), dropped
}

func matchFromJSON(v any) (match.Match, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return match.Match{}, false
	}
	p, ok := patternrepo.PatternFromJSON(obj["pattern"])
	if !ok {
		return match.Match{}, false
	}
	text, ok := obj["matchedText"].(string)
	if !ok {
		return match.Match{}, false
	}
	approved, _ := obj["approved"].(bool)
	return match.Match{Approved: approved, Pattern: p, Text: text}, true
}
