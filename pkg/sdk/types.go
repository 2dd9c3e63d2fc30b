package regexboard

import (
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
)

// Mode selects what View returns.
type Mode string

// Modes.
const (
	ModeEdit     Mode = Mode(mode.Edit)
	ModeApproval Mode = Mode(mode.Approval)
)

// Pattern is a registered regular expression in /pattern/flags form.
type Pattern struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

// Match is one distinct substring found by a pattern.
type Match struct {
	Pattern  Pattern `json:"pattern"`
	Text     string  `json:"matched_text"`
	Approved bool    `json:"approved"`
}

// Document is the stored text with its current matches.
type Document struct {
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
}

// State is returned by every pattern change: the full collection and the
// recomputed document.
type State struct {
	Patterns []Pattern `json:"patterns"`
	Document Document  `json:"document"`
}

// Counts is the review progress of a pattern.
type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

// PatternSummary pairs a pattern with its counts.
type PatternSummary struct {
	Pattern Pattern `json:"pattern"`
	Counts  Counts  `json:"counts"`
}

// View is the sidebar read model. Selected is nil unless the mode is
// approval and the requested pattern exists.
type View struct {
	Mode     Mode             `json:"mode"`
	Patterns []PatternSummary `json:"patterns"`
	Selected *Pattern         `json:"selected,omitempty"`
	Pending  []Match          `json:"pending"`
	Approved []Match          `json:"approved"`
}

func patternFromDomain(p dompat.Pattern) Pattern {
	return Pattern{ID: p.ID(), Regex: p.Regex()}
}

func patternsFromDomain(ps []dompat.Pattern) []Pattern {
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		out[i] = patternFromDomain(p)
	}
	return out
}

func matchesFromDomain(ms []match.Match) []Match {
	out := make([]Match, len(ms))
	for i, m := range ms {
		out[i] = Match{Pattern: patternFromDomain(m.Pattern), Text: m.Text, Approved: m.Approved}
	}
	return out
}

func documentFromDomain(d domdoc.Document) Document {
	return Document{Text: d.Text(), Matches: matchesFromDomain(d.Matches())}
}

func stateFromDomain(st dashboarduc.State) State {
	return State{Patterns: patternsFromDomain(st.Patterns), Document: documentFromDomain(st.Document)}
}

func viewFromDomain(v dashboarduc.View) View {
	summaries := make([]PatternSummary, len(v.Patterns))
	for i, s := range v.Patterns {
		summaries[i] = PatternSummary{
			Pattern: patternFromDomain(s.Pattern),
			Counts:  Counts{Pending: s.Counts.Pending, Approved: s.Counts.Approved},
		}
	}
	out := View{
		Mode:     Mode(v.Mode),
		Patterns: summaries,
		Pending:  matchesFromDomain(v.Pending),
		Approved: matchesFromDomain(v.Approved),
	}
	if v.Selected != nil {
		p := patternFromDomain(*v.Selected)
		out.Selected = &p
	}
	return out
}
