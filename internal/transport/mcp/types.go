package mcp

import (
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
)

// Input/Output types for each tool

type EmptyInput struct{}

type CreatePatternInput struct {
	Regex string `json:"regex" jsonschema:"the pattern written as /pattern/flags, e.g. /hello/i"`
}

type UpdatePatternInput struct {
	ID    string `json:"id" jsonschema:"the pattern id"`
	Regex string `json:"regex" jsonschema:"the new pattern written as /pattern/flags"`
}

type PatternIDInput struct {
	ID string `json:"id" jsonschema:"the pattern id"`
}

type ApproveInput struct {
	PatternID   string `json:"patternId" jsonschema:"the id of the pattern that produced the match"`
	MatchedText string `json:"matchedText" jsonschema:"the matched text to approve"`
}

type PatternOutput struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

type MatchOutput struct {
	Approved    bool          `json:"approved"`
	Pattern     PatternOutput `json:"pattern"`
	MatchedText string        `json:"matchedText"`
}

type PatternsOutput struct {
	Patterns []PatternOutput `json:"patterns"`
}

type MatchesOutput struct {
	Matches []MatchOutput `json:"matches"`
}

type DocumentOutput struct {
	Text    string        `json:"text"`
	Matches []MatchOutput `json:"matches"`
}

type StateOutput struct {
	Patterns []PatternOutput `json:"patterns"`
	Document DocumentOutput  `json:"document"`
}

type CountsOutput struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

type ReviewOutput struct {
	Pattern  PatternOutput `json:"pattern"`
	Pending  []MatchOutput `json:"pending"`
	Approved []MatchOutput `json:"approved"`
	Counts   CountsOutput  `json:"counts"`
}

func patternOut(p dompat.Pattern) PatternOutput {
	return PatternOutput{ID: p.ID(), Regex: p.Regex()}
}

func patternsOut(ps []dompat.Pattern) []PatternOutput {
	out := make([]PatternOutput, len(ps))
	for i, p := range ps {
		out[i] = patternOut(p)
	}
	return out
}

func matchesOut(ms []match.Match) []MatchOutput {
	out := make([]MatchOutput, len(ms))
	for i, m := range ms {
		out[i] = MatchOutput{Approved: m.Approved, Pattern: patternOut(m.Pattern), MatchedText: m.Text}
	}
	return out
}

func documentOut(d domdoc.Document) DocumentOutput {
	return DocumentOutput{Text: d.Text(), Matches: matchesOut(d.Matches())}
}

func stateOut(st dashboarduc.State) StateOutput {
	return StateOutput{Patterns: patternsOut(st.Patterns), Document: documentOut(st.Document)}
}
