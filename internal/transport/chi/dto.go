package chi

import (
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodePatternNotFound  ErrorCode = "pattern_not_found"
	ErrorCodeInvalidMode      ErrorCode = "invalid_mode"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// PatternRequest is the body of create and update.
type PatternRequest struct {
	Regex string `json:"regex"`
}

// ApproveRequest identifies the match to approve.
type ApproveRequest struct {
	PatternID   string `json:"pattern_id"`
	MatchedText string `json:"matched_text"`
}

// Pattern is a stored pattern.
type Pattern struct {
	ID    string `json:"id"`
	Regex string `json:"regex"`
}

// Match is one reviewable match.
type Match struct {
	Approved    bool    `json:"approved"`
	Pattern     Pattern `json:"pattern"`
	MatchedText string  `json:"matched_text"`
}

// Document is the stored text with its matches.
type Document struct {
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
}

// PatternListResponse wraps the pattern collection.
type PatternListResponse struct {
	Items []Pattern `json:"items"`
}

// MatchListResponse wraps a match list.
type MatchListResponse struct {
	Items []Match `json:"items"`
}

// StateResponse is returned by every mutation of the pattern set.
type StateResponse struct {
	Patterns []Pattern `json:"patterns"`
	Document Document  `json:"document"`
}

// Counts is pending/approved review progress.
type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

// PatternSummary is a pattern with its review progress.
type PatternSummary struct {
	Pattern
	Counts Counts `json:"counts"`
}

// ViewResponse is the sidebar read model.
type ViewResponse struct {
	Mode     string           `json:"mode"`
	Patterns []PatternSummary `json:"patterns"`
	Selected *Pattern         `json:"selected,omitempty"`
	Pending  []Match          `json:"pending"`
	Approved []Match          `json:"approved"`
	Counts   Counts           `json:"counts"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func patternToDTO(p dompat.Pattern) Pattern {
	return Pattern{ID: p.ID(), Regex: p.Regex()}
}

func patternsToDTO(ps []dompat.Pattern) []Pattern {
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		out[i] = patternToDTO(p)
	}
	return out
}

func matchesToDTO(ms []match.Match) []Match {
	out := make([]Match, len(ms))
	for i, m := range ms {
		out[i] = Match{Approved: m.Approved, Pattern: patternToDTO(m.Pattern), MatchedText: m.Text}
	}
	return out
}

func documentToDTO(d domdoc.Document) Document {
	return Document{Text: d.Text(), Matches: matchesToDTO(d.Matches())}
}

func stateToDTO(st dashboarduc.State) StateResponse {
	return StateResponse{Patterns: patternsToDTO(st.Patterns), Document: documentToDTO(st.Document)}
}

func countsToDTO(c match.Counts) Counts {
	return Counts{Pending: c.Pending, Approved: c.Approved}
}

func viewToDTO(v dashboarduc.View) ViewResponse {
	summaries := make([]PatternSummary, len(v.Patterns))
	for i, s := range v.Patterns {
		summaries[i] = PatternSummary{Pattern: patternToDTO(s.Pattern), Counts: countsToDTO(s.Counts)}
	}
	resp := ViewResponse{
		Mode:     string(v.Mode),
		Patterns: summaries,
		Pending:  matchesToDTO(v.Pending),
		Approved: matchesToDTO(v.Approved),
		Counts:   countsToDTO(v.Counts()),
	}
	if v.Selected != nil {
		sel := patternToDTO(*v.Selected)
		resp.Selected = &sel
	}
	return resp
}
