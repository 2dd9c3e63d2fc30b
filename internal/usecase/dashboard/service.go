package dashboard

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/regexboard/internal/domain"
	domdoc "github.com/kailas-cloud/regexboard/internal/domain/document"
	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// State is the full pattern collection and the document with its matches.
type State struct {
	Patterns []dompat.Pattern
	Document domdoc.Document
}

// Service wires the registry, the engine, the store and the approval flow:
// every pattern change is followed by a recomputation against the stored text.
type Service struct {
	patterns Patterns
	docs     Documents
	engine   Recomputer
	approver Approver
}

// New creates a dashboard service.
func New(patterns Patterns, docs Documents, engine Recomputer, approver Approver) *Service {
	return &Service{patterns: patterns, docs: docs, engine: engine, approver: approver}
}

// State returns the current patterns and document.
func (s *Service) State(ctx context.Context) (State, error) {
	patterns, err := s.patterns.List(ctx)
	if err != nil {
		return State{}, fmt.Errorf("list patterns: %w", err)
	}
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load document: %w", err)
	}
	return State{Patterns: patterns, Document: doc}, nil
}

// CreatePattern adds a pattern and recomputes matches.
func (s *Service) CreatePattern(ctx context.Context, regex string) (State, error) {
	patterns, err := s.patterns.Create(ctx, regex)
	if err != nil {
		return State{}, fmt.Errorf("create pattern: %w", err)
	}
	return s.apply(ctx, patterns)
}

// UpdatePattern changes a pattern's regex and recomputes matches.
func (s *Service) UpdatePattern(ctx context.Context, id, regex string) (State, error) {
	patterns, err := s.patterns.Update(ctx, id, regex)
	if err != nil {
		return State{}, fmt.Errorf("update pattern: %w", err)
	}
	return s.apply(ctx, patterns)
}

// DeletePattern removes a pattern and recomputes matches.
func (s *Service) DeletePattern(ctx context.Context, id string) (State, error) {
	patterns, err := s.patterns.Delete(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("delete pattern: %w", err)
	}
	return s.apply(ctx, patterns)
}

// Recompute rebuilds the match list from the stored patterns.
func (s *Service) Recompute(ctx context.Context) (State, error) {
	patterns, err := s.patterns.List(ctx)
	if err != nil {
		return State{}, fmt.Errorf("list patterns: %w", err)
	}
	return s.apply(ctx, patterns)
}

// Approve marks the keyed match approved. Unknown keys are ignored.
func (s *Service) Approve(ctx context.Context, key match.Key) ([]match.Match, error) {
	matches, err := s.approver.Approve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("approve match: %w", err)
	}
	return matches, nil
}

// RegenerateDocument replaces the text with fresh filler and matches the
// current patterns against it. Approvals do not survive.
func (s *Service) RegenerateDocument(ctx context.Context) (State, error) {
	patterns, err := s.patterns.List(ctx)
	if err != nil {
		return State{}, fmt.Errorf("list patterns: %w", err)
	}
	if _, err := s.docs.Regenerate(ctx); err != nil {
		return State{}, fmt.Errorf("regenerate document: %w", err)
	}
	return s.apply(ctx, patterns)
}

func (s *Service) apply(ctx context.Context, patterns []dompat.Pattern) (State, error) {
	doc, err := s.docs.Load(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load document: %w", err)
	}
	matches := s.engine.Recompute(patterns, doc.Text(), doc.Matches())
	doc, err = s.docs.ReplaceMatches(ctx, matches)
	if err != nil {
		return State{}, fmt.Errorf("replace matches: %w", err)
	}
	return State{Patterns: patterns, Document: doc}, nil
}

// PatternSummary is a pattern with its review progress.
type PatternSummary struct {
	Pattern dompat.Pattern
	Counts  match.Counts
}

// View is what the sidebar shows for a mode.
// In edit mode only Patterns is filled. In approval mode Selected is set when
// the requested pattern exists, and Pending/Approved hold its matches.
type View struct {
	Mode     mode.Mode
	Patterns []PatternSummary
	Selected *dompat.Pattern
	Pending  []match.Match
	Approved []match.Match
}

// Counts returns the pending and approved totals of the selected pattern.
func (v View) Counts() match.Counts {
	return match.Counts{Pending: len(v.Pending), Approved: len(v.Approved)}
}

// View builds the read model for m. selectedID may be empty. Building a view
// never writes.
func (s *Service) View(ctx context.Context, m mode.Mode, selectedID string) (View, error) {
	if !m.IsValid() {
		return View{}, fmt.Errorf("view %q: %w", m, domain.ErrInvalidMode)
	}
	st, err := s.State(ctx)
	if err != nil {
		return View{}, err
	}

	matches := st.Document.Matches()
	counts := match.CountByPattern(matches)
	summaries := make([]PatternSummary, len(st.Patterns))
	for i, p := range st.Patterns {
		summaries[i] = PatternSummary{Pattern: p, Counts: counts[p.ID()]}
	}

	v := View{
		Mode:     m,
		Patterns: summaries,
		Pending:  []match.Match{},
		Approved: []match.Match{},
	}
	if m != mode.Approval || selectedID == "" {
		return v, nil
	}

	i := dompat.IndexOf(st.Patterns, selectedID)
	if i < 0 {
		return v, nil
	}
	selected := st.Patterns[i]
	v.Selected = &selected
	v.Pending, v.Approved = match.Split(match.ForPattern(matches, selectedID))
	return v, nil
}
