package regexboard

import (
	"context"

	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
)

// MatchService reads and reviews matches.
type MatchService struct {
	dashboard dashboardUseCase
	obs       *observer
}

// List returns the stored matches. A non-empty patternID keeps only that
// pattern's matches.
func (s *MatchService) List(ctx context.Context, patternID string) (out []Match, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("matches.list", start, err) }()

	st, err := s.dashboard.State(ctx)
	if err != nil {
		return nil, err
	}
	ms := st.Document.Matches()
	if patternID != "" {
		ms = match.ForPattern(ms, patternID)
	}
	return matchesFromDomain(ms), nil
}

// Approve marks the match (patternID, text) approved and returns the full
// match list. A pair that does not exist is ignored.
func (s *MatchService) Approve(ctx context.Context, patternID, text string) (out []Match, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("matches.approve", start, err) }()

	ms, err := s.dashboard.Approve(ctx, match.Key{PatternID: patternID, Text: text})
	if err != nil {
		return nil, err
	}
	return matchesFromDomain(ms), nil
}

// Recompute re-derives the matches from the current patterns.
func (s *MatchService) Recompute(ctx context.Context) (st State, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("matches.recompute", start, err) }()

	res, err := s.dashboard.Recompute(ctx)
	if err != nil {
		return State{}, err
	}
	return stateFromDomain(res), nil
}

// View builds the sidebar for m. An empty m means approval mode.
func (s *MatchService) View(ctx context.Context, m Mode, patternID string) (v View, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("matches.view", start, err) }()

	parsed, err := mode.Parse(string(m))
	if err != nil {
		return View{}, err
	}
	res, err := s.dashboard.View(ctx, parsed, patternID)
	if err != nil {
		return View{}, err
	}
	return viewFromDomain(res), nil
}
