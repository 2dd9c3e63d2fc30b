package regexboard

import (
	"context"
)

// PatternService manages the pattern collection. Every change recomputes
// the matches and returns the full resulting State.
type PatternService struct {
	dashboard dashboardUseCase
	patterns  patternUseCase
	obs       *observer
}

// List returns the patterns in insertion order.
func (s *PatternService) List(ctx context.Context) (out []Pattern, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("patterns.list", start, err) }()

	ps, err := s.patterns.List(ctx)
	if err != nil {
		return nil, err
	}
	return patternsFromDomain(ps), nil
}

// Get returns one pattern or ErrNotFound.
func (s *PatternService) Get(ctx context.Context, id string) (out Pattern, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("patterns.get", start, err) }()

	p, err := s.patterns.Get(ctx, id)
	if err != nil {
		return Pattern{}, err
	}
	return patternFromDomain(p), nil
}

// Create appends a pattern. Invalid input fails with ErrInvalidPattern and
// changes nothing.
func (s *PatternService) Create(ctx context.Context, regex string) (st State, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("patterns.create", start, err) }()

	res, err := s.dashboard.CreatePattern(ctx, regex)
	if err != nil {
		return State{}, err
	}
	return stateFromDomain(res), nil
}

// Update replaces the regex text of a pattern, keeping its ID and position.
func (s *PatternService) Update(ctx context.Context, id, regex string) (st State, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("patterns.update", start, err) }()

	res, err := s.dashboard.UpdatePattern(ctx, id, regex)
	if err != nil {
		return State{}, err
	}
	return stateFromDomain(res), nil
}

// Delete removes a pattern and its matches. Unknown IDs are not an error.
func (s *PatternService) Delete(ctx context.Context, id string) (st State, err error) {
	ctx, start := s.obs.begin(ctx)
	defer func() { s.obs.observe("patterns.delete", start, err) }()

	res, err := s.dashboard.DeletePattern(ctx, id)
	if err != nil {
		return State{}, err
	}
	return stateFromDomain(res), nil
}
