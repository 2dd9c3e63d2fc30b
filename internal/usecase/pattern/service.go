package pattern

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
)

// Service manages the ordered pattern collection.
// Every mutation re-reads the stored collection, persists it whole and
// returns the complete new collection. Concurrent writers race (last write wins).
type Service struct {
	repo Repository
}

// New creates a pattern service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all patterns in insertion order.
func (s *Service) List(ctx context.Context) ([]dompat.Pattern, error) {
	patterns, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}
	return patterns, nil
}

// Get returns a single pattern by ID.
func (s *Service) Get(ctx context.Context, id string) (dompat.Pattern, error) {
	patterns, err := s.List(ctx)
	if err != nil {
		return dompat.Pattern{}, err
	}
	i := dompat.IndexOf(patterns, id)
	if i < 0 {
		return dompat.Pattern{}, fmt.Errorf("pattern %s: %w", id, domain.ErrNotFound)
	}
	return patterns[i], nil
}

// Create validates regex and appends a new pattern with a fresh ID.
func (s *Service) Create(ctx context.Context, regex string) ([]dompat.Pattern, error) {
	p, err := dompat.New(regex)
	if err != nil {
		return nil, err
	}

	patterns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	next := append(clone(patterns), p)

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save patterns: %w", err)
	}
	logpkg.FromContext(ctx).Debug("Pattern created",
		zap.String("pattern_id", p.ID()),
		zap.String("regex", p.Regex()),
	)
	return next, nil
}

// Update replaces the regex of an existing pattern, keeping its ID and position.
func (s *Service) Update(ctx context.Context, id, regex string) ([]dompat.Pattern, error) {
	if _, err := dompat.Parse(regex); err != nil {
		return nil, err
	}

	patterns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	i := dompat.IndexOf(patterns, id)
	if i < 0 {
		return nil, fmt.Errorf("pattern %s: %w", id, domain.ErrNotFound)
	}

	updated, err := patterns[i].WithRegex(regex)
	if err != nil {
		return nil, err
	}
	next := clone(patterns)
	next[i] = updated

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save patterns: %w", err)
	}
	logpkg.FromContext(ctx).Debug("Pattern updated",
		zap.String("pattern_id", id),
		zap.String("regex", regex),
	)
	return next, nil
}

// Delete removes the pattern with the given ID. An unknown ID is not an
// error; the collection is persisted either way.
func (s *Service) Delete(ctx context.Context, id string) ([]dompat.Pattern, error) {
	patterns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]dompat.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.ID() != id {
			next = append(next, p)
		}
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save patterns: %w", err)
	}
	logpkg.FromContext(ctx).Debug("Pattern deleted",
		zap.String("pattern_id", id),
		zap.Bool("existed", len(next) != len(patterns)),
	)
	return next, nil
}

func clone(patterns []dompat.Pattern) []dompat.Pattern {
	out := make([]dompat.Pattern, len(patterns), len(patterns)+1)
	copy(out, patterns)
	return out
}
