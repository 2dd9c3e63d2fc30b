// Package app wires repositories and use cases over a db.Store.
package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/db"
	"github.com/kailas-cloud/regexboard/internal/lorem"
	"github.com/kailas-cloud/regexboard/internal/metrics"
	docrepo "github.com/kailas-cloud/regexboard/internal/repository/document"
	patrepo "github.com/kailas-cloud/regexboard/internal/repository/pattern"
	"github.com/kailas-cloud/regexboard/internal/usecase/approval"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
	docuc "github.com/kailas-cloud/regexboard/internal/usecase/document"
	healthuc "github.com/kailas-cloud/regexboard/internal/usecase/health"
	"github.com/kailas-cloud/regexboard/internal/usecase/matching"
	patternuc "github.com/kailas-cloud/regexboard/internal/usecase/pattern"
)

// Settings tunes the wiring. Zero values fall back to package defaults.
type Settings struct {
	KeyPrefix       string
	FillerSentences int
	// MatchTimeout bounds each pattern evaluation. Zero disables the limit.
	MatchTimeout time.Duration
	// Instrumented records Prometheus matching metrics on the default registry.
	Instrumented bool
	// Filler overrides the lorem generator.
	Filler docuc.Filler
}

// App holds the wired services. It does not own the store.
type App struct {
	Patterns  *patternuc.Service
	Documents *docuc.Service
	Approval  *approval.Service
	Dashboard *dashboarduc.Service
	Health    *healthuc.Service
}

// New builds the service graph over store.
func New(store db.Store, s Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	filler := s.Filler
	if filler == nil {
		filler = lorem.New(0)
	}

	patterns := patternuc.New(patrepo.New(store, s.KeyPrefix))
	docs := docuc.New(docrepo.New(store, s.KeyPrefix), filler).WithSentences(s.FillerSentences)
	approver := approval.New(docs)

	base := matching.New(s.MatchTimeout, logger)
	var engine dashboarduc.Recomputer = base
	if s.Instrumented {
		metrics.RegisterMatchingMetrics()
		engine = matching.NewInstrumented(base, logger)
	}

	return &App{
		Patterns:  patterns,
		Documents: docs,
		Approval:  approver,
		Dashboard: dashboarduc.New(patterns, docs, engine, approver),
		Health:    healthuc.New(store),
	}
}
