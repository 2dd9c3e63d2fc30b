package matching

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	"github.com/kailas-cloud/regexboard/internal/metrics"
)

// Runner produces a recomputation result with statistics.
type Runner interface {
	Run(patterns []dompat.Pattern, text string, previous []match.Match) Result
}

// InstrumentedEngine wraps a Runner with Prometheus metrics and debug logging.
// Call metrics.RegisterMatchingMetrics once before serving.
type InstrumentedEngine struct {
	inner  Runner
	logger *zap.Logger
}

// NewInstrumented wraps inner with observability.
func NewInstrumented(inner Runner, logger *zap.Logger) *InstrumentedEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedEngine{inner: inner, logger: logger}
}

// Recompute delegates to the inner runner and records the outcome.
func (e *InstrumentedEngine) Recompute(patterns []dompat.Pattern, text string, previous []match.Match) []match.Match {
	start := time.Now()
	res := e.inner.Run(patterns, text, previous)
	duration := time.Since(start)

	metrics.RecomputeTotal.Inc()
	metrics.RecomputeDuration.Observe(duration.Seconds())
	metrics.RecomputeMatches.Set(float64(len(res.Matches)))

	evaluated := len(patterns) - res.Skipped
	metrics.PatternOutcomesTotal.WithLabelValues("ok").Add(float64(evaluated - res.TimedOut))
	metrics.PatternOutcomesTotal.WithLabelValues("skipped").Add(float64(res.Skipped))
	metrics.PatternOutcomesTotal.WithLabelValues("timeout").Add(float64(res.TimedOut))

	e.logger.Debug("Matches recomputed",
		zap.Int("patterns", len(patterns)),
		zap.Int("text_len", len(text)),
		zap.Int("matches", len(res.Matches)),
		zap.Int("skipped", res.Skipped),
		zap.Int("timed_out", res.TimedOut),
		zap.Duration("duration", duration),
	)
	return res.Matches
}
