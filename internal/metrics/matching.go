package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Match recomputation Prometheus metrics.
var (
	RecomputeTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "regexboard",
			Name:      "recompute_total",
			Help:      "Total number of match recomputations",
		},
	)

	RecomputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "regexboard",
			Name:      "recompute_duration_seconds",
			Help:      "Match recomputation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecomputeMatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "regexboard",
			Name:      "matches",
			Help:      "Number of match records produced by the last recomputation",
		},
	)

	PatternOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "regexboard",
			Name:      "pattern_evaluations_total",
			Help:      "Pattern evaluations during recomputation by outcome",
		},
		[]string{"outcome"}, // "ok" / "skipped" / "timeout"
	)
)

var registerMatchingOnce sync.Once

// RegisterMatchingMetrics registers the recomputation metrics with the default registry.
func RegisterMatchingMetrics() {
	registerMatchingOnce.Do(func() {
		prometheus.MustRegister(RecomputeTotal, RecomputeDuration, RecomputeMatches, PatternOutcomesTotal)
	})
}
