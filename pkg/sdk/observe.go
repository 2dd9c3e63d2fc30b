package regexboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
)

// sdkMetrics holds the collectors registered for the embedded client.
type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "regexboard",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Embedded client calls by operation and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "regexboard",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Embedded client call latency in seconds.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"op"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points it at an identical collector that a
// previous client already registered on reg.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("regexboard: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("regexboard: metric registered with incompatible type %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts client calls. A nil observer is a no-op.
type observer struct {
	logger   *slog.Logger
	services *zap.Logger
	metrics  *sdkMetrics
}

func newObserver(logger *slog.Logger, services *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger, services: services}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// begin marks the start of a call and hands the service logger down to the
// use cases through ctx.
func (o *observer) begin(ctx context.Context) (context.Context, time.Time) {
	if o != nil && o.services != nil {
		ctx = logpkg.ContextWithLogger(ctx, o.services)
	}
	return ctx, time.Now()
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)

	if o.metrics != nil {
		result := "ok"
		switch {
		case errors.Is(err, ErrInvalidPattern), errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidMode):
			result = "rejected"
		case err != nil:
			result = "error"
		}
		o.metrics.calls.WithLabelValues(op, result).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("call failed", "op", op, "duration", elapsed, "error", err)
		return
	}
	o.logger.Debug("call completed", "op", op, "duration", elapsed)
}
