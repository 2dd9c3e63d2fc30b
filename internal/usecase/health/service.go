package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// StoreCheck is the name of the key-value store check.
const StoreCheck = "store"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. The store is required; extra
// components only degrade the status.
type Service struct {
	store   Pinger
	extra   map[string]Pinger
	timeout time.Duration
}

// New creates a Service for the given store.
func New(store Pinger) *Service {
	return &Service{store: store, extra: map[string]Pinger{}, timeout: 2 * time.Second}
}

// WithCheck registers an optional component under name.
func (s *Service) WithCheck(name string, p Pinger) *Service {
	s.extra[name] = p
	return s
}

// Check runs all checks, each bounded by the service timeout.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{StoreCheck: s.ping(ctx, s.store)}
	status := Healthy
	for name, p := range s.extra {
		checks[name] = s.ping(ctx, p)
		if checks[name] == CheckError {
			status = Degraded
		}
	}
	if checks[StoreCheck] == CheckError {
		status = Unhealthy
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) ping(ctx context.Context, p Pinger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
