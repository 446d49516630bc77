package health

import (
	"context"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckPending indicates the component has not settled yet.
	CheckPending CheckResult = "pending"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	source StateReader
	cache  CachePinger
}

// New creates a Service. cache can be nil.
func New(source StateReader, cache CachePinger) *Service {
	return &Service{source: source, cache: cache}
}

// Check runs health checks against all components.
// A directory that has not finished its first load is pending, not degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	switch s.source.State().Kind() {
	case loadstate.Loaded:
		checks["source"] = CheckOK
	case loadstate.Failed:
		checks["source"] = CheckError
	default:
		checks["source"] = CheckPending
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
