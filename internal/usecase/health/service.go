package health

import "context"

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
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks across the search stack.
type Service struct {
	index     IndexPinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when the provider check
// is disabled.
func New(index IndexPinger, embedding EmbeddingChecker) *Service {
	return &Service{index: index, embedding: embedding}
}

// Check pings the search index and, when configured, the embedding
// provider. Any failing component degrades the overall status.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["index"] = CheckOK
	if err := s.index.Ping(ctx); err != nil {
		checks["index"] = CheckError
	}

	if s.embedding != nil {
		checks["embedding"] = CheckOK
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
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
