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

// Report aggregates health check results and deployment introspection.
type Report struct {
	Status Status
	Checks map[string]CheckResult

	EmbeddingModel     string
	EmbeddingDimension int
	GenerationModel    string
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	gen       GenerationChecker
}

// New creates a Service. embedding and gen can be nil.
func New(db DBPinger, embedding EmbeddingChecker, gen GenerationChecker) *Service {
	return &Service{db: db, embedding: embedding, gen: gen}
}

// Check runs health checks against all components. A failing summary
// provider degrades the report but search still works, matching the
// best-effort summary contract.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	report := Report{Checks: checks}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
		report.EmbeddingModel = s.embedding.Model()
		report.EmbeddingDimension = s.embedding.Dimension()
	}

	if s.gen != nil {
		report.GenerationModel = s.gen.Model()
	}

	report.Status = Healthy
	for _, v := range checks {
		if v == CheckError {
			report.Status = Degraded
			break
		}
	}

	return report
}
