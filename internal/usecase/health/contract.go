package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability and exposes
// the model the deployment embeds with.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
	Model() string
	Dimension() int
}

// GenerationChecker exposes the summary generation model.
type GenerationChecker interface {
	Model() string
}
