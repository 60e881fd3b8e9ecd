package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
//
// Query and document embeddings are asymmetric: the provider prepends a
// different instruction per role, so a query vector and a document vector
// computed from the same surface string are not interchangeable. Catalog
// entries must be embedded through EmbedDocuments and search queries through
// EmbedQuery, or every similarity score silently degrades.
type Embedder interface {
	// EmbedQuery vectorizes a single search query.
	// Returns ErrInvalidInput for empty/whitespace text and ErrEncodingFailed
	// when the provider returns a vector of unexpected length.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments vectorizes catalog texts in one batch, preserving order.
	// All-or-nothing: any empty element fails the whole batch with
	// ErrInvalidInput so batch and per-item order stay aligned.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the fixed output width D, so callers can validate
	// persisted vectors without invoking the model.
	Dimension() int

	// Model returns the embedding model identifier for introspection.
	Model() string
}

// Generator is the external text generation contract used by the summarizer.
type Generator interface {
	// Generate issues one completion call and returns the generated text.
	Generate(ctx context.Context, systemPrompt, userQuery, contextBlock string) (string, error)

	// Model returns the generation model identifier for introspection.
	Model() string
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
