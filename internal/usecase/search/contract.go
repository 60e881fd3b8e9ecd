package search

import (
	"context"

	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
)

// Catalog defines the storage contract for ranked and fallback retrieval.
type Catalog interface {
	FindNearest(
		ctx context.Context, tenantID string,
		vector []float32, k int, city, district string,
	) ([]result.Result, error)

	FindAll(
		ctx context.Context, tenantID string,
		city, district string, offset, limit int,
	) ([]hotel.Hotel, int, error)
}

// Embedder vectorizes search queries.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Summarizer produces a natural-language summary of ranked results.
// The ok return is false when generation failed or produced nothing;
// a failed summary never fails the search.
type Summarizer interface {
	Summarize(ctx context.Context, query string, results []result.Result) (summary string, ok bool)
}
