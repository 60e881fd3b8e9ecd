package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/search/request"
	"github.com/haremir/mergenX/internal/domain/search/result"
	"github.com/haremir/mergenX/internal/logger"
	"github.com/haremir/mergenX/internal/metrics"
)

// Service orchestrates the hybrid search pipeline: query embedding,
// tenant-scoped ranking, and best-effort summarization.
type Service struct {
	catalog   Catalog
	embed     Embedder
	summarize Summarizer
}

// New creates a search service.
func New(catalog Catalog, embed Embedder, summarize Summarizer) *Service {
	return &Service{catalog: catalog, embed: embed, summarize: summarize}
}

// Response is the assembled outcome of one hybrid search.
type Response struct {
	Query      string
	Results    []result.Result
	Summary    string
	HasSummary bool
	// Degraded is true when the whole result set came from the
	// insertion-order fallback (no embedded entries in scope).
	Degraded bool
}

// Search runs the full pipeline for one request. The tenant scope comes from
// the authentication gate, never from the request payload.
func (s *Service) Search(ctx context.Context, tenantID string, req *request.Request) (*Response, error) {
	results, degraded, err := s.Rank(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Query:    req.Query(),
		Results:  results,
		Degraded: degraded,
	}

	if req.WithSummary() && len(results) > 0 {
		if summary, ok := s.summarize.Summarize(ctx, req.Query(), results); ok {
			resp.Summary = summary
			resp.HasSummary = true
		} else {
			logger.FromContext(ctx).Warn("summary unavailable, returning results without it")
		}
	}

	return resp, nil
}

// Rank embeds the query and retrieves the top matches for the tenant scope.
// When the scope holds no embedded entries it falls back to up to limit
// entries in insertion order, each with score 0 and marked degraded.
func (s *Service) Rank(
	ctx context.Context, tenantID string, req *request.Request,
) ([]result.Result, bool, error) {
	if !domain.ValidTenantID(tenantID) {
		return nil, false, fmt.Errorf("tenant %q: %w", tenantID, domain.ErrInvalidScope)
	}

	vector, err := s.embed.EmbedQuery(ctx, req.Query())
	if err != nil {
		return nil, false, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.catalog.FindNearest(ctx, tenantID, vector, req.Limit(), req.City(), req.District())
	if err != nil {
		return nil, false, fmt.Errorf("rank: %w", err)
	}

	if len(results) == 0 {
		fallback, err := s.fallback(ctx, tenantID, req)
		if err != nil {
			return nil, false, err
		}
		return fallback, true, nil
	}

	// Deterministic order: score descending, insertion sequence breaks ties.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		hi, hj := results[i].Hotel(), results[j].Hotel()
		return hi.Seq() < hj.Seq()
	})

	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}
	return results, false, nil
}

// fallback serves scopes without a single embedded entry: insertion order,
// zero scores, degraded flag set.
func (s *Service) fallback(
	ctx context.Context, tenantID string, req *request.Request,
) ([]result.Result, error) {
	hotels, _, err := s.catalog.FindAll(ctx, tenantID, req.City(), req.District(), 0, req.Limit())
	if err != nil {
		return nil, fmt.Errorf("fallback list: %w", err)
	}

	metrics.SearchFallbackTotal.WithLabelValues(tenantID).Inc()
	logger.FromContext(ctx).Info("no embedded entries in scope, serving insertion-order fallback")

	results := make([]result.Result, 0, len(hotels))
	for _, h := range hotels {
		results = append(results, result.NewDegraded(h))
	}
	return results, nil
}
