package search

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/request"
	"github.com/haremir/mergenX/internal/domain/search/result"
)

// mockCatalog implements the Catalog contract for tests.
type mockCatalog struct {
	findNearestFn func(ctx context.Context, tenantID string, vector []float32, k int, city, district string) ([]result.Result, error)
	findAllFn     func(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error)
}

func (m *mockCatalog) FindNearest(
	ctx context.Context, tenantID string, vector []float32, k int, city, district string,
) ([]result.Result, error) {
	if m.findNearestFn != nil {
		return m.findNearestFn(ctx, tenantID, vector, k, city, district)
	}
	return nil, nil
}

func (m *mockCatalog) FindAll(
	ctx context.Context, tenantID, city, district string, offset, limit int,
) ([]hotel.Hotel, int, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, tenantID, city, district, offset, limit)
	}
	return nil, 0, nil
}

// mockEmbedder implements the Embedder contract for tests.
type mockEmbedder struct {
	embedQueryFn func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if m.embedQueryFn != nil {
		return m.embedQueryFn(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3, 0.4}, nil
}

// mockSummarizer implements the Summarizer contract for tests.
type mockSummarizer struct {
	summarizeFn func(ctx context.Context, query string, results []result.Result) (string, bool)
}

func (m *mockSummarizer) Summarize(ctx context.Context, query string, results []result.Result) (string, bool) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, query, results)
	}
	return "", false
}

func newTestService(t *testing.T) (*Service, *mockCatalog, *mockEmbedder, *mockSummarizer) {
	t.Helper()
	mc := &mockCatalog{}
	me := &mockEmbedder{}
	ms := &mockSummarizer{}
	return New(mc, me, ms), mc, me, ms
}

func mustRequest(t *testing.T, query string, limit int, city, district string, withSummary bool) *request.Request {
	t.Helper()
	req, err := request.New(query, limit, city, district, withSummary)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func testEntry(t *testing.T, id string, seq int64) hotel.Hotel {
	t.Helper()
	return hotel.Reconstruct(
		id, "acme-travel", "Hotel "+id, "All Inclusive",
		"antalya", "kemer", "beldibi",
		4, decimal.NewFromInt(250), "EUR",
		"Comfortable stay.", []string{"pool"}, nil, seq,
	)
}
