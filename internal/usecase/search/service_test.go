package search

import (
	"context"
	"errors"
	"testing"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
)

func TestSearch_HappyPath(t *testing.T) {
	svc, mc, me, ms := newTestService(t)
	ctx := context.Background()

	me.embedQueryFn = func(_ context.Context, text string) ([]float32, error) {
		if text != "beachfront resort with spa" {
			t.Errorf("unexpected query text %q", text)
		}
		return []float32{0.5, 0.5, 0.5, 0.5}, nil
	}
	mc.findNearestFn = func(_ context.Context, tenantID string, _ []float32, k int, city, district string) ([]result.Result, error) {
		if tenantID != "acme-travel" {
			t.Errorf("unexpected tenant %s", tenantID)
		}
		if k != 5 {
			t.Errorf("unexpected k %d", k)
		}
		if city != "" || district != "" {
			t.Errorf("unexpected filters %q/%q", city, district)
		}
		return []result.Result{
			result.New(testEntry(t, "h-1", 1), 0.92),
			result.New(testEntry(t, "h-2", 2), 0.71),
		}, nil
	}
	ms.summarizeFn = func(_ context.Context, _ string, results []result.Result) (string, bool) {
		if len(results) != 2 {
			t.Errorf("summarizer must see ranked results, got %d", len(results))
		}
		return "Two strong matches.", true
	}

	req := mustRequest(t, "beachfront resort with spa", 0, "", "", true)
	resp, err := svc.Search(ctx, "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Score() != 0.92 {
		t.Fatalf("expected best match first, got %f", resp.Results[0].Score())
	}
	if resp.Degraded {
		t.Fatal("must not be degraded with ranked results")
	}
	if !resp.HasSummary || resp.Summary != "Two strong matches." {
		t.Fatalf("expected summary, got %q (has=%v)", resp.Summary, resp.HasSummary)
	}
}

func TestSearch_SummaryFailureDoesNotFailSearch(t *testing.T) {
	svc, mc, _, ms := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		return []result.Result{result.New(testEntry(t, "h-1", 1), 0.8)}, nil
	}
	ms.summarizeFn = func(_ context.Context, _ string, _ []result.Result) (string, bool) {
		return "", false
	}

	req := mustRequest(t, "quiet hotel", 0, "", "", true)
	resp, err := svc.Search(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.HasSummary || resp.Summary != "" {
		t.Fatal("failed summary must leave the response without one")
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results must survive summary failure, got %d", len(resp.Results))
	}
}

func TestSearch_SummaryNotRequested(t *testing.T) {
	svc, mc, _, ms := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		return []result.Result{result.New(testEntry(t, "h-1", 1), 0.8)}, nil
	}
	called := false
	ms.summarizeFn = func(_ context.Context, _ string, _ []result.Result) (string, bool) {
		called = true
		return "nope", true
	}

	req := mustRequest(t, "quiet hotel", 0, "", "", false)
	if _, err := svc.Search(context.Background(), "acme-travel", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("summarizer must not run when not requested")
	}
}

func TestRank_InvalidTenantScope(t *testing.T) {
	svc, _, me, _ := newTestService(t)

	me.embedQueryFn = func(_ context.Context, _ string) ([]float32, error) {
		t.Fatal("embedder must not run for an invalid scope")
		return nil, nil
	}

	req := mustRequest(t, "any", 0, "", "", false)
	_, _, err := svc.Rank(context.Background(), "Bad Tenant!", req)
	if !errors.Is(err, domain.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
}

func TestRank_EmbedderErrorPropagates(t *testing.T) {
	svc, mc, me, _ := newTestService(t)

	provErr := errors.New("provider down")
	me.embedQueryFn = func(_ context.Context, _ string) ([]float32, error) {
		return nil, provErr
	}
	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		t.Fatal("catalog must not be queried when embedding fails")
		return nil, nil
	}

	req := mustRequest(t, "any", 0, "", "", false)
	_, _, err := svc.Rank(context.Background(), "acme-travel", req)
	if !errors.Is(err, provErr) {
		t.Fatalf("expected wrapped embedder error, got %v", err)
	}
}

func TestRank_StableOrderOnScoreTies(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		return []result.Result{
			result.New(testEntry(t, "h-late", 9), 0.75),
			result.New(testEntry(t, "h-early", 2), 0.75),
			result.New(testEntry(t, "h-best", 5), 0.90),
		}, nil
	}

	req := mustRequest(t, "any", 0, "", "", false)
	results, degraded, err := svc.Rank(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if degraded {
		t.Fatal("unexpected degraded flag")
	}

	ids := make([]string, 0, len(results))
	for i := range results {
		h := results[i].Hotel()
		ids = append(ids, h.ID())
	}
	want := []string{"h-best", "h-early", "h-late"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", ids, want)
		}
	}
}

func TestRank_TruncatesToLimit(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		out := make([]result.Result, 0, 4)
		for i := 0; i < 4; i++ {
			out = append(out, result.New(testEntry(t, "h", int64(i+1)), 0.9-float64(i)*0.1))
		}
		return out, nil
	}

	req := mustRequest(t, "any", 2, "", "", false)
	results, _, err := svc.Rank(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after truncation, got %d", len(results))
	}
}

func TestRank_FullLimitAboveTen(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	var gotK int
	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, k int, _, _ string) ([]result.Result, error) {
		gotK = k
		out := make([]result.Result, 0, k)
		for i := 0; i < k; i++ {
			out = append(out, result.New(testEntry(t, "h", int64(i+1)), 0.95-float64(i)*0.01))
		}
		return out, nil
	}

	req := mustRequest(t, "any", 20, "", "", false)
	results, _, err := svc.Rank(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotK != 20 {
		t.Fatalf("expected k 20 passed to catalog, got %d", gotK)
	}
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
}

func TestRank_FallbackWhenNoEmbeddedEntries(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		return nil, nil
	}
	mc.findAllFn = func(_ context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error) {
		if tenantID != "acme-travel" {
			t.Errorf("unexpected tenant %s", tenantID)
		}
		if offset != 0 || limit != 5 {
			t.Errorf("unexpected paging %d/%d", offset, limit)
		}
		return []hotel.Hotel{testEntry(t, "h-1", 1), testEntry(t, "h-2", 2)}, 2, nil
	}

	req := mustRequest(t, "any", 0, "", "", false)
	results, degraded, err := svc.Rank(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !degraded {
		t.Fatal("expected degraded flag for fallback")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 fallback results, got %d", len(results))
	}
	for i := range results {
		if results[i].Score() != 0 {
			t.Errorf("fallback score must be exactly 0, got %f", results[i].Score())
		}
		if !results[i].Degraded() {
			t.Error("fallback results must be marked degraded")
		}
	}
	h := results[0].Hotel()
	if h.ID() != "h-1" {
		t.Fatalf("fallback must preserve insertion order, got %s first", h.ID())
	}
}

func TestRank_FallbackEmptyCatalog(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	mc.findAllFn = func(_ context.Context, _, _, _ string, _, _ int) ([]hotel.Hotel, int, error) {
		return nil, 0, nil
	}

	req := mustRequest(t, "any", 0, "", "", false)
	results, degraded, err := svc.Rank(context.Background(), "acme-travel", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !degraded {
		t.Fatal("expected degraded flag")
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestRank_PassesLocationFilters(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, city, district string) ([]result.Result, error) {
		if city != "antalya" || district != "kemer" {
			t.Errorf("unexpected filters %q/%q", city, district)
		}
		return []result.Result{result.New(testEntry(t, "h-1", 1), 0.8)}, nil
	}

	req := mustRequest(t, "any", 0, "Antalya", "Kemer", false)
	if _, _, err := svc.Rank(context.Background(), "acme-travel", req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRank_CatalogErrorPropagates(t *testing.T) {
	svc, mc, _, _ := newTestService(t)

	dbErr := errors.New("index gone")
	mc.findNearestFn = func(_ context.Context, _ string, _ []float32, _ int, _, _ string) ([]result.Result, error) {
		return nil, dbErr
	}

	req := mustRequest(t, "any", 0, "", "", false)
	_, _, err := svc.Rank(context.Background(), "acme-travel", req)
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped catalog error, got %v", err)
	}
}
