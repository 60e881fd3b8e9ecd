package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
)

// mockGenerator implements the Generator contract for tests.
type mockGenerator struct {
	generateFn func(ctx context.Context, systemPrompt, userQuery, contextBlock string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userQuery, contextBlock string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, systemPrompt, userQuery, contextBlock)
	}
	return "generated summary", nil
}

func (m *mockGenerator) Model() string { return "test-model" }

func rankedResults(t *testing.T, n int) []result.Result {
	t.Helper()
	out := make([]result.Result, 0, n)
	for i := 0; i < n; i++ {
		h := hotel.Reconstruct(
			"h-"+string(rune('a'+i)), "acme-travel", "Hotel "+string(rune('A'+i)), "All Inclusive",
			"antalya", "kemer", "beldibi",
			4, decimal.NewFromInt(int64(100*(i+1))), "EUR",
			"Nice hotel.", []string{"pool", "wifi"}, nil, int64(i+1),
		)
		out = append(out, result.New(h, 0.9-float64(i)*0.1))
	}
	return out
}

func TestSummarize_HappyPath(t *testing.T) {
	var captured string
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _, userQuery, contextBlock string) (string, error) {
			if userQuery != "beachfront hotels" {
				t.Errorf("unexpected query %q", userQuery)
			}
			captured = contextBlock
			return "Two great options near the beach.", nil
		},
	}
	svc := New(gen, time.Second)

	text, ok := svc.Summarize(context.Background(), "beachfront hotels", rankedResults(t, 2))
	if !ok {
		t.Fatal("expected summary")
	}
	if text != "Two great options near the beach." {
		t.Fatalf("unexpected summary %q", text)
	}

	if !strings.HasPrefix(captured, "Found hotels:\n\n") {
		t.Errorf("context block missing header: %q", captured)
	}
	if !strings.Contains(captured, "1. Hotel A") || !strings.Contains(captured, "2. Hotel B") {
		t.Errorf("context block must number hotels in rank order: %q", captured)
	}
	if !strings.Contains(captured, "- Price: 100 EUR/night") {
		t.Errorf("context block missing price line: %q", captured)
	}
	if !strings.Contains(captured, "- Amenities: pool, wifi") {
		t.Errorf("context block missing amenities: %q", captured)
	}
}

func TestSummarize_ProviderErrorIsSwallowed(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "", errors.New("upstream 500")
		},
	}
	svc := New(gen, time.Second)

	text, ok := svc.Summarize(context.Background(), "any query", rankedResults(t, 1))
	if ok {
		t.Fatal("expected ok=false on provider error")
	}
	if text != "" {
		t.Fatalf("expected empty summary, got %q", text)
	}
}

func TestSummarize_EmptyCompletion(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "   \n", nil
		},
	}
	svc := New(gen, time.Second)

	_, ok := svc.Summarize(context.Background(), "any query", rankedResults(t, 1))
	if ok {
		t.Fatal("expected ok=false on empty completion")
	}
}

func TestSummarize_NoResults(t *testing.T) {
	called := false
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _, _, _ string) (string, error) {
			called = true
			return "should not happen", nil
		},
	}
	svc := New(gen, time.Second)

	_, ok := svc.Summarize(context.Background(), "any query", nil)
	if ok {
		t.Fatal("expected ok=false without results")
	}
	if called {
		t.Fatal("generator must not be called without results")
	}
}

func TestSummarize_AppliesTimeout(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(ctx context.Context, _, _, _ string) (string, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the generation context")
			}
			return "ok", nil
		},
	}
	svc := New(gen, 50*time.Millisecond)

	if _, ok := svc.Summarize(context.Background(), "q", rankedResults(t, 1)); !ok {
		t.Fatal("expected summary")
	}
}
