package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
	cataloguc "github.com/haremir/mergenX/internal/usecase/catalog"
	healthuc "github.com/haremir/mergenX/internal/usecase/health"
	searchuc "github.com/haremir/mergenX/internal/usecase/search"
)

// mockSearchCatalog implements the search usecase storage contract.
type mockSearchCatalog struct {
	findNearestFn func(ctx context.Context, tenantID string, vector []float32, k int, city, district string) ([]result.Result, error)
	findAllFn     func(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error)
}

func (m *mockSearchCatalog) FindNearest(ctx context.Context, tenantID string, vector []float32, k int, city, district string) ([]result.Result, error) {
	return m.findNearestFn(ctx, tenantID, vector, k, city, district)
}

func (m *mockSearchCatalog) FindAll(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error) {
	return m.findAllFn(ctx, tenantID, city, district, offset, limit)
}

// mockEmbedder implements both the query and batch embedding contracts.
type mockEmbedder struct {
	embedQueryFn     func(ctx context.Context, text string) ([]float32, error)
	embedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return m.embedQueryFn(ctx, text)
}

func (m *mockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return m.embedDocumentsFn(ctx, texts)
}

func (m *mockEmbedder) Dimension() int { return 4 }

type mockSummarizer struct {
	summarizeFn func(ctx context.Context, query string, results []result.Result) (string, bool)
}

func (m *mockSummarizer) Summarize(ctx context.Context, query string, results []result.Result) (string, bool) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, query, results)
	}
	return "", false
}

// mockCatalogRepo implements the catalog usecase storage contract.
type mockCatalogRepo struct {
	upsertFn  func(ctx context.Context, hotels []hotel.Hotel) error
	getFn     func(ctx context.Context, tenantID, id string) (hotel.Hotel, error)
	deleteFn  func(ctx context.Context, tenantID, id string) error
	findAllFn func(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error)
	seq       int64
}

func (m *mockCatalogRepo) Upsert(ctx context.Context, hotels []hotel.Hotel) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, hotels)
	}
	return nil
}

func (m *mockCatalogRepo) Get(ctx context.Context, tenantID, id string) (hotel.Hotel, error) {
	return m.getFn(ctx, tenantID, id)
}

func (m *mockCatalogRepo) Delete(ctx context.Context, tenantID, id string) error {
	return m.deleteFn(ctx, tenantID, id)
}

func (m *mockCatalogRepo) FindAll(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error) {
	return m.findAllFn(ctx, tenantID, city, district, offset, limit)
}

func (m *mockCatalogRepo) NextSeq(ctx context.Context) (int64, error) {
	m.seq++
	return m.seq, nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type mockEmbeddingChecker struct {
	healthFn func(ctx context.Context) error
}

func (m *mockEmbeddingChecker) HealthCheck(ctx context.Context) error {
	if m.healthFn != nil {
		return m.healthFn(ctx)
	}
	return nil
}

func (m *mockEmbeddingChecker) Model() string { return "intfloat/multilingual-e5-base" }

func (m *mockEmbeddingChecker) Dimension() int { return 768 }

type mockGenerationChecker struct{}

func (m *mockGenerationChecker) Model() string { return "llama-3.3-70b-versatile" }

// testDeps bundles the mocks behind a test server.
type testDeps struct {
	searchCatalog *mockSearchCatalog
	catalogRepo   *mockCatalogRepo
	embedder      *mockEmbedder
	summarizer    *mockSummarizer
	pinger        *mockPinger
	embChecker    *mockEmbeddingChecker
	resolver      *mockResolver
}

func newTestDeps() *testDeps {
	return &testDeps{
		searchCatalog: &mockSearchCatalog{},
		catalogRepo:   &mockCatalogRepo{},
		embedder:      &mockEmbedder{},
		summarizer:    &mockSummarizer{},
		pinger:        &mockPinger{},
		embChecker:    &mockEmbeddingChecker{},
		resolver: &mockResolver{
			resolveFn: func(_ context.Context, apiKey string) (domain.Tenant, error) {
				if apiKey == testAPIKey {
					return testTenant(), nil
				}
				return domain.Tenant{}, domain.ErrUnauthenticated
			},
		},
	}
}

const testAPIKey = "test-api-key"

func testTenant() domain.Tenant {
	return domain.ReconstructTenant("acme-travel", "Acme Travel", "hash", true)
}

// newTestServer wires the full router over mock dependencies.
func newTestServer(deps *testDeps) *httptest.Server {
	searchSvc := searchuc.New(deps.searchCatalog, deps.embedder, deps.summarizer)
	catalogSvc := cataloguc.New(deps.catalogRepo, deps.embedder, 100)
	healthSvc := healthuc.New(deps.pinger, deps.embChecker, &mockGenerationChecker{})

	srv := NewServer(searchSvc, catalogSvc, healthSvc, zap.NewNop())

	r := chi.NewRouter()
	srv.Routes(r, deps.resolver)
	return httptest.NewServer(r)
}

// doRequest performs an authenticated request against the test server.
func doRequest(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-API-Key", testAPIKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(raw)
}

func testCatalogHotel(t *testing.T, id string, seq int64) hotel.Hotel {
	t.Helper()
	h, err := hotel.New(
		id, "acme-travel", "Hotel "+id, "beach resort",
		"antalya", "kemer", "beldibi",
		5, decimal.NewFromInt(250), "EUR",
		"A seaside resort.", []string{"pool", "spa"},
	)
	if err != nil {
		t.Fatalf("hotel.New: %v", err)
	}
	return h.WithEmbedding([]float32{0.1, 0.2, 0.3, 0.4}).WithSeq(seq)
}
