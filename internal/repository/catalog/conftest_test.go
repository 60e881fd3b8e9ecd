package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/db"
	"github.com/haremir/mergenX/internal/domain/hotel"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hSetFn        func(ctx context.Context, key string, fields map[string]string) error
	hSetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	hGetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	incrFn        func(ctx context.Context, key string) (int64, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn   func(ctx context.Context, name string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hSetFn != nil {
		return m.hSetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hSetMultiFn != nil {
		return m.hSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return true, nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "mergenx:", IndexSettings{Dimensions: 4, M: 8, EFConstruct: 64})
	return repo, ms
}

func testVector() []float32 {
	vec := make([]float32, 4)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec
}

func testHotel(t *testing.T, id, tenantID string) hotel.Hotel {
	t.Helper()
	h, err := hotel.New(
		id, tenantID, "Aurora Resort", "All Inclusive",
		"Antalya", "Kemer", "Beldibi",
		5, decimal.NewFromInt(420), "EUR",
		"Beachfront resort with spa and three pools.",
		[]string{"pool", "spa", "wifi"},
	)
	if err != nil {
		t.Fatalf("hotel.New: %v", err)
	}
	return h
}

// testFields returns the flat hash shape of a stored hotel.
func testFields(id, tenantID, seq string) map[string]string {
	return map[string]string{
		fieldID:          id,
		fieldTenant:      tenantID,
		fieldName:        "Aurora Resort",
		fieldConcept:     "All Inclusive",
		fieldCity:        "antalya",
		fieldDistrict:    "kemer",
		fieldArea:        "beldibi",
		fieldStars:       "5",
		fieldPrice:       "420",
		fieldCurrency:    "EUR",
		fieldDescription: "Beachfront resort with spa and three pools.",
		fieldAmenities:   "pool,spa,wifi",
		fieldSeq:         seq,
	}
}
