// Package catalog persists hotel catalog entries in hash keys and serves
// tenant-scoped KNN and insertion-order queries over one FT index.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/haremir/mergenX/internal/db"
	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
)

// store is the consumer interface for catalog persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// IndexSettings holds the HNSW parameters of the catalog vector index.
type IndexSettings struct {
	Dimensions  int
	M           int
	EFConstruct int
}

// Repo implements the catalog persistence contracts of the usecase layer.
type Repo struct {
	store     store
	keyPrefix string
	index     IndexSettings
}

// New creates a catalog repository.
func New(s store, keyPrefix string, index IndexSettings) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, index: index}
}

// returnFields are the hash fields hydrated from search hits.
var returnFields = []string{
	fieldID, fieldTenant, fieldName, fieldConcept,
	fieldCity, fieldDistrict, fieldArea,
	fieldStars, fieldPrice, fieldCurrency,
	fieldDescription, fieldAmenities, fieldSeq,
}

// EnsureIndex creates the catalog FT index if it does not exist yet.
// Only hashes carrying the embedding field enter the vector side of the
// index; tenant, city, and district are TAG pre-filters and seq drives
// insertion-order listing.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	name := r.indexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(name).
		Prefix(r.keyPrefix + "hotel:").
		Tag(fieldTenant).
		Tag(fieldCity).
		Tag(fieldDistrict).
		NumericSortable(fieldSeq).
		VectorHNSW(fieldEmbedding, r.index.Dimensions, db.DistanceCosine, r.index.M, r.index.EFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index %s: %w", name, err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// RebuildIndex drops and recreates the catalog FT index, picking up changed
// HNSW settings. RediSearch re-indexes existing hashes on FT.CREATE, so the
// stored entries survive the rebuild.
func (r *Repo) RebuildIndex(ctx context.Context) error {
	name := r.indexName()

	if err := r.store.DropIndex(ctx, name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", name, err)
	}

	return r.EnsureIndex(ctx)
}

// NextSeq mints the next catalog insertion sequence number.
func (r *Repo) NextSeq(ctx context.Context) (int64, error) {
	seq, err := r.store.Incr(ctx, r.keyPrefix+"hotel:seq")
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

// Upsert writes a batch of catalog entries in one pipelined call.
func (r *Repo) Upsert(ctx context.Context, hotels []hotel.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(hotels))
	for i := range hotels {
		h := &hotels[i]
		items = append(items, db.HashSetItem{
			Key:    r.hotelKey(h.TenantID(), h.ID()),
			Fields: buildHashFields(h),
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d hotels: %w", len(hotels), err)
	}
	return nil
}

// Get loads a single catalog entry by tenant and ID.
func (r *Repo) Get(ctx context.Context, tenantID, id string) (hotel.Hotel, error) {
	fields, err := r.store.HGetAll(ctx, r.hotelKey(tenantID, id))
	if err != nil {
		return hotel.Hotel{}, fmt.Errorf("get hotel %s: %w", id, err)
	}
	if len(fields) == 0 {
		return hotel.Hotel{}, fmt.Errorf("hotel %s: %w", id, domain.ErrHotelNotFound)
	}
	return parseHashFields(fields), nil
}

// Delete removes a catalog entry.
func (r *Repo) Delete(ctx context.Context, tenantID, id string) error {
	key := r.hotelKey(tenantID, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("hotel %s: %w", id, domain.ErrHotelNotFound)
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete hotel %s: %w", id, err)
	}
	return nil
}

// FindNearest runs a tenant-scoped KNN query and returns ranked results.
// Only entries with an embedding participate; an empty result means the
// scope holds no embedded entries.
func (r *Repo) FindNearest(
	ctx context.Context, tenantID string,
	vector []float32, k int, city, district string,
) ([]result.Result, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Filters:      scopeFilters(tenantID, city, district),
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, result.New(parseHashFields(entry.Fields), entry.Score))
	}
	return results, nil
}

// FindAll lists catalog entries in insertion order (seq ascending),
// regardless of whether they carry an embedding.
func (r *Repo) FindAll(
	ctx context.Context, tenantID string,
	city, district string, offset, limit int,
) ([]hotel.Hotel, int, error) {
	q := &db.ListQuery{
		IndexName:    r.indexName(),
		Filters:      scopeFilters(tenantID, city, district),
		SortBy:       fieldSeq,
		Offset:       offset,
		Limit:        limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		total := 0
		if sr != nil {
			total = sr.Total
		}
		return nil, total, nil
	}

	hotels := make([]hotel.Hotel, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hotels = append(hotels, parseHashFields(entry.Fields))
	}
	return hotels, sr.Total, nil
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "hotel:idx"
}

func (r *Repo) hotelKey(tenantID, id string) string {
	return fmt.Sprintf("%shotel:%s:%s", r.keyPrefix, tenantID, id)
}

// scopeFilters builds the TAG pre-filter set. The tenant filter is always
// present; location filters only when requested.
func scopeFilters(tenantID, city, district string) []db.TagFilter {
	filters := []db.TagFilter{{Key: fieldTenant, Value: tenantID}}
	if city != "" {
		filters = append(filters, db.TagFilter{Key: fieldCity, Value: city})
	}
	if district != "" {
		filters = append(filters, db.TagFilter{Key: fieldDistrict, Value: district})
	}
	return filters
}
