// Package catalog handles catalog ingestion and listing. Ingestion embeds
// entries in one batch and assigns each a monotonically increasing sequence
// number so insertion order stays reconstructible.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain"
	"github.com/haremir/mergenX/internal/domain/hotel"
)

// Service handles catalog entry lifecycle with automatic vectorization.
type Service struct {
	repo         Repository
	embed        Embedder
	maxBatchSize int
}

// New creates a catalog service.
func New(repo Repository, embed Embedder, maxBatchSize int) *Service {
	return &Service{repo: repo, embed: embed, maxBatchSize: maxBatchSize}
}

// Input is one unvalidated catalog entry submitted for ingestion.
// An empty ID gets a generated UUID.
type Input struct {
	ID          string
	Name        string
	Concept     string
	City        string
	District    string
	Area        string
	Stars       int
	Price       decimal.Decimal
	Currency    string
	Description string
	Amenities   []string
}

// Ingest validates, embeds, and stores a batch of catalog entries. The batch
// is all-or-nothing: one invalid entry or a failed embedding call rejects the
// whole batch, so stored entries and their vectors never drift apart.
func (s *Service) Ingest(ctx context.Context, tenantID string, inputs []Input) ([]hotel.Hotel, error) {
	if !domain.ValidTenantID(tenantID) {
		return nil, fmt.Errorf("tenant %q: %w", tenantID, domain.ErrInvalidScope)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("empty batch: %w", domain.ErrInvalidInput)
	}
	if len(inputs) > s.maxBatchSize {
		return nil, fmt.Errorf("batch too large (max %d): %w", s.maxBatchSize, domain.ErrInvalidInput)
	}

	hotels := make([]hotel.Hotel, 0, len(inputs))
	texts := make([]string, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]

		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}

		h, err := hotel.New(
			id, tenantID, in.Name, in.Concept, in.City, in.District, in.Area,
			in.Stars, in.Price, in.Currency, in.Description, in.Amenities,
		)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w: %w", i, err, domain.ErrInvalidInput)
		}
		hotels = append(hotels, h)
		texts = append(texts, h.EmbeddingText())
	}

	vectors, err := s.embed.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("vectorize batch: %w", err)
	}
	if len(vectors) != len(hotels) {
		return nil, fmt.Errorf("expected %d vectors, got %d: %w",
			len(hotels), len(vectors), domain.ErrEncodingFailed)
	}

	for i := range hotels {
		seq, err := s.repo.NextSeq(ctx)
		if err != nil {
			return nil, fmt.Errorf("assign seq: %w", err)
		}
		hotels[i] = hotels[i].WithEmbedding(vectors[i]).WithSeq(seq)
	}

	if err := s.repo.Upsert(ctx, hotels); err != nil {
		return nil, fmt.Errorf("store batch: %w", err)
	}
	return hotels, nil
}

// Get retrieves a catalog entry within the tenant scope.
func (s *Service) Get(ctx context.Context, tenantID, id string) (hotel.Hotel, error) {
	if !domain.ValidTenantID(tenantID) {
		return hotel.Hotel{}, fmt.Errorf("tenant %q: %w", tenantID, domain.ErrInvalidScope)
	}
	h, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return hotel.Hotel{}, fmt.Errorf("get entry: %w", err)
	}
	return h, nil
}

// Delete removes a catalog entry within the tenant scope.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if !domain.ValidTenantID(tenantID) {
		return fmt.Errorf("tenant %q: %w", tenantID, domain.ErrInvalidScope)
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// List returns tenant catalog entries in insertion order.
func (s *Service) List(
	ctx context.Context, tenantID, city, district string, offset, limit int,
) ([]hotel.Hotel, int, error) {
	if !domain.ValidTenantID(tenantID) {
		return nil, 0, fmt.Errorf("tenant %q: %w", tenantID, domain.ErrInvalidScope)
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > s.maxBatchSize {
		limit = s.maxBatchSize
	}

	// Location tags are stored lowercased; normalize like the search path.
	city = strings.ToLower(strings.TrimSpace(city))
	district = strings.ToLower(strings.TrimSpace(district))

	hotels, total, err := s.repo.FindAll(ctx, tenantID, city, district, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return hotels, total, nil
}
