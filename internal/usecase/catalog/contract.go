package catalog

import (
	"context"

	"github.com/haremir/mergenX/internal/domain/hotel"
)

// Repository defines the storage contract for catalog management.
type Repository interface {
	Upsert(ctx context.Context, hotels []hotel.Hotel) error
	Get(ctx context.Context, tenantID, id string) (hotel.Hotel, error)
	Delete(ctx context.Context, tenantID, id string) error
	FindAll(ctx context.Context, tenantID, city, district string, offset, limit int) ([]hotel.Hotel, int, error)
	NextSeq(ctx context.Context) (int64, error)
}

// Embedder vectorizes catalog texts in batches.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
