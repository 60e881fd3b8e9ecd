// Package hotel defines the catalog entry aggregate.
package hotel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDescriptionSize is the maximum description length in bytes.
const MaxDescriptionSize = 8192

// Hotel is the catalog entry aggregate (immutable value object).
// Location fields are stored normalized (lowercase); the embedding vector is
// optional and, when present, always has the deployment's fixed dimension.
type Hotel struct {
	id          string
	tenantID    string
	name        string
	concept     string
	city        string
	district    string
	area        string
	stars       int
	price       decimal.Decimal
	currency    string
	description string
	amenities   []string
	embedding   []float32
	seq         int64
}

// New validates and creates a Hotel. City, district, and area are normalized
// to lowercase. Seq and embedding are assigned by the ingestion path.
func New(
	id, tenantID, name, concept, city, district, area string,
	stars int, price decimal.Decimal, currency, description string,
	amenities []string,
) (Hotel, error) {
	if id == "" {
		return Hotel{}, fmt.Errorf("hotel ID is required")
	}
	if tenantID == "" {
		return Hotel{}, fmt.Errorf("tenant ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Hotel{}, fmt.Errorf("hotel name is required")
	}
	city = normalize(city)
	if city == "" {
		return Hotel{}, fmt.Errorf("city is required")
	}
	if stars < 0 || stars > 5 {
		return Hotel{}, fmt.Errorf("stars must be between 0 and 5, got %d", stars)
	}
	if price.IsNegative() {
		return Hotel{}, fmt.Errorf("price must not be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Hotel{}, fmt.Errorf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if len(description) > MaxDescriptionSize {
		return Hotel{}, fmt.Errorf("description too large (max %d bytes)", MaxDescriptionSize)
	}

	return Hotel{
		id:          id,
		tenantID:    tenantID,
		name:        name,
		concept:     concept,
		city:        city,
		district:    normalize(district),
		area:        normalize(area),
		stars:       stars,
		price:       price,
		currency:    currency,
		description: description,
		amenities:   cloneStrings(amenities),
	}, nil
}

// Reconstruct creates a Hotel without validation (storage hydration).
func Reconstruct(
	id, tenantID, name, concept, city, district, area string,
	stars int, price decimal.Decimal, currency, description string,
	amenities []string, embedding []float32, seq int64,
) Hotel {
	return Hotel{
		id: id, tenantID: tenantID, name: name, concept: concept,
		city: city, district: district, area: area,
		stars: stars, price: price, currency: currency,
		description: description, amenities: amenities,
		embedding: embedding, seq: seq,
	}
}

// WithEmbedding returns a copy carrying the given embedding vector.
func (h Hotel) WithEmbedding(vec []float32) Hotel {
	h.embedding = vec
	return h
}

// WithSeq returns a copy carrying the given catalog insertion sequence.
func (h Hotel) WithSeq(seq int64) Hotel {
	h.seq = seq
	return h
}

// ID returns the hotel identifier, unique within a tenant.
func (h *Hotel) ID() string { return h.id }

// TenantID returns the owning tenant slug.
func (h *Hotel) TenantID() string { return h.tenantID }

// Name returns the hotel display name.
func (h *Hotel) Name() string { return h.name }

// Concept returns the hotel concept (e.g. "All Inclusive").
func (h *Hotel) Concept() string { return h.concept }

// City returns the normalized city name.
func (h *Hotel) City() string { return h.city }

// District returns the normalized district name.
func (h *Hotel) District() string { return h.district }

// Area returns the normalized neighborhood name.
func (h *Hotel) Area() string { return h.area }

// Stars returns the star rating (0 when unrated).
func (h *Hotel) Stars() int { return h.stars }

// Price returns the exact nightly price.
func (h *Hotel) Price() decimal.Decimal { return h.price }

// Currency returns the ISO 4217 currency code.
func (h *Hotel) Currency() string { return h.currency }

// Description returns the free-text description.
func (h *Hotel) Description() string { return h.description }

// Amenities returns the ordered amenity tags.
func (h *Hotel) Amenities() []string { return h.amenities }

// Embedding returns the embedding vector, nil when not yet ingested.
func (h *Hotel) Embedding() []float32 { return h.embedding }

// HasEmbedding reports whether the entry carries an embedding vector.
func (h *Hotel) HasEmbedding() bool { return len(h.embedding) > 0 }

// Seq returns the catalog insertion sequence, used for deterministic
// tie-breaking and fallback ordering.
func (h *Hotel) Seq() int64 { return h.seq }

// EmbeddingText returns the text a catalog entry is embedded from: the
// description enriched with name, concept, and location so short descriptions
// still carry a usable signal.
func (h *Hotel) EmbeddingText() string {
	parts := make([]string, 0, 6)
	parts = append(parts, h.name)
	if h.concept != "" {
		parts = append(parts, h.concept)
	}
	parts = append(parts, h.city)
	if h.district != "" {
		parts = append(parts, h.district)
	}
	if len(h.amenities) > 0 {
		parts = append(parts, strings.Join(h.amenities, ", "))
	}
	if h.description != "" {
		parts = append(parts, h.description)
	}
	return strings.Join(parts, ". ")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
