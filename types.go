package mergenx

import (
	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
	cataloguc "github.com/haremir/mergenX/internal/usecase/catalog"
)

// Hotel is a catalog entry as seen by SDK callers.
type Hotel struct {
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
	Seq         int64
	HasVector   bool
}

// HotelInput is one catalog entry submitted for ingestion.
// An empty ID gets a generated UUID.
type HotelInput struct {
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

// Ingested identifies one stored catalog entry.
type Ingested struct {
	ID  string
	Seq int64
}

// SearchParams are the hybrid search inputs. Limit 0 means the default (5).
type SearchParams struct {
	Query       string
	Limit       int
	City        string
	District    string
	WithSummary bool
}

// SearchHit is a single ranked result.
type SearchHit struct {
	Hotel Hotel
	// Score is cosine similarity in [0,1]; exactly 0 for fallback hits.
	Score    float64
	Degraded bool
}

// SearchResponse is the outcome of a hybrid search.
type SearchResponse struct {
	Query      string
	Hits       []SearchHit
	Summary    string
	HasSummary bool
	// Degraded is true when the whole result set came from the
	// insertion-order fallback.
	Degraded bool
}

// Tenant is an isolated customer organization.
type Tenant struct {
	Slug   string
	Name   string
	Active bool
}

// Health reports component availability.
type Health struct {
	Status string
	Checks map[string]string
}

func hotelFromDomain(h *hotel.Hotel) Hotel {
	return Hotel{
		ID:          h.ID(),
		Name:        h.Name(),
		Concept:     h.Concept(),
		City:        h.City(),
		District:    h.District(),
		Area:        h.Area(),
		Stars:       h.Stars(),
		Price:       h.Price(),
		Currency:    h.Currency(),
		Description: h.Description(),
		Amenities:   h.Amenities(),
		Seq:         h.Seq(),
		HasVector:   h.HasEmbedding(),
	}
}

func hitFromDomain(r *result.Result) SearchHit {
	h := r.Hotel()
	return SearchHit{
		Hotel:    hotelFromDomain(&h),
		Score:    r.Score(),
		Degraded: r.Degraded(),
	}
}

func inputToUsecase(in *HotelInput) cataloguc.Input {
	return cataloguc.Input{
		ID:          in.ID,
		Name:        in.Name,
		Concept:     in.Concept,
		City:        in.City,
		District:    in.District,
		Area:        in.Area,
		Stars:       in.Stars,
		Price:       in.Price,
		Currency:    in.Currency,
		Description: in.Description,
		Amenities:   in.Amenities,
	}
}
