package chi

import (
	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain/hotel"
	"github.com/haremir/mergenX/internal/domain/search/result"
	cataloguc "github.com/haremir/mergenX/internal/usecase/catalog"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeUnauthenticated   = "unauthenticated"
	codeTenantInactive    = "tenant_inactive"
	codeInvalidScope      = "invalid_scope"
	codeNotFound          = "not_found"
	codeEncodingFailed    = "encoding_failed"
	codeEmbeddingProvider = "embedding_provider_error"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	Query       string `json:"query"`
	Limit       int    `json:"limit,omitempty"`
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	WithSummary bool   `json:"with_summary,omitempty"`
}

type searchResultItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Concept     string          `json:"concept,omitempty"`
	City        string          `json:"city"`
	District    string          `json:"district,omitempty"`
	Area        string          `json:"area,omitempty"`
	Stars       int             `json:"stars"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Amenities   []string        `json:"amenities,omitempty"`
	Score       float64         `json:"score"`
	Degraded    bool            `json:"degraded,omitempty"`
}

type searchResponse struct {
	Query    string             `json:"query"`
	Results  []searchResultItem `json:"results"`
	Count    int                `json:"count"`
	Summary  *string            `json:"summary,omitempty"`
	Degraded bool               `json:"degraded,omitempty"`
}

type hotelInput struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Concept     string          `json:"concept,omitempty"`
	City        string          `json:"city"`
	District    string          `json:"district,omitempty"`
	Area        string          `json:"area,omitempty"`
	Stars       int             `json:"stars,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Amenities   []string        `json:"amenities,omitempty"`
}

type ingestRequest struct {
	Hotels []hotelInput `json:"hotels"`
}

type ingestedItem struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`
}

type ingestResponse struct {
	Items []ingestedItem `json:"items"`
	Count int            `json:"count"`
}

type hotelItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Concept     string          `json:"concept,omitempty"`
	City        string          `json:"city"`
	District    string          `json:"district,omitempty"`
	Area        string          `json:"area,omitempty"`
	Stars       int             `json:"stars"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Amenities   []string        `json:"amenities,omitempty"`
	HasVector   bool            `json:"has_vector"`
}

type hotelListResponse struct {
	Items  []hotelItem `json:"items"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

type healthModelInfo struct {
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type healthResponse struct {
	Status     string            `json:"status"`
	Checks     map[string]string `json:"checks"`
	Embedding  *healthModelInfo  `json:"embedding,omitempty"`
	Generation *healthModelInfo  `json:"generation,omitempty"`
}

func searchResultToItem(r *result.Result) searchResultItem {
	h := r.Hotel()
	return searchResultItem{
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
		Score:       r.Score(),
		Degraded:    r.Degraded(),
	}
}

func hotelToItem(h *hotel.Hotel) hotelItem {
	return hotelItem{
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
		HasVector:   h.HasEmbedding(),
	}
}

func inputToUsecase(in *hotelInput) cataloguc.Input {
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
