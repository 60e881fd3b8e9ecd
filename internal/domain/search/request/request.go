// Package request defines the validated hybrid search request.
package request

import (
	"fmt"
	"strings"

	"github.com/haremir/mergenX/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength = 500
	// DefaultLimit is the number of hotels returned when the caller omits it.
	DefaultLimit = 5
	// MaxLimit is the maximum number of hotels per search.
	MaxLimit = 20
)

// Request is a validated hybrid search query. Tenant scope is not part of the
// request: it is resolved by the authentication gate and passed separately.
type Request struct {
	query       string
	limit       int
	city        string
	district    string
	withSummary bool
}

// New validates and normalizes search parameters.
// The query is trimmed and must be non-empty; limit defaults to 5 and must
// stay within [1, 20]; city/district filters are lowercased.
// All violations wrap domain.ErrInvalidInput.
func New(query string, limit int, city, district string, withSummary bool) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("query must not be empty: %w", domain.ErrInvalidInput)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Request{}, fmt.Errorf("limit must be between 1 and %d, got %d: %w",
			MaxLimit, limit, domain.ErrInvalidInput)
	}

	return Request{
		query:       query,
		limit:       limit,
		city:        strings.ToLower(strings.TrimSpace(city)),
		district:    strings.ToLower(strings.TrimSpace(district)),
		withSummary: withSummary,
	}, nil
}

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum number of hotels to return.
func (r *Request) Limit() int { return r.limit }

// City returns the normalized city filter, empty when absent.
func (r *Request) City() string { return r.city }

// District returns the normalized district filter, empty when absent.
func (r *Request) District() string { return r.district }

// WithSummary reports whether an AI summary was requested.
func (r *Request) WithSummary() bool { return r.withSummary }
