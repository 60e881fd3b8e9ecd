// Package result defines the ranked search hit.
package result

import "github.com/haremir/mergenX/internal/domain/hotel"

// Result is a single ranked search hit: a catalog entry paired with a
// similarity score in [0,1]. Degraded marks entries served by the
// no-embedding fallback path, whose score is exactly 0.
type Result struct {
	hotel    hotel.Hotel
	score    float64
	degraded bool
}

// New creates a ranked result. Scores outside [0,1] are clamped.
func New(h hotel.Hotel, score float64) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{hotel: h, score: score}
}

// NewDegraded creates a zero-score fallback result.
func NewDegraded(h hotel.Hotel) Result {
	return Result{hotel: h, degraded: true}
}

// Hotel returns the matched catalog entry.
func (r *Result) Hotel() hotel.Hotel { return r.hotel }

// Score returns the similarity score in [0,1].
func (r *Result) Score() float64 { return r.score }

// Degraded reports whether the hit came from the no-embedding fallback.
func (r *Result) Degraded() bool { return r.degraded }
