package mergenx

import (
	"errors"
	"fmt"

	"github.com/haremir/mergenX/internal/domain"
)

// Public sentinel errors. Use errors.Is to match.
var (
	// ErrInvalidInput signals a malformed or out-of-bound request field.
	ErrInvalidInput = errors.New("mergenx: invalid input")
	// ErrInvalidScope signals a missing or malformed tenant scope.
	ErrInvalidScope = errors.New("mergenx: invalid tenant scope")
	// ErrNotFound signals a missing catalog entry or tenant.
	ErrNotFound = errors.New("mergenx: not found")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("mergenx: embedding provider error")
)

// mapErr translates internal sentinels to the public error surface.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrInvalidScope):
		return fmt.Errorf("%w: %v", ErrInvalidScope, err)
	case errors.Is(err, domain.ErrHotelNotFound), errors.Is(err, domain.ErrTenantNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, domain.ErrEmbeddingProvider), errors.Is(err, domain.ErrEncodingFailed):
		return fmt.Errorf("%w: %v", ErrEmbeddingProvider, err)
	default:
		return err
	}
}
