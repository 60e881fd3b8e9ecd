package domain

import "errors"

var (
	// ErrInvalidInput signals a malformed or out-of-bound request field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidScope signals a missing or malformed tenant scope.
	ErrInvalidScope = errors.New("invalid tenant scope")
	// ErrEncodingFailed signals an embedding of unexpected shape from the model.
	ErrEncodingFailed = errors.New("encoding failed")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrGenerationFailed signals a text generation failure. Always recovered
	// locally by the summarizer, never surfaced to the caller.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrUnauthenticated signals a missing or unknown API credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrTenantInactive signals a resolved but deactivated tenant.
	ErrTenantInactive = errors.New("tenant inactive")
	// ErrTenantNotFound signals a missing tenant record.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrHotelNotFound signals a missing catalog entry.
	ErrHotelNotFound = errors.New("hotel not found")
)
