package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed search or chat request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrIndexUnavailable signals a missing or corrupt vector index artifact.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrVectorDimMismatch signals a query vector whose dimension differs from the index.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationFailed signals a language model failure.
	ErrGenerationFailed = errors.New("generation failed")
)
