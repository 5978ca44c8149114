package staffdex

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/staffdex/internal/domain"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrIndexUnavailable       = domain.ErrIndexUnavailable
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrGenerationFailed       = domain.ErrGenerationFailed
	ErrUnauthorized           = errors.New("unauthorized")
	ErrTimeout                = errors.New("upstream timeout")
)

// codeSentinels maps server error codes to sentinels.
var codeSentinels = map[string]error{
	"bad_request":              ErrInvalidRequest,
	"validation_failed":        ErrInvalidRequest,
	"unauthorized":             ErrUnauthorized,
	"index_unavailable":        ErrIndexUnavailable,
	"embedding_provider_error": ErrEmbeddingProviderError,
	"generation_failed":        ErrGenerationFailed,
	"timeout":                  ErrTimeout,
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("staffdex: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap returns the sentinel for the error code, if any.
func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
