package chi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	logpkg "github.com/kailas-cloud/staffdex/internal/logger"
)

// ErrorCode is the machine-readable error kind in error bodies.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeNotFound               ErrorCode = "not_found"
	CodeIndexUnavailable       ErrorCode = "index_unavailable"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeGenerationFailed       ErrorCode = "generation_failed"
	CodeTimeout                ErrorCode = "timeout"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type errorMapping struct {
	sentinel error
	status   int
	code     ErrorCode
}

// errorMappings is checked in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout},
	{domain.ErrIndexUnavailable, http.StatusServiceUnavailable, CodeIndexUnavailable},
	{domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError},
	{domain.ErrGenerationFailed, http.StatusBadGateway, CodeGenerationFailed},
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// handleDomainError maps err to a status and a message that does not expose internals.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			log.Warn("request failed", zap.Error(err), zap.String("code", string(m.code)))
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
