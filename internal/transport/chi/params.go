package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// MaxTopK bounds the top_k query parameter.
const MaxTopK = 50

// searchParams are the query parameters shared by the search endpoints.
type searchParams struct {
	Query string
	// TopK is 0 when the caller did not pass top_k.
	TopK int
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	values := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "q", values, &p.Query); err != nil {
		return searchParams{}, err
	}
	if strings.TrimSpace(p.Query) == "" {
		return searchParams{}, fmt.Errorf("query parameter 'q' must not be empty")
	}

	var topK *int
	if err := runtime.BindQueryParameter("form", true, false, "top_k", values, &topK); err != nil {
		return searchParams{}, err
	}
	if topK != nil {
		if err := validateTopK(*topK); err != nil {
			return searchParams{}, err
		}
		p.TopK = *topK
	}
	return p, nil
}

func validateTopK(k int) error {
	if k < 1 || k > MaxTopK {
		return fmt.Errorf("top_k must be between 1 and %d, got %d", MaxTopK, k)
	}
	return nil
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Query     string `json:"query"`
	TopK      *int   `json:"top_k,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (c ChatRequest) validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("query is required")
	}
	if c.TopK != nil {
		return validateTopK(*c.TopK)
	}
	return nil
}
