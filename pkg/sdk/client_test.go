package staffdex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/domain"
	"github.com/kailas-cloud/staffdex/internal/domain/search/result"
	chiTransport "github.com/kailas-cloud/staffdex/internal/transport/chi"
	"github.com/kailas-cloud/staffdex/internal/usecase/generation"
	"github.com/kailas-cloud/staffdex/internal/usecase/health"
)

type stubKeyword struct{}

func (stubKeyword) Search(query string, topK int) result.KeywordResponse {
	return result.KeywordResponse{Query: query, TopK: topK, Results: []result.Match{{ID: 4, Name: "Dan Wu", Score: 8}}}
}

type stubSemantic struct{ err error }

func (s stubSemantic) Search(ctx context.Context, query string, topK int) (result.SemanticResponse, error) {
	if s.err != nil {
		return result.SemanticResponse{}, s.err
	}
	domain.UsageFromContext(ctx).Record(11)
	return result.SemanticResponse{Query: query, TopK: topK, Results: []result.SemanticHit{{ID: 3, Name: "Carol Diaz", Score: 0.9}}}, nil
}

type stubHybrid struct{ err error }

func (s stubHybrid) Search(ctx context.Context, query string, topK int) (result.HybridResponse, error) {
	if s.err != nil {
		return result.HybridResponse{}, s.err
	}
	domain.UsageFromContext(ctx).Record(5)
	return result.HybridResponse{Query: query, TopK: topK, Results: []result.HybridHit{{ID: 4, Name: "Dan Wu", Score: 1}}}, nil
}

type stubResponder struct{}

func (stubResponder) Respond(_ context.Context, query string, topK int, requestID string) (generation.Response, error) {
	return generation.Response{Query: query, RequestID: requestID, ResponseText: "Dan Wu.", Notes: generation.Notes{K: topK}}, nil
}

type stubHealth struct{}

func (stubHealth) Check(context.Context) health.Report {
	return health.Report{Status: health.Healthy, Checks: map[string]health.CheckResult{"embedding": health.CheckOK}}
}

func newTestServer(t *testing.T, semErr, hybErr error, apiKeys ...string) *httptest.Server {
	t.Helper()
	s := chiTransport.NewServer(stubKeyword{}, stubSemantic{err: semErr}, stubHybrid{err: hybErr},
		stubResponder{}, stubHealth{}, chiTransport.Options{})
	srv := httptest.NewServer(chiTransport.NewRouter(s, apiKeys, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"localhost:8000", "ftp://example.com", "://bad"} {
		if _, err := New(u); err == nil {
			t.Errorf("%q: expected error", u)
		}
	}
}

func TestClient_Keyword(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.Keyword(context.Background(), "go kubernetes", 3)
	if err != nil {
		t.Fatalf("Keyword: %v", err)
	}
	if res.Query != "go kubernetes" || res.TopK != 3 {
		t.Errorf("unexpected echo: %+v", res)
	}
	if len(res.Results) != 1 || res.Results[0].Name != "Dan Wu" {
		t.Errorf("unexpected results: %+v", res.Results)
	}
}

func TestClient_SemanticUsage(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	c, _ := New(srv.URL)

	res, usage, err := c.Semantic(context.Background(), "golang", 0)
	if err != nil {
		t.Fatalf("Semantic: %v", err)
	}
	if usage.EmbeddingTokens != 11 {
		t.Errorf("embedding tokens = %d, want 11", usage.EmbeddingTokens)
	}
	if len(res.Results) != 1 || res.Results[0].Score != 0.9 {
		t.Errorf("unexpected results: %+v", res.Results)
	}
}

func TestClient_HybridDefaultTopK(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	c, _ := New(srv.URL)

	res, usage, err := c.Hybrid(context.Background(), "fintech", 0)
	if err != nil {
		t.Fatalf("Hybrid: %v", err)
	}
	if res.TopK != 5 {
		t.Errorf("top_k = %d, want server default 5", res.TopK)
	}
	if usage.EmbeddingTokens != 5 {
		t.Errorf("embedding tokens = %d, want 5", usage.EmbeddingTokens)
	}
}

func TestClient_ErrorSentinels(t *testing.T) {
	cases := []struct {
		name   string
		semErr error
		want   error
		status int
	}{
		{"index", fmt.Errorf("load: %w", domain.ErrIndexUnavailable), ErrIndexUnavailable, http.StatusServiceUnavailable},
		{"provider", fmt.Errorf("embed: %w", domain.ErrEmbeddingProviderError), ErrEmbeddingProviderError, http.StatusBadGateway},
		{"timeout", fmt.Errorf("embed: %w", context.DeadlineExceeded), ErrTimeout, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.semErr, nil)
			c, _ := New(srv.URL)

			_, _, err := c.Semantic(context.Background(), "go", 0)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tc.status {
				t.Errorf("expected APIError with status %d, got %v", tc.status, err)
			}
		})
	}
}

func TestClient_InvalidRequest(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	c, _ := New(srv.URL)

	_, err := c.Keyword(context.Background(), "go", 99)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClient_Auth(t *testing.T) {
	srv := newTestServer(t, nil, nil, "secret")

	anon, _ := New(srv.URL)
	if _, err := anon.Keyword(context.Background(), "go", 0); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	authed, _ := New(srv.URL, WithAPIKey("secret"))
	if _, err := authed.Keyword(context.Background(), "go", 0); err != nil {
		t.Fatalf("authorized call failed: %v", err)
	}

	// Health stays open without a key.
	h, err := anon.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" || h.Checks["embedding"] != "ok" {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestClient_Chat(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	c, _ := New(srv.URL)

	res, err := c.Chat(context.Background(), "go developer", 2)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if res.ResponseText != "Dan Wu." || res.Notes.K != 2 {
		t.Errorf("unexpected response: %+v", res)
	}
	if res.RequestID == "" {
		t.Error("expected request id from server middleware")
	}
}

func TestClient_PrometheusMetrics(t *testing.T) {
	srv := newTestServer(t, fmt.Errorf("x: %w", domain.ErrIndexUnavailable), nil)
	reg := prometheus.NewRegistry()
	c, err := New(srv.URL, WithPrometheus(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = c.Keyword(context.Background(), "go", 0)
	_, _, _ = c.Semantic(context.Background(), "go", 0)

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search_keyword", "ok")); got != 1 {
		t.Errorf("keyword ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search_semantic", "error")); got != 1 {
		t.Errorf("semantic error = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := New(srv.URL, WithPrometheus(reg)); err != nil {
		t.Fatalf("second client: %v", err)
	}
}
