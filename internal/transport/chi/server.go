package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/staffdex/internal/domain"
	healthuc "github.com/kailas-cloud/staffdex/internal/usecase/health"
)

// Options configures request defaults.
type Options struct {
	// HybridTopK is used by /search/hybrid when top_k is absent.
	HybridTopK int
}

// Server serves the search, chat and operational endpoints.
type Server struct {
	keyword  KeywordSearcher
	semantic SemanticSearcher
	hybrid   HybridSearcher
	chat     Responder
	health   HealthChecker
	opts     Options
}

// NewServer creates an HTTP API server. chat and health may be nil; their routes are then not registered.
func NewServer(
	keyword KeywordSearcher,
	semantic SemanticSearcher,
	hybrid HybridSearcher,
	chat Responder,
	health HealthChecker,
	opts Options,
) *Server {
	if opts.HybridTopK <= 0 {
		opts.HybridTopK = 5
	}
	return &Server{
		keyword:  keyword,
		semantic: semantic,
		hybrid:   hybrid,
		chat:     chat,
		health:   health,
		opts:     opts,
	}
}

// Register mounts the routes on r.
func (s *Server) Register(r chi.Router) {
	if s.health != nil {
		r.Get("/health", s.HealthCheck)
	}
	r.Get("/metrics", s.Metrics)
	r.Route("/search", func(r chi.Router) {
		r.Get("/keyword", s.SearchKeyword)
		r.Get("/semantic", s.SearchSemantic)
		r.Get("/hybrid", s.SearchHybrid)
	})
	if s.chat != nil {
		r.Post("/chat", s.Chat)
	}
}

// SearchKeyword handles GET /search/keyword.
func (s *Server) SearchKeyword(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.keyword.Search(p.Query, p.TopK))
}

// SearchSemantic handles GET /search/semantic.
func (s *Server) SearchSemantic(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.semantic.Search(ctx, p.Query, p.TopK)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resp)
}

// SearchHybrid handles GET /search/hybrid.
func (s *Server) SearchHybrid(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	topK := p.TopK
	if topK == 0 {
		topK = s.opts.HybridTopK
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.hybrid.Search(ctx, p.Query, topK)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resp)
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = chiMiddleware.GetReqID(r.Context())
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.chat.Respond(ctx, req.Query, topK, requestID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resp)
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health. A degraded service still answers keyword
// search, so it reports 200 with status "degraded".
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	writeJSON(w, http.StatusOK, HealthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Calls > 0 {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
