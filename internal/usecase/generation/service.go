// Package generation composes a grounded staffing recommendation from hybrid
// search results using a chat model, with a deterministic fallback.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/staffdex/internal/metrics"
)

// Options configures the composer.
type Options struct {
	K                int
	MaxWords         int
	NextStepsDefault string
	Timeout          time.Duration
	// FetchK is the minimum number of hybrid results retrieved before taking the top K.
	FetchK int
}

// DefaultOptions returns k=3, 200 words, a 20s model timeout and fetch size 10.
func DefaultOptions() Options {
	return Options{
		K:                3,
		MaxWords:         200,
		NextStepsDefault: "Shall I widen skills or lower min years, or include 'soon' availability?",
		Timeout:          20 * time.Second,
		FetchK:           10,
	}
}

// Notes describes how the response was produced.
type Notes struct {
	K         int  `json:"k"`
	MaxWords  int  `json:"max_words,omitempty"`
	NoMatches bool `json:"no_matches,omitempty"`
	Fallback  bool `json:"fallback,omitempty"`
}

// Response is the composed answer.
type Response struct {
	Query            string `json:"query"`
	RequestID        string `json:"request_id"`
	UsedCandidateIDs []int  `json:"used_candidate_ids"`
	ResponseText     string `json:"response_text"`
	Notes            Notes  `json:"notes"`
}

// Service composes responses. Safe for concurrent use.
type Service struct {
	search HybridSearcher
	chat   Completer
	opts   Options
	logger *zap.Logger
}

// New creates a composer.
func New(search HybridSearcher, chat Completer, opts Options, logger *zap.Logger) *Service {
	def := DefaultOptions()
	if opts.K <= 0 {
		opts.K = def.K
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = def.MaxWords
	}
	if opts.NextStepsDefault == "" {
		opts.NextStepsDefault = def.NextStepsDefault
	}
	if opts.FetchK <= 0 {
		opts.FetchK = def.FetchK
	}
	return &Service{search: search, chat: chat, opts: opts, logger: logger}
}

// Respond retrieves candidates and asks the chat model for a recommendation.
// Retrieval errors are returned; model errors produce a fallback listing.
func (s *Service) Respond(ctx context.Context, query string, topK int, requestID string) (Response, error) {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	k := topK
	if k <= 0 {
		k = s.opts.K
	}
	log := s.logger.With(zap.String("request_id", requestID), zap.Int("k", k))

	start := time.Now()
	hyb, err := s.search.Search(ctx, query, max(k, s.opts.FetchK))
	if err != nil {
		return Response{}, fmt.Errorf("retrieve candidates: %w", err)
	}
	retrieveLatency := time.Since(start)

	cands := hyb.Results
	if len(cands) > k {
		cands = cands[:k]
	}

	resp := Response{
		Query:            query,
		RequestID:        requestID,
		UsedCandidateIDs: make([]int, len(cands)),
		Notes:            Notes{K: k},
	}
	for i := range cands {
		resp.UsedCandidateIDs[i] = cands[i].ID
	}

	if len(cands) == 0 {
		log.Info("No candidates retrieved", zap.Duration("retrieve_latency", retrieveLatency))
		metrics.GenerationRequestsTotal.WithLabelValues("no_matches").Inc()
		resp.ResponseText = noMatchText(query)
		resp.Notes.NoMatches = true
		return resp, nil
	}

	candJSON, err := candidatesJSON(cands)
	if err != nil {
		return Response{}, err
	}
	user := userPrompt(query, candJSON, k, s.opts.MaxWords, s.opts.NextStepsDefault)

	genCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	genStart := time.Now()
	text, err := s.chat.Complete(genCtx, systemPrompt, user)
	if err != nil {
		log.Error("Generation failed, using fallback", zap.Error(err))
		metrics.GenerationRequestsTotal.WithLabelValues("fallback").Inc()
		resp.ResponseText = fallbackText(cands)
		resp.Notes.Fallback = true
		return resp, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = "(no response)"
	}
	log.Info("Response generated",
		zap.Duration("retrieve_latency", retrieveLatency),
		zap.Duration("generate_latency", time.Since(genStart)),
		zap.Int("used", len(cands)),
	)
	metrics.GenerationRequestsTotal.WithLabelValues("ok").Inc()
	resp.ResponseText = text
	resp.Notes.MaxWords = s.opts.MaxWords
	return resp, nil
}
