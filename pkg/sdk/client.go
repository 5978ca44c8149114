package staffdex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls a staffdex server. Safe for concurrent use.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	obs     *observer
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("staffdex: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("staffdex: base url must be http or https, got %q", baseURL)
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{baseURL: u, apiKey: cfg.apiKey, http: hc, obs: obs}, nil
}

// Keyword runs keyword search. topK <= 0 uses the server default.
func (c *Client) Keyword(ctx context.Context, query string, topK int) (KeywordResponse, error) {
	var out KeywordResponse
	_, err := c.search(ctx, "keyword", query, topK, &out)
	return out, err
}

// Semantic runs vector search and reports the embedding tokens spent.
func (c *Client) Semantic(ctx context.Context, query string, topK int) (SemanticResponse, Usage, error) {
	var out SemanticResponse
	usage, err := c.search(ctx, "semantic", query, topK, &out)
	return out, usage, err
}

// Hybrid runs fused search and reports the embedding tokens spent.
func (c *Client) Hybrid(ctx context.Context, query string, topK int) (HybridResponse, Usage, error) {
	var out HybridResponse
	usage, err := c.search(ctx, "hybrid", query, topK, &out)
	return out, usage, err
}

// Chat asks the server for a staffing recommendation.
func (c *Client) Chat(ctx context.Context, query string, topK int) (ChatResponse, error) {
	start := time.Now()

	body := map[string]any{"query": query}
	if topK > 0 {
		body["top_k"] = topK
	}
	var out ChatResponse
	_, err := c.do(ctx, http.MethodPost, "/chat", nil, body, &out)

	c.obs.observe("chat", start, err)
	return out, err
}

// Health returns the server health report.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	start := time.Now()

	var out HealthStatus
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out)

	c.obs.observe("health", start, err)
	return out, err
}

func (c *Client) search(ctx context.Context, mode, query string, topK int, out any) (Usage, error) {
	start := time.Now()

	q := url.Values{"q": {query}}
	if topK > 0 {
		q.Set("top_k", strconv.Itoa(topK))
	}
	usage, err := c.do(ctx, http.MethodGet, "/search/"+mode, q, nil, out)

	c.obs.observe("search_"+mode, start, err)
	return usage, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (Usage, error) {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Usage{}, fmt.Errorf("staffdex: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return Usage{}, fmt.Errorf("staffdex: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Usage{}, fmt.Errorf("staffdex: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return Usage{}, decodeAPIError(resp)
	}

	var usage Usage
	if v := resp.Header.Get("X-Embedding-Tokens"); v != "" {
		usage.EmbeddingTokens, _ = strconv.Atoi(v)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Usage{}, fmt.Errorf("staffdex: decode %s response: %w", path, err)
	}
	return usage, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Code == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
