package embed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// OpenAIConfig configures the OpenAI-compatible embeddings client.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIClient calls an OpenAI-compatible /embeddings endpoint.
// Responses are L2-normalized locally so downstream dot products are
// cosine similarities regardless of what the server returns.
type OpenAIClient struct {
	cfg        OpenAIConfig
	httpClient *http.Client
	dimension  int
	maxRetries int
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder requires an api key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: 3,
	}, nil
}

func (c *OpenAIClient) Name() string { return "openai" }

// Fit is a no-op; remote models need no corpus statistics.
func (c *OpenAIClient) Fit(corpus []string) error { return nil }

func (c *OpenAIClient) Dimension() int { return c.dimension }

type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Encode embeds a batch of texts in a single request, retrying
// transient failures with exponential backoff.
func (c *OpenAIClient) Encode(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(embeddingsRequest{Input: texts, Model: c.cfg.Model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff(attempt - 1))
		}
		vectors, retryable, err := c.post(body, len(texts))
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *OpenAIClient) post(body []byte, want int) ([][]float64, bool, error) {
	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("embeddings request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("embeddings status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("embeddings status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var out embeddingsResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Data) != want {
		return nil, false, fmt.Errorf("expected %d embeddings, got %d", want, len(out.Data))
	}

	vectors := make([][]float64, want)
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= want {
			return nil, false, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = normalize(d.Embedding)
	}
	if c.dimension == 0 && len(vectors[0]) > 0 {
		c.dimension = len(vectors[0])
	}
	return vectors, false, nil
}

func normalize(vec []float64) []float64 {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func backoff(attempt int) time.Duration {
	base := 200 * time.Millisecond << uint(attempt)
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	return base
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
