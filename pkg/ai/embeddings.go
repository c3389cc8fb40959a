package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// EmbeddingClient calls an OpenAI-compatible /embeddings endpoint. Output
// vectors are L2-normalized so dot product equals cosine similarity.
// Constructed once at startup and shared; safe for concurrent use.
type EmbeddingClient struct {
	apiKey    string
	baseURL   string
	model     string
	batchSize int
	client    *http.Client
	logger    *zap.Logger
}

// NewEmbeddingClient creates an embedding client from config.
func NewEmbeddingClient(cfg *config.EmbeddingConfig, logger *zap.Logger) *EmbeddingClient {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 32
	}
	return &EmbeddingClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		model:     cfg.Model,
		batchSize: batch,
		client:    &http.Client{Timeout: 60 * time.Second},
		logger:    logger,
	}
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed generates one normalized vector per input text, preserving order.
// Each text embeds independently of batch composition; batching is only a
// transport concern.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		copy(results[start:end], batch)
	}
	return results, nil
}

// EmbedOne generates a normalized vector for a single text.
func (c *EmbeddingClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, &ProviderError{Kind: KindBadResponse, Message: "no embedding returned"}
	}
	return vecs[0], nil
}

func (c *EmbeddingClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	b, err := json.Marshal(embeddingRequest{Input: texts, Model: c.model})
	if err != nil {
		return nil, &ProviderError{Kind: KindBadResponse, Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(b))
	if err != nil {
		return nil, &ProviderError{Kind: KindBadResponse, Message: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Kind: KindOverloaded, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode >= 400 {
		return nil, classifyHTTPFailure(resp.StatusCode, strings.ToLower(string(body)))
	}

	var er embeddingResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, &ProviderError{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}
	if len(er.Data) != len(texts) {
		return nil, &ProviderError{
			Kind:    KindBadResponse,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(er.Data)),
		}
	}

	vectors := make([][]float32, len(texts))
	for _, d := range er.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, &ProviderError{Kind: KindBadResponse, Message: fmt.Sprintf("invalid embedding index %d", d.Index)}
		}
		normalize(d.Embedding)
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// normalize rescales v in place to unit L2 norm.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
