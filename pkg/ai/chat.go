package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// ChatClient is a minimal client for OpenAI-compatible chat completion
// endpoints (OpenRouter). Safe for concurrent use once constructed.
type ChatClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewChatClient creates a chat completion client from config.
func NewChatClient(cfg *config.OpenRouterConfig, logger *zap.Logger) *ChatClient {
	return &ChatClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// Message is one chat message sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a chat completion request and returns the assistant content.
// Failures come back as *ProviderError, already classified.
func (c *ChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", &ProviderError{Kind: KindBadResponse, Message: err.Error()}
	}

	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", &ProviderError{Kind: KindBadResponse, Message: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Kind: KindOverloaded, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		perr := classifyHTTPFailure(resp.StatusCode, strings.ToLower(string(body)))
		c.logger.Warn("chat completion failed",
			zap.String("model", req.Model),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", perr.Kind.String()),
		)
		return "", perr
	}

	var cr ChatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", &ProviderError{Kind: KindBadResponse, Status: resp.StatusCode, Message: err.Error()}
	}
	if len(cr.Choices) == 0 {
		return "", &ProviderError{Kind: KindBadResponse, Status: resp.StatusCode, Message: "empty choices"}
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
