package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

func chatClientFor(t *testing.T, handler http.HandlerFunc) *ChatClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatClient(&config.OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())
}

func TestComplete_Success(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest
	client := chatClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  hello there  "}},
			},
		})
	})

	out, err := client.Complete(context.Background(), ChatRequest{
		Model:       "test-model",
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0.1,
		MaxTokens:   100,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello there" {
		t.Errorf("content = %q, want trimmed %q", out, "hello there")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.MaxTokens != 100 {
		t.Errorf("request body not forwarded: %+v", gotReq)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	client := chatClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "m"})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if perr.Kind != KindRateLimited {
		t.Errorf("kind = %s, want rate_limited", perr.Kind)
	}
	if !perr.Transient() {
		t.Error("rate-limited must be transient")
	}
}

func TestComplete_Overloaded(t *testing.T) {
	for _, status := range []int{500, 502, 503, 529} {
		client := chatClientFor(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := client.Complete(context.Background(), ChatRequest{Model: "m"})
		var perr *ProviderError
		if !errors.As(err, &perr) || perr.Kind != KindOverloaded {
			t.Errorf("status %d: got %v, want overloaded provider error", status, err)
		}
	}
}

func TestComplete_ContextTooLarge(t *testing.T) {
	client := chatClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"maximum context_length exceeded"}`, http.StatusBadRequest)
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "m"})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if perr.Kind != KindTooLarge {
		t.Errorf("kind = %s, want too_large", perr.Kind)
	}
	if perr.Transient() {
		t.Error("too-large must not be transient")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	client := chatClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "m"})
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Kind != KindBadResponse {
		t.Errorf("got %v, want bad_response provider error", err)
	}
}
