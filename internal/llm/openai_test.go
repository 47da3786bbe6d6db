package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const chatCompletionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "Hej!"}, "finish_reason": "stop"}
	],
	"usage": {"prompt_tokens": 12, "completion_tokens": 4}
}`

func TestXAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer srv.Close()

	provider, err := NewXAIProvider(ProviderConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewXAIProvider() error = %v", err)
	}
	if provider.Name() != "xai" {
		t.Errorf("Name() = %q, want %q", provider.Name(), "xai")
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hej"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "Hej!" {
		t.Errorf("Content = %q, want %q", resp.Content, "Hej!")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want %q", resp.FinishReason, "stop")
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 4 {
		t.Errorf("Usage = %+v, want 12 in / 4 out", resp.Usage)
	}
}

func TestXAIProvider_RequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	provider, err := NewXAIProvider(ProviderConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		MaxRetries: 1,
		Timeout:    50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewXAIProvider() error = %v", err)
	}

	start := time.Now()
	_, err = provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hej"}},
	})
	if err == nil {
		t.Fatal("Complete() succeeded, want timeout error")
	}
	if elapsed := time.Since(start); elapsed >= 5*time.Second {
		t.Errorf("Complete() took %v, timeout not applied", elapsed)
	}
}
