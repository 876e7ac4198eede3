package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gen, _ := body["generationConfig"].(map[string]any)
		if gen["responseMimeType"] != "application/json" {
			t.Errorf("Expected JSON response MIME type, got %v", gen["responseMimeType"])
		}

		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"highlights\": []}"}]}}],
			"usageMetadata": {"totalTokenCount": 42},
			"modelVersion": "gemini-2.0-flash-001"
		}`))
	}))
	defer server.Close()

	provider, err := NewGeminiProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		System: SystemPrompt,
		Prompt: "text",
		JSON:   true,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Content != `{"highlights": []}` {
		t.Errorf("Unexpected content: %s", resp.Content)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("Unexpected token usage: %d", resp.TokensUsed)
	}
	if resp.Model != "gemini-2.0-flash-001" {
		t.Errorf("Unexpected model: %s", resp.Model)
	}
}

func TestGeminiProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"code": 500, "message": "internal", "status": "INTERNAL"}}`))
	}))
	defer server.Close()

	provider, err := NewGeminiProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "text"}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestGeminiProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewGeminiProvider(Config{}); err == nil {
		t.Fatal("Expected error without API key")
	}
}
