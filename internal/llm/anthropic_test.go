package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"knowledgehub-backend/internal/models"
)

func newTestRequest() *Request {
	return &Request{
		Messages:    []models.ChatMessage{{Role: "user", Content: "hi"}},
		System:      "test persona",
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

func TestAnthropicProvider_Success(t *testing.T) {
	var captured anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header, got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("Missing anthropic-version header")
		}
		json.NewDecoder(r.Body).Decode(&captured)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "hello from claude"}]}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", "claude-3-5-sonnet-20241022")
	p.baseURL = server.URL

	text, err := p.Complete(context.Background(), newTestRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "hello from claude" {
		t.Errorf("Expected extracted text, got %q", text)
	}
	if captured.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Expected model in payload, got %q", captured.Model)
	}
	if captured.System != "test persona" {
		t.Errorf("Expected system field in payload, got %q", captured.System)
	}
	if captured.MaxTokens != 1000 {
		t.Errorf("Expected max_tokens passthrough, got %d", captured.MaxTokens)
	}
}

func TestAnthropicProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "overloaded"}}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", "claude-3-5-sonnet-20241022")
	p.baseURL = server.URL

	_, err := p.Complete(context.Background(), newTestRequest())
	if err == nil {
		t.Fatal("Expected an error for HTTP 500")
	}
	if err.Error() != "anthropic: overloaded" {
		t.Errorf("Expected provider error message surfaced, got %q", err.Error())
	}
}

func TestAnthropicProvider_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", "claude-3-5-sonnet-20241022")
	p.baseURL = server.URL

	if _, err := p.Complete(context.Background(), newTestRequest()); err == nil {
		t.Fatal("Expected an error for empty content")
	}
}

func TestAnthropicProvider_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", "claude-3-5-sonnet-20241022")
	p.baseURL = server.URL

	if _, err := p.Complete(context.Background(), newTestRequest()); err == nil {
		t.Fatal("Expected an error for a malformed body")
	}
}

func TestAnthropicProvider_Configured(t *testing.T) {
	if NewAnthropicProvider("", "m").Configured() {
		t.Error("Provider without a key must report unconfigured")
	}
	if !NewAnthropicProvider("k", "m").Configured() {
		t.Error("Provider with a key must report configured")
	}
}
