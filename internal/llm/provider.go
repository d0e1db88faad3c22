package llm

import (
	"context"
	"net/http"

	"knowledgehub-backend/internal/models"
)

// Request is the normalized completion request handed to a provider adapter.
// Messages are already filtered and windowed; System is never empty.
type Request struct {
	Messages    []models.ChatMessage
	System      string
	Temperature float64
	MaxTokens   int
}

// Provider is one external LLM API. Adapters translate the normalized
// request into the provider's own payload shape and extract the reply text.
// Complete must return a non-empty string or an error.
type Provider interface {
	Name() string
	Model() string
	Configured() bool
	Complete(ctx context.Context, req *Request) (string, error)
}

// Shared by the HTTP adapters. No Timeout is set: a slow provider holds the
// request for as long as the transport's defaults allow.
var httpClient = &http.Client{}
