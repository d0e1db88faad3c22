package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	System      string        `json:"system,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// ChatResponse is the reply from the AI chat. Model identifies which
// provider answered; it is empty for the degraded guidance response.
type ChatResponse struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// ProviderAttempt records one failed provider call. Surfaced on the chat
// response outside production so operators can see why the chain fell through.
type ProviderAttempt struct {
	Provider string `json:"provider"`
	Error    string `json:"error"`
}
