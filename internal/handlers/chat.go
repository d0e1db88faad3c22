package handlers

import (
	"encoding/json"
	"net/http"

	"knowledgehub-backend/internal/llm"
	"knowledgehub-backend/internal/models"
)

type ChatHandler struct {
	chain *llm.Chain
	env   string
}

func NewChatHandler(chain *llm.Chain, env string) *ChatHandler {
	return &ChatHandler{
		chain: chain,
		env:   env,
	}
}

// chatResponseBody is the wire shape of POST /chat. Tried lists the failed
// provider attempts and is only populated outside production.
type chatResponseBody struct {
	Content string                   `json:"content"`
	Model   string                   `json:"model,omitempty"`
	Tried   []models.ProviderAttempt `json:"tried,omitempty"`
}

// Complete handles POST /chat. A body that fails to decode is the only case
// that returns a non-200: everything downstream of parsing, including total
// provider exhaustion, is reported in-band so the UI always has something
// to display.
func (h *ChatHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{Content: "Invalid request body."})
		return
	}

	outcome := h.chain.Complete(r.Context(), req)

	body := chatResponseBody{
		Content: outcome.Response.Content,
		Model:   outcome.Response.Model,
	}
	if h.env != "production" {
		body.Tried = outcome.Attempts
	}

	writeJSON(w, http.StatusOK, body)
}
