package handlers

import (
	"fmt"
	"net/http"
	"time"

	"knowledgehub-backend/internal/config"
	"knowledgehub-backend/internal/llm"
)

type DebugHandler struct {
	chain *llm.Chain
	cfg   *config.Config
}

func NewDebugHandler(chain *llm.Chain, cfg *config.Config) *DebugHandler {
	return &DebugHandler{
		chain: chain,
		cfg:   cfg,
	}
}

// Probe handles GET /debug: a live health check of every configured
// provider plus a masked view of each credential. Credentials are never
// echoed in full.
func (h *DebugHandler) Probe(w http.ResponseWriter, r *http.Request) {
	results := h.chain.Probe(r.Context())

	status := "❌ no provider configured"
	for _, res := range results {
		if res.OK {
			status = fmt.Sprintf("✅ WORKING — %s/%s", res.Provider, res.Model)
			break
		}
		status = fmt.Sprintf("❌ %s failed: %s", res.Provider, res.Error)
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"environment":   h.cfg.Env,
		"providerOrder": h.cfg.ProviderOrder,
		"keys": map[string]string{
			"ANTHROPIC_API_KEY":     llm.MaskKey(h.cfg.AnthropicAPIKey),
			"OPENAI_API_KEY":        llm.MaskKey(h.cfg.OpenAIAPIKey),
			"GOOGLE_GEMINI_API_KEY": llm.MaskKey(h.cfg.GeminiAPIKey),
		},
		"liveTests": results,
		"status":    status,
	})
}
