package llm

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"knowledgehub-backend/internal/models"
)

const (
	// messageWindow bounds per-request token usage: only the most recent
	// turns are forwarded, older context is silently dropped.
	messageWindow = 20

	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// configGuidance is returned in-band when no provider is configured or every
// configured provider failed. The chat UI renders it as markdown, so total
// failure still produces something displayable.
const configGuidance = "**⚠️ AI Assistant not configured yet.**\n\n" +
	"Add at least one of these to your `.env` and restart the server:\n\n" +
	"```\n" +
	"ANTHROPIC_API_KEY=sk-ant-api03-...\n" +
	"OPENAI_API_KEY=sk-proj-...\n" +
	"GOOGLE_GEMINI_API_KEY=AIzaSy...\n" +
	"```\n\n" +
	"See the README for step-by-step setup instructions."

// Chain tries an ordered list of providers until one succeeds. Providers
// without a credential are skipped entirely; every other failure is logged
// and absorbed. Attempts are strictly sequential, never parallel.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the configured subset of the chain, in priority order.
func (c *Chain) Providers() []Provider {
	configured := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if p.Configured() {
			configured = append(configured, p)
		}
	}
	return configured
}

// Outcome is the tagged result of a chain completion. Degraded marks the
// guidance response produced on total exhaustion; the transport layer still
// serves it as a normal 200.
type Outcome struct {
	Response models.ChatResponse
	Degraded bool
	Attempts []models.ProviderAttempt
}

// Complete normalizes the request and walks the fallback chain, returning
// the first successful provider response.
func (c *Chain) Complete(ctx context.Context, chatReq models.ChatRequest) Outcome {
	req := normalize(chatReq)

	var attempts []models.ProviderAttempt
	for _, p := range c.Providers() {
		text, err := p.Complete(ctx, req)
		if err != nil {
			log.Printf("[%s] error: %v", p.Name(), err)
			attempts = append(attempts, models.ProviderAttempt{Provider: p.Name(), Error: err.Error()})
			continue
		}
		return Outcome{
			Response: models.ChatResponse{Content: text, Model: p.Model()},
			Attempts: attempts,
		}
	}

	return Outcome{
		Response: models.ChatResponse{Content: configGuidance},
		Degraded: true,
		Attempts: attempts,
	}
}

// Analyze asks the chain to summarize an uploaded document. The provider's
// reply must parse as JSON after fence stripping; a parse failure counts as
// a provider failure and the chain moves on. Analysis never errors — on
// exhaustion a static unavailable result is returned.
func (c *Chain) Analyze(ctx context.Context, filename, content string) models.AnalysisResult {
	req := &Request{
		Messages: []models.ChatMessage{
			{Role: "user", Content: buildAnalysisPrompt(filename, content)},
		},
		System:      DefaultSystemPrompt,
		Temperature: 0.3,
		MaxTokens:   500,
	}

	providers := c.Providers()
	if len(providers) == 0 {
		return models.AnalysisResult{
			Summary: "AI analysis unavailable — configure ANTHROPIC_API_KEY, OPENAI_API_KEY or " +
				"GOOGLE_GEMINI_API_KEY to enable automatic document analysis.",
			Insights: []string{"Configure API key for AI-powered insights", "Document uploaded successfully"},
		}
	}

	for _, p := range providers {
		text, err := p.Complete(ctx, req)
		if err != nil {
			log.Printf("[%s] analysis error: %v", p.Name(), err)
			continue
		}

		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(stripCodeFences(text)), &result); err != nil {
			log.Printf("[%s] analysis parse error: %v", p.Name(), err)
			continue
		}
		return result
	}

	return models.AnalysisResult{
		Summary:  "Document uploaded successfully. AI analysis failed — check API configuration.",
		Insights: []string{"Upload successful", "AI analysis unavailable"},
	}
}

// ProbeResult is one provider's health-check outcome.
type ProbeResult struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	OK       bool   `json:"ok"`
	Reply    string `json:"reply,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Probe sends a trivial fixed prompt to every configured provider in
// priority order. It never short-circuits: each provider is tested so the
// operator sees the full picture.
func (c *Chain) Probe(ctx context.Context) []ProbeResult {
	req := &Request{
		Messages:    []models.ChatMessage{{Role: "user", Content: probePrompt}},
		System:      "You are a health check responder.",
		Temperature: 0,
		MaxTokens:   10,
	}

	results := make([]ProbeResult, 0, len(c.providers))
	for _, p := range c.Providers() {
		text, err := p.Complete(ctx, req)
		if err != nil {
			results = append(results, ProbeResult{Provider: p.Name(), Model: p.Model(), Error: err.Error()})
			continue
		}
		results = append(results, ProbeResult{Provider: p.Name(), Model: p.Model(), OK: true, Reply: strings.TrimSpace(text)})
	}
	return results
}

// normalize applies the defaults and the sliding message window.
func normalize(chatReq models.ChatRequest) *Request {
	messages := make([]models.ChatMessage, 0, len(chatReq.Messages))
	for _, m := range chatReq.Messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, m)
	}
	if len(messages) == 0 {
		// Providers reject an empty history, substitute a greeting.
		messages = append(messages, models.ChatMessage{Role: "user", Content: "Hello"})
	}
	if len(messages) > messageWindow {
		messages = messages[len(messages)-messageWindow:]
	}

	system := chatReq.System
	if system == "" {
		system = DefaultSystemPrompt
	}

	temperature := defaultTemperature
	if chatReq.Temperature != nil {
		temperature = *chatReq.Temperature
	}
	maxTokens := defaultMaxTokens
	if chatReq.MaxTokens != nil {
		maxTokens = *chatReq.MaxTokens
	}

	return &Request{
		Messages:    messages,
		System:      system,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// MaskKey renders a credential safe for diagnostics output: first 8 and last
// 4 characters only, never the full secret.
func MaskKey(key string) string {
	switch {
	case key == "":
		return "NOT SET"
	case len(key) <= 12:
		return "(too short)"
	default:
		return key[:8] + "..." + key[len(key)-4:]
	}
}
