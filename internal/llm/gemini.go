package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"knowledgehub-backend/internal/models"
)

// GeminiProvider calls the Gemini API through the official SDK. Unlike the
// HTTP adapters it holds a long-lived client created at startup.
type GeminiProvider struct {
	apiKey string
	model  string
	client *genai.Client
}

func NewGeminiProvider(apiKey, model string) (*GeminiProvider, error) {
	p := &GeminiProvider{apiKey: apiKey, model: model}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client

	return p, nil
}

func (p *GeminiProvider) Name() string     { return "gemini" }
func (p *GeminiProvider) Model() string    { return p.model }
func (p *GeminiProvider) Configured() bool { return p.client != nil }

func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

func (p *GeminiProvider) Complete(ctx context.Context, req *Request) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("gemini: not configured")
	}

	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(req.MaxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}

	history := toGeminiContents(req.Messages)
	last := history[len(history)-1]
	session := model.StartChat()
	session.History = history[:len(history)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}

	return text, nil
}

// toGeminiContents maps the common role vocabulary onto Gemini's, where the
// assistant role is called "model". Always returns at least one entry.
func toGeminiContents(messages []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	if len(contents) == 0 {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text("Hello")},
		})
	}
	return contents
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
