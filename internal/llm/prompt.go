package llm

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is used whenever the caller does not supply one.
const DefaultSystemPrompt = `You are an expert AI/ML knowledge assistant for the AI/ML Knowledge Hub.
You specialize in:
- Machine learning algorithms (supervised, unsupervised, reinforcement learning)
- Deep learning and neural networks
- Large Language Models (GPT, Claude, Gemini, Llama)
- Prompt engineering and agentic AI systems
- Python ML libraries (scikit-learn, PyTorch, TensorFlow, XGBoost)
- Federal finance and DoD applications of AI/ML
- Production deployment of ML systems

Provide concise, accurate, technically precise answers. Use code examples when helpful.
Format responses in markdown when appropriate. Be direct and practical.`

// probePrompt is the fixed message used by the diagnostic probe.
const probePrompt = "Reply with exactly: OK"

// analysisContentLimit bounds how much document text is embedded in the
// analysis prompt.
const analysisContentLimit = 3000

func buildAnalysisPrompt(filename, content string) string {
	if len(content) > analysisContentLimit {
		content = content[:analysisContentLimit]
	}

	return fmt.Sprintf(`Analyze this document and provide:
1. A 2-3 sentence summary
2. 3-5 key insights or concepts (especially ML/AI related ones)

Document name: %s
Content (first 3000 chars):
%s

Respond in JSON format:
{
  "summary": "...",
  "insights": ["...", "...", "..."]
}`, filename, content)
}

// stripCodeFences removes a surrounding ```json ... ``` block, which models
// frequently wrap JSON output in despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
