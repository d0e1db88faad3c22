package search

import "strings"

// Record is one searchable topic in the knowledge hub.
type Record struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Href    string `json:"href"`
	Content string `json:"content"`
}

// Index is the static topic index. It is fixed at startup and never
// mutated, so lookups need no locking.
type Index struct {
	records []Record
}

// defaultEmptyResults is how many records an empty query returns.
const defaultEmptyResults = 5

func NewIndex() *Index {
	return &Index{records: defaultRecords}
}

// Search returns the records whose title, section or content contains the
// query, case-insensitively. An empty query returns the first few records.
func (idx *Index) Search(query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))

	if query == "" {
		n := defaultEmptyResults
		if n > len(idx.records) {
			n = len(idx.records)
		}
		return idx.records[:n]
	}

	results := []Record{}
	for _, rec := range idx.records {
		searchable := strings.ToLower(rec.Title + " " + rec.Section + " " + rec.Content)
		if strings.Contains(searchable, query) {
			results = append(results, rec)
		}
	}
	return results
}

var defaultRecords = []Record{
	{ID: "linear-regression", Title: "Linear Regression", Section: "Fundamentals", Href: "/fundamentals#linear-regression", Content: "supervised learning regression algorithm gradient descent least squares"},
	{ID: "random-forest", Title: "Random Forest", Section: "Fundamentals", Href: "/fundamentals#random-forest", Content: "ensemble decision trees classification bagging feature importance"},
	{ID: "transformers", Title: "Transformers Architecture", Section: "Fundamentals", Href: "/fundamentals#transformers", Content: "attention mechanism self-attention multi-head BERT GPT encoder decoder"},
	{ID: "gpt", Title: "GPT Series", Section: "LLMs", Href: "/llms#gpt", Content: "openai gpt-4 gpt-4o language model API function calling vision"},
	{ID: "claude", Title: "Claude API", Section: "LLMs", Href: "/llms#claude", Content: "anthropic claude sonnet haiku opus messages API tool use computer use"},
	{ID: "gemini", Title: "Gemini API", Section: "LLMs", Href: "/llms#gemini", Content: "google gemini flash pro multimodal function calling 1M context grounding"},
	{ID: "prompt-engineering", Title: "Prompt Engineering", Section: "LLMs", Href: "/llms#prompting", Content: "zero-shot few-shot chain-of-thought system prompts temperature structured output"},
	{ID: "rag", Title: "RAG Systems", Section: "Advanced", Href: "/advanced#rag", Content: "retrieval augmented generation vector database embedding semantic search"},
	{ID: "langchain", Title: "LangChain", Section: "Toolkit", Href: "/toolkit#langchain", Content: "llm framework chain agents tools memory output parsers"},
	{ID: "budget-forecast", Title: "DoD Budget Forecasting", Section: "Applied", Href: "/applied#budget", Content: "federal finance XGBoost time series appropriations OMB DoD Pentagon"},
}
