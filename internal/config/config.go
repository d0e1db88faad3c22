package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Provider credentials. An empty key means the provider is not
	// configured and is skipped by the fallback chain; presence of the
	// credential is the only feature flag.
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GeminiAPIKey    string

	// Provider models
	AnthropicModel string
	OpenAIModel    string
	GeminiModel    string

	// ProviderOrder is the fallback priority, a comma-separated list of
	// provider names.
	ProviderOrder []string

	// Storage
	StoragePath   string
	MaxUploadSize int64

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:    getEnvOrDefault("GOOGLE_GEMINI_API_KEY", os.Getenv("GEMINI_API_KEY")),

		AnthropicModel: getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),

		ProviderOrder: splitList(getEnvOrDefault("PROVIDER_ORDER", "anthropic,openai,gemini")),

		StoragePath:   getEnvOrDefault("STORAGE_PATH", "./uploads"),
		MaxUploadSize: int64(getEnvAsIntOrDefault("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
