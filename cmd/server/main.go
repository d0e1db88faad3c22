package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knowledgehub-backend/internal/config"
	"knowledgehub-backend/internal/handlers"
	"knowledgehub-backend/internal/llm"
	"knowledgehub-backend/internal/router"
	"knowledgehub-backend/internal/search"
	"knowledgehub-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Knowledge Hub Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Build the Provider Chain ────
	gemini, err := llm.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer gemini.Close()

	byName := map[string]llm.Provider{
		"anthropic": llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel),
		"openai":    llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		"gemini":    gemini,
	}

	var ordered []llm.Provider
	for _, name := range cfg.ProviderOrder {
		p, ok := byName[name]
		if !ok {
			log.Fatalf("✗ Unknown provider %q in PROVIDER_ORDER", name)
		}
		ordered = append(ordered, p)
	}
	chain := llm.NewChain(ordered...)

	configured := 0
	for _, p := range chain.Providers() {
		log.Printf("✓ Provider configured: %s (%s)", p.Name(), p.Model())
		configured++
	}
	if configured == 0 {
		log.Println("⚠ No provider credentials set — chat will serve setup guidance")
	}

	// ──── Step 3: Initialize Storage ────
	storage, err := services.NewStorageService(cfg.StoragePath)
	if err != nil {
		log.Fatalf("✗ Storage initialization failed: %v", err)
	}
	log.Printf("✓ Storage ready at %s", cfg.StoragePath)

	// ──── Initialize Services ────
	fileExtractService := services.NewFileExtractService()
	searchIndex := search.NewIndex()

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chain, cfg.Env)
	uploadHandler := handlers.NewUploadHandler(storage, fileExtractService, chain, cfg.MaxUploadSize)
	searchHandler := handlers.NewSearchHandler(searchIndex)
	debugHandler := handlers.NewDebugHandler(chain, cfg)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(
		chatHandler,
		uploadHandler,
		searchHandler,
		debugHandler,
		storage.BasePath(),
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Knowledge Hub Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
