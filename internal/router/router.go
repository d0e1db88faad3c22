package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"knowledgehub-backend/internal/handlers"
	"knowledgehub-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	uploadHandler *handlers.UploadHandler,
	searchHandler *handlers.SearchHandler,
	debugHandler *handlers.DebugHandler,
	uploadsDir string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{frontendURL},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Upload limiter (20 req/min per IP); the chat proxy is deliberately
	// unthrottled here.
	uploadLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/chat", chatHandler.Complete)

	r.Route("/upload", func(r chi.Router) {
		r.With(uploadLimiter.Middleware).Post("/", uploadHandler.Upload)
		r.Get("/", uploadHandler.List)
	})

	r.Get("/search", searchHandler.Search)
	r.Get("/debug", debugHandler.Probe)

	// Stored documents are served as-is
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
