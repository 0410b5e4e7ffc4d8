package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studypal-backend/internal/handlers"
	"studypal-backend/internal/middleware"
)

func New(
	tutorHandler *handlers.TutorHandler,
	healthHandler *handlers.HealthHandler,
	requestsPerMin int,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// AI rate limiter, POST endpoints only
	aiLimiter := middleware.NewRateLimiter(requestsPerMin)

	r.Get("/", healthHandler.Info)
	r.Get("/health", healthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(aiLimiter.Middleware)

		r.Post("/", tutorHandler.Prompt)
		r.Post("/proxy", tutorHandler.Proxy)

		r.Route("/api", func(r chi.Router) {
			r.Post("/chat", tutorHandler.Chat)
			r.Post("/generate-flashcards", tutorHandler.GenerateFlashcards)
			r.Post("/generate-quiz", tutorHandler.GenerateQuiz)
		})
	})

	// Everything else is a defined 404 contract, methods included.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Endpoint not found"}`))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
