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

	"studypal-backend/internal/config"
	"studypal-backend/internal/gemini"
	"studypal-backend/internal/handlers"
	"studypal-backend/internal/router"
	"studypal-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting StudyPal Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	apiKeySet := cfg.GeminiAPIKey != ""
	if !apiKeySet {
		log.Println("⚠ GEMINI_API_KEY is not set: AI endpoints will return a configuration error")
	}

	// ──── Step 2: Initialize Gemini Client ────
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, time.Duration(cfg.GeminiTimeout)*time.Second)
	log.Printf("✓ Gemini client ready (model %s)", cfg.GeminiModel)

	// ──── Step 3: Initialize Service & Handlers ────
	tutorService := services.NewTutorService(geminiClient, apiKeySet)
	tutorHandler := handlers.NewTutorHandler(tutorService, !cfg.IsProduction())
	healthHandler := handlers.NewHealthHandler(cfg.Env, cfg.GeminiModel, apiKeySet)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(tutorHandler, healthHandler, cfg.RequestsPerMin, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	log.Printf("✓ StudyPal Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
