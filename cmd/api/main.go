package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jwebster45206/endless-dnd/internal/config"
	"github.com/jwebster45206/endless-dnd/internal/dice"
	"github.com/jwebster45206/endless-dnd/internal/engine"
	"github.com/jwebster45206/endless-dnd/internal/handlers"
	"github.com/jwebster45206/endless-dnd/internal/logger"
	"github.com/jwebster45206/endless-dnd/internal/services"
	"github.com/jwebster45206/endless-dnd/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Endless D&D API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "openrouter":
		llmService = services.NewOpenRouterService(cfg.OpenRouterAPIKey, cfg.ModelName, log)
		log.Info("Using OpenRouter LLM provider")
	case "anthropic":
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"openrouter", "anthropic"})
		os.Exit(1)
	}

	// Missing credentials are caught here, before any player request.
	if err := llmService.InitModel(context.Background(), cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM service", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	eng := engine.New(store, llmService, dice.NewRandomRoller(), log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, llmService, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(eng, store, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
