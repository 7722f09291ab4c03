package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/config"
	"github.com/rahhal10/Final-Backend/internal/logging"
	"github.com/rahhal10/Final-Backend/internal/repository"
	"github.com/rahhal10/Final-Backend/internal/service"
	handler "github.com/rahhal10/Final-Backend/internal/transport/http"
	"github.com/rahhal10/Final-Backend/policy"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("route_prefix", cfg.RoutePrefix).
		Str("inference_url", cfg.InferenceURL).
		Str("assistant_mode", cfg.AssistantMode).
		Msg("Starting LearnHub backend")
	if cfg.InferenceURL == "" && cfg.AssistantMode == "" {
		log.Warn().Msg("INFERENCE_URL is not set; assistant requests will fail")
	}

	ctx := context.Background()

	// Initialize store
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer db.Close()

	// Initialize inference client
	inferenceClient := inference.NewInferenceClient(cfg.AssistantMode, cfg.InferenceURL, cfg.InferenceAPIKey, cfg.InferenceTimeout)

	// Initialize policy engine
	policyEngine, err := policy.NewEngineFromFile(ctx, cfg.PolicyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize policy engine")
	}

	// Initialize service
	svc := service.New(db, inferenceClient, cfg, policyEngine)

	server := handler.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server gracefully")
	}

	log.Info().Msg("LearnHub backend stopped")
}
