package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pamten/resume-backend/internal/resume/handler"
	"github.com/pamten/resume-backend/internal/resume/server"
	"github.com/pamten/resume-backend/pkg/config"
	"github.com/pamten/resume-backend/pkg/logger"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadWithValidation(handler.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(handler.ServiceName, cfg.Server.Environment)
	log.Info().
		Str("llm_provider", cfg.LLM.Provider).
		Str("llm_model", cfg.LLM.ModelName()).
		Msg("starting Resume Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize service
	svc, closeLLM, err := server.NewService(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize resume service")
	}
	defer closeLLM()

	// Create router
	h := handler.NewHandler(svc, cfg.Upload.MaxSize, log)
	srv := server.NewHTTPServer(cfg, server.NewRouter(h, cfg, log))

	// Start server
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
