package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/courtside/courtside/internal/commentary"
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/inspector"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/merger"
	"github.com/courtside/courtside/internal/pipeline"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/retention"
	"github.com/courtside/courtside/internal/server"
	"github.com/courtside/courtside/internal/speech"
	"github.com/courtside/courtside/internal/store"
	"github.com/courtside/courtside/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Courtside Commentary Server")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Paths.IndexDB)
	if err != nil {
		log.Error(ctx, "Failed to open artifact index: %v", err)
		os.Exit(1)
	}
	defer st.Close()

	// Initialize dependencies
	exec := executor.New()
	broker := progress.NewBroker()

	geminiKey := config.GeminiAPIKey()
	if geminiKey == "" {
		log.Warn(ctx, "No Gemini API key configured; commentary generation will fail")
	}
	textClient := commentary.NewGeminiClient(geminiKey, cfg.Gemini.Model, cfg.Gemini.Temperature)

	var ttsClient speech.TTSClient
	if openaiKey := config.OpenAIAPIKey(); openaiKey != "" {
		ttsClient = speech.NewOpenAITTS(openaiKey, cfg.OpenAI.TTSModel, cfg.OpenAI.Voice)
		log.Info(ctx, "Speech synthesis: OpenAI (%s)", cfg.OpenAI.TTSModel)
	} else {
		ttsClient = speech.NewPlaceholderTTS()
		log.Warn(ctx, "No OpenAI API key configured; speech synthesis uses placeholder artifacts")
	}

	insp := inspector.New(cfg, exec, st, log)
	gen := commentary.New(cfg, textClient, st, log)
	synth := speech.New(cfg, ttsClient, st, log)
	mrg := merger.New(cfg, exec, st, broker, log)
	runner := pipeline.New(st, gen, synth, mrg, broker, log, cfg.StageTimeout())

	sweeper, err := retention.New(cfg.Paths.Tmp, cfg.RetentionMaxAge(), cfg.RetentionSweepInterval(), log)
	if err != nil {
		log.Error(ctx, "Failed to create retention sweeper: %v", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := sweeper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Retention sweeper error: %v", err)
		}
	}()

	srv := server.New(cfg, log, st, insp, gen, synth, mrg, runner, broker)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info(ctx, "Server running on port %d", cfg.Server.Port)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server shutdown error: %v", err)
	}

	log.Info(ctx, "Server stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Thumbnails,
		cfg.Paths.Commentaries,
		cfg.Paths.Audio,
		cfg.Paths.Results,
		cfg.Paths.Tmp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
