// Package main implements the entry point for the note-card web server, which
// turns a video link and a keyword list into study cards.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/logger"
)

// main loads configuration, sets up logging, builds the pipeline and serves
// HTTP until interrupted. A missing credential halts startup.
func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// initializeApp loads configuration and sets up the default logger.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"target_language", cfg.Transcript.DefaultLanguage)
	slog.Debug("Cache configuration",
		"redis_url_present", cfg.Cache.RedisURL != "",
		"ttl_minutes", cfg.Cache.TTLMinutes)

	return cfg, nil
}
