package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api/middleware"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/app"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	components  *app.Components
	handler     *api.NoteCardHandler
	rateLimiter *middleware.RateLimiter
}

// newApplication creates a new application instance with all dependencies initialized.
// The background image is read once here; a bad path fails startup.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts ...app.Option,
) (*application, error) {
	page, err := render.NewPage(cfg.UI.BackgroundImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare page: %w", err)
	}

	components, err := app.New(ctx, cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Application initialized",
		"random_colors", cfg.UI.RandomColors,
		"requests_per_minute", cfg.RateLimit.RequestsPerMinute)

	return &application{
		config:      cfg,
		logger:      logger,
		components:  components,
		handler:     api.NewNoteCardHandler(components.Service, page, render.PickerFor(cfg.UI.RandomColors), logger),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.components.Close(); err != nil {
		app.logger.Error("Error during cleanup", "error", err)
		return
	}
	app.logger.Info("Resources released")
}
