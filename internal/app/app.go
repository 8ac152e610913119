// Package app assembles the note-card pipeline from configuration. Both the
// HTTP server and the command-line client build their dependencies here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/events"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/cache"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/gemini"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/retry"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/service"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/transcript"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/translate"
)

// Option replaces one upstream client. Used by tests and by callers that
// already hold a client.
type Option func(*options)

type options struct {
	source     transcript.Source
	translator translate.Translator
	model      generation.Model
}

// WithTranscriptSource replaces the YouTube caption source.
func WithTranscriptSource(src transcript.Source) Option {
	return func(o *options) { o.source = src }
}

// WithTranslator replaces the Google translation client.
func WithTranslator(t translate.Translator) Option {
	return func(o *options) { o.translator = t }
}

// WithModel replaces the Gemini model.
func WithModel(m generation.Model) Option {
	return func(o *options) { o.model = m }
}

// Components holds the assembled pipeline and the resources it owns.
type Components struct {
	Config    *config.Config
	Logger    *slog.Logger
	Cache     *cache.Tiered
	Retriever *transcript.Retriever
	Service   *service.NoteCardService

	// Events receives the service's progress events. No handler is registered by default.
	Events *events.InMemoryEventEmitter

	closeFuncs []func() error
}

// New builds every component from cfg.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Components, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Components{Config: cfg, Logger: logger, Events: events.NewInMemoryEventEmitter(logger)}

	source := o.source
	if source == nil {
		source = transcript.NewYouTubeSource(
			transcript.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.Transcript.HTTPTimeoutSeconds) * time.Second,
			}),
			transcript.WithWatchBaseURL(cfg.Transcript.WatchBaseURL),
			transcript.WithRetry(transcriptRetry(cfg.Transcript)),
			transcript.WithLogger(logger),
		)
	}

	if cfg.Cache.TTLMinutes > 0 {
		c.Cache = cache.New(ctx, cache.Options{
			RedisURL:   cfg.Cache.RedisURL,
			TTL:        time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
			MaxEntries: cfg.Cache.MaxEntries,
			Logger:     logger,
		})
		c.closeFuncs = append(c.closeFuncs, c.Cache.Close)
		source = transcript.NewCachedSource(source, c.Cache)
		logger.Info("transcript cache enabled",
			"ttl_minutes", cfg.Cache.TTLMinutes,
			"redis", cfg.Cache.RedisURL != "")
	}

	var err error
	c.Retriever, err = transcript.NewRetriever(source, logger)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to create transcript retriever: %w", err))
	}

	translator := o.translator
	if translator == nil {
		translator, err = translate.NewGoogleTranslator(ctx, cfg.TranslateAPIKey(), cfg.Translate.Endpoint)
		if err != nil {
			return nil, c.closeAfter(fmt.Errorf("failed to create translation client: %w", err))
		}
	}
	gate, err := translate.NewGate(translator, logger)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to create translation gate: %w", err))
	}

	model := o.model
	if model == nil {
		model, err = gemini.NewGeminiModel(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, c.closeAfter(fmt.Errorf("failed to initialize Gemini model: %w", err))
		}
		logger.Info("Gemini model initialized", "model", cfg.LLM.ModelName)
	}

	prompts, err := generation.NewPromptBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to load prompt template: %w", err))
	}
	generator, err := generation.NewCardGenerator(model, prompts, logger)
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to create card generator: %w", err))
	}

	c.Service, err = service.NewNoteCardService(c.Retriever, gate, generator, cfg.Transcript.DefaultLanguage, logger,
		service.WithEmitter(c.Events))
	if err != nil {
		return nil, c.closeAfter(fmt.Errorf("failed to create note card service: %w", err))
	}

	return c, nil
}

// Close releases resources in reverse order of creation.
func (c *Components) Close() error {
	var firstErr error
	for i := len(c.closeFuncs) - 1; i >= 0; i-- {
		if err := c.closeFuncs[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closeFuncs = nil
	return firstErr
}

func (c *Components) closeAfter(err error) error {
	if closeErr := c.Close(); closeErr != nil {
		c.Logger.Warn("cleanup after failed startup", "error", closeErr)
	}
	return err
}

func transcriptRetry(cfg config.TranscriptConfig) retry.Config {
	rc := retry.DefaultConfig
	rc.MaxRetries = cfg.MaxRetries
	return rc
}
