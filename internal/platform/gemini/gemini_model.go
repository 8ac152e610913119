package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/retry"
	"google.golang.org/genai"
)

// contentGenerator is the subset of the genai client the model uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiModel implements the generation.Model interface using Google's Gemini API.
type GeminiModel struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client makes the API requests
	client contentGenerator

	// genConfig is sent with every request
	genConfig *genai.GenerateContentConfig
}

// NewGeminiModel creates a GeminiModel with a real Gemini client.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized GeminiModel or an error if initialization fails
func NewGeminiModel(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiModel, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	cfg, err := validateConfig(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGeminiModel(client.Models, logger, cfg), nil
}

func newGeminiModel(client contentGenerator, logger *slog.Logger, cfg config.LLMConfig) *GeminiModel {
	return &GeminiModel{
		logger: logger.With("component", "gemini_model", "model", cfg.ModelName),
		config: cfg,
		client: client,
		genConfig: &genai.GenerateContentConfig{
			Temperature:      float32Ptr(cfg.Temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	}
}

// ResponseSchema describes the structured note-card contract to the API.
// It mirrors generation.ResponseSchema.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cards": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString, Description: "Card heading without numbering"},
						"points": {
							Type:        genai.TypeArray,
							Description: "One entry per point, without bullet characters",
							Items:       &genai.Schema{Type: genai.TypeString},
						},
						"code": {Type: genai.TypeString, Description: "Optional code example"},
					},
					Required: []string{"title", "points"},
				},
			},
		},
		Required: []string{"cards"},
	}
}

// Complete implements generation.Model.
//
// It attempts the call up to MaxRetries+1 times, using exponential backoff
// with jitter between attempts for transient errors. Permanent errors (like
// content being blocked by safety filters) are returned immediately.
func (m *GeminiModel) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.NewUpstreamError(domain.ServiceGenerate, "complete",
			fmt.Errorf("%w: %w: prompt is empty", domain.ErrUpstreamUnavailable, generation.ErrInvalidConfig))
	}

	rc := retry.Config{
		MaxRetries:  m.config.MaxRetries,
		InitialWait: time.Duration(m.config.RetryDelaySeconds) * time.Second,
		MaxWait:     30 * time.Second,
		Multiplier:  2,
		Retryable:   isRetryable,
		Logger:      m.logger,
	}

	attempt := 0
	text, err := retry.Do(ctx, rc, func(ctx context.Context) (string, error) {
		attempt++
		m.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attempt,
			"max_attempts", rc.MaxRetries+1)
		return m.callOnce(ctx, prompt)
	})
	if err != nil {
		m.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempts", attempt,
			"error", err)
		return "", domain.NewUpstreamError(domain.ServiceGenerate, "complete", mapError(err))
	}

	m.logger.InfoContext(ctx, "Gemini API call successful",
		"attempts", attempt,
		"response_length", len(text))
	return text, nil
}

func (m *GeminiModel) callOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.GenerateContent(ctx, m.config.ModelName, genai.Text(prompt), m.genConfig)
	if err != nil {
		return "", err
	}

	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: %w: nil response", domain.ErrUpstreamEmpty, generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0:
		return "", fmt.Errorf("%w: %w: no content generated", domain.ErrUpstreamEmpty, generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamEmpty, generation.ErrContentBlocked)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: %w: empty content in response", domain.ErrUpstreamEmpty, generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w: empty text in response", domain.ErrUpstreamEmpty, generation.ErrInvalidResponse)
	}
	return text, nil
}

func float32Ptr(v float32) *float32 {
	return &v
}
