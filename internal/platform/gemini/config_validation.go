package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
)

// Fallbacks used when retry settings are out of range.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// validateConfig checks the settings the model cannot run without and
// normalises the retry settings it can fall back on.
//
// Parameters:
//   - ctx: Context for logging and cancellation
//   - logger: Logger for recording validation results
//   - cfg: The LLM configuration to validate
//
// Returns:
//   - The configuration with retry settings normalised
//   - An error if validation fails
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (config.LLMConfig, error) {
	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return cfg, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		logger.WarnContext(ctx, "Invalid MaxRetries value, using default",
			"value", cfg.MaxRetries,
			"default", defaultMaxRetries)
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryDelaySeconds < 0 {
		logger.WarnContext(ctx, "Invalid RetryDelaySeconds value, using default",
			"value", cfg.RetryDelaySeconds,
			"default", defaultRetryDelaySeconds)
		cfg.RetryDelaySeconds = defaultRetryDelaySeconds
	}

	return cfg, nil
}
