package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// Model defines the interface for the generative text service.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Model interface {
	// Complete sends a single prompt and returns the free-text completion.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - prompt: The fully rendered instruction prompt
	//
	// Returns:
	//   - The completion text
	//   - An error wrapping one of the domain upstream sentinels if the call fails
	Complete(ctx context.Context, prompt string) (string, error)
}

// CardGenerator builds the prompt, calls the model and parses its completion.
type CardGenerator struct {
	model   Model
	prompts *PromptBuilder
	logger  *slog.Logger
}

// NewCardGenerator creates a CardGenerator. A nil PromptBuilder selects the built-in template.
func NewCardGenerator(model Model, prompts *PromptBuilder, logger *slog.Logger) (*CardGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model cannot be nil", ErrInvalidConfig)
	}
	if prompts == nil {
		prompts = defaultBuilder
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardGenerator{
		model:   model,
		prompts: prompts,
		logger:  logger.With("component", "card_generator"),
	}, nil
}

// Generate produces note cards for req.
//
// The card count is not enforced: a completion outside the requested
// MinCards..MaxCards range is logged and returned as is.
func (g *CardGenerator) Generate(ctx context.Context, req Request) (*ParseResult, error) {
	prompt, err := g.prompts.Build(req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "prompt built",
		slog.Int("prompt_length", len(prompt)),
		slog.Int("transcript_length", len(req.Transcript)))

	completion, err := g.model.Complete(ctx, prompt)
	if err != nil {
		return nil, upstreamError("complete", err)
	}

	result, err := ParseResponse(completion)
	if err != nil {
		g.logger.WarnContext(ctx, "model response contained no note cards",
			slog.Int("response_length", len(completion)))
		return nil, upstreamError("parse_response", err)
	}

	if n := len(result.Cards); n < MinCards || n > MaxCards {
		g.logger.WarnContext(ctx, "card count outside requested range",
			slog.Int("cards", n),
			slog.Int("min", MinCards),
			slog.Int("max", MaxCards))
	}
	if result.Mode == ModeMarker {
		g.logger.InfoContext(ctx, "model ignored the JSON contract, used marker fallback",
			slog.Int("cards", len(result.Cards)))
	}
	if result.Dropped > 0 {
		g.logger.WarnContext(ctx, "dropped invalid cards", slog.Int("dropped", result.Dropped))
	}

	return result, nil
}

// upstreamError wraps err for the generate service unless it already is one.
func upstreamError(step string, err error) error {
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return err
	}
	if !errors.Is(err, domain.ErrUpstreamEmpty) &&
		!errors.Is(err, domain.ErrQuotaExceeded) &&
		!errors.Is(err, domain.ErrUpstreamUnavailable) {
		err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return domain.NewUpstreamError(domain.ServiceGenerate, step, err)
}
