package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// Translator converts text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// NeedsTranslation reports whether text in trackLang must be translated to reach targetLang.
// Language codes are compared exactly, so "en" and "en-US" differ.
func NeedsTranslation(trackLang, targetLang string) bool {
	return trackLang != targetLang
}

// Gate translates transcripts that are not already in the target language.
type Gate struct {
	translator Translator
	logger     *slog.Logger
}

// NewGate creates a Gate around the given translator.
func NewGate(translator Translator, logger *slog.Logger) (*Gate, error) {
	if translator == nil {
		return nil, fmt.Errorf("translator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{translator: translator, logger: logger.With("component", "translate_gate")}, nil
}

// Apply returns the transcript in targetLang. The translator is only called when
// NeedsTranslation is true, and then with the whole text in one call. A failed
// translation fails the operation; the untranslated text is never returned in its place.
func (g *Gate) Apply(ctx context.Context, t domain.Transcript, targetLang string) (domain.Transcript, error) {
	if !NeedsTranslation(t.Language, targetLang) {
		return t, nil
	}

	g.logger.InfoContext(ctx, "translating transcript",
		slog.String("video_id", t.VideoID.String()),
		slog.String("from", t.Language),
		slog.String("to", targetLang),
		slog.Int("chars", len(t.Text)))

	translated, err := g.translator.Translate(ctx, t.Text, targetLang)
	if err != nil {
		return domain.Transcript{}, upstreamError(err)
	}
	if translated == "" {
		return domain.Transcript{}, upstreamError(fmt.Errorf("%w: translation is empty", domain.ErrUpstreamEmpty))
	}

	out := t
	out.Text = translated
	out.Translated = true
	out.SourceLanguage = t.Language
	out.Language = targetLang
	return out, nil
}

func upstreamError(err error) error {
	if !errors.Is(err, domain.ErrUpstreamEmpty) &&
		!errors.Is(err, domain.ErrQuotaExceeded) &&
		!errors.Is(err, domain.ErrUpstreamUnavailable) {
		err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return domain.NewUpstreamError(domain.ServiceTranslate, "translate", err)
}
