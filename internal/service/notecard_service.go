package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/events"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/generation"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/logger"
)

// TranscriptRetriever fetches the transcript for a video.
type TranscriptRetriever interface {
	Retrieve(ctx context.Context, id domain.VideoID, defaultLang string) (domain.Transcript, error)
}

// TranslationGate translates a transcript when its language differs from the target.
type TranslationGate interface {
	Apply(ctx context.Context, t domain.Transcript, targetLang string) (domain.Transcript, error)
}

// CardGenerator produces cards from a transcript and keywords.
type CardGenerator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.ParseResult, error)
}

// GenerateInput is one user interaction.
type GenerateInput struct {
	URL      string
	Keywords string
}

// GenerateResult is the outcome of a successful interaction.
type GenerateResult struct {
	VideoID    domain.VideoID
	Transcript domain.Transcript
	Cards      []domain.Card
	Mode       generation.Mode
}

// NoteCardService runs the note-card pipeline.
type NoteCardService struct {
	transcripts    TranscriptRetriever
	translations   TranslationGate
	generator      CardGenerator
	targetLanguage string
	emitter        events.EventEmitter
	logger         *slog.Logger
}

// Option configures a NoteCardService.
type Option func(*NoteCardService)

// WithEmitter publishes progress events for every pipeline step.
func WithEmitter(e events.EventEmitter) Option {
	return func(s *NoteCardService) { s.emitter = e }
}

// NewNoteCardService creates a NoteCardService. targetLanguage is the language
// cards are written in; empty means "en".
func NewNoteCardService(
	transcripts TranscriptRetriever,
	translations TranslationGate,
	generator CardGenerator,
	targetLanguage string,
	logger *slog.Logger,
	opts ...Option,
) (*NoteCardService, error) {
	if transcripts == nil {
		return nil, errors.New("transcript retriever cannot be nil")
	}
	if translations == nil {
		return nil, errors.New("translation gate cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("card generator cannot be nil")
	}
	if targetLanguage == "" {
		targetLanguage = "en"
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &NoteCardService{
		transcripts:    transcripts,
		translations:   translations,
		generator:      generator,
		targetLanguage: targetLanguage,
		logger:         logger.With("component", "notecard_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TargetLanguage returns the language cards are written in.
func (s *NoteCardService) TargetLanguage() string {
	return s.targetLanguage
}

// Preview parses a link without calling any upstream service.
func (s *NoteCardService) Preview(rawURL string) (domain.VideoID, error) {
	id, err := domain.ExtractVideoID(rawURL)
	if err != nil {
		return "", NewStepError(StepParseURL, "invalid video link", err)
	}
	return id, nil
}

// Generate runs the whole pipeline for in.
func (s *NoteCardService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	log := s.logger
	if reqID := logger.RequestID(ctx); reqID != "" {
		log = log.With(slog.String("request_id", reqID))
	}

	keywords := strings.TrimSpace(in.Keywords)
	if keywords == "" {
		return nil, NewStepError(StepValidateInput, "keywords are required",
			domain.NewValidationError("keywords", "please enter keywords", domain.ErrEmptyKeywords))
	}

	id, err := s.Preview(in.URL)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.String("video_id", id.String()))
	p := progress{emitter: s.emitter, logger: log, runID: uuid.New(), videoID: id.String()}

	p.emit(ctx, StepRetrieveTranscript, events.StatusStarted, "Extracting transcript...")
	log.InfoContext(ctx, "Extracting transcript...")
	transcript, err := s.transcripts.Retrieve(ctx, id, s.targetLanguage)
	if err != nil {
		log.WarnContext(ctx, "transcript retrieval failed", slog.String("kind", string(domain.Classify(err))))
		p.emit(ctx, StepRetrieveTranscript, events.StatusFailed, "could not retrieve transcript")
		return nil, NewStepError(StepRetrieveTranscript, "could not retrieve transcript", err)
	}
	p.emit(ctx, StepRetrieveTranscript, events.StatusCompleted, "Transcript extracted")

	translated, err := s.translations.Apply(ctx, transcript, s.targetLanguage)
	if err != nil {
		log.WarnContext(ctx, "transcript translation failed",
			slog.String("source_language", transcript.Language),
			slog.String("kind", string(domain.Classify(err))))
		p.emit(ctx, StepTranslate, events.StatusFailed, "could not translate transcript")
		return nil, NewStepError(StepTranslate, "could not translate transcript", err)
	}
	transcript = translated
	if transcript.Translated {
		p.emit(ctx, StepTranslate, events.StatusCompleted,
			"Transcript translated from "+transcript.SourceLanguage+" to "+transcript.Language)
	}

	p.emit(ctx, StepGenerateCards, events.StatusStarted, "Generating note cards...")
	log.InfoContext(ctx, "Generating note cards...",
		slog.String("language", transcript.Language),
		slog.Bool("translated", transcript.Translated))
	result, err := s.generator.Generate(ctx, generation.Request{
		Transcript: transcript.Text,
		Keywords:   keywords,
		Language:   s.targetLanguage,
	})
	if err != nil {
		log.WarnContext(ctx, "card generation failed", slog.String("kind", string(domain.Classify(err))))
		p.emit(ctx, StepGenerateCards, events.StatusFailed, "could not generate note cards")
		return nil, NewStepError(StepGenerateCards, "could not generate note cards", err)
	}

	log.InfoContext(ctx, "note cards generated",
		slog.Int("cards", len(result.Cards)),
		slog.String("mode", string(result.Mode)))
	p.emit(ctx, StepGenerateCards, events.StatusCompleted, "Note cards generated")

	return &GenerateResult{
		VideoID:    id,
		Transcript: transcript,
		Cards:      result.Cards,
		Mode:       result.Mode,
	}, nil
}

// progress emits the events of one pipeline run. Emit failures are logged only.
type progress struct {
	emitter events.EventEmitter
	logger  *slog.Logger
	runID   uuid.UUID
	videoID string
}

func (p progress) emit(ctx context.Context, step string, status events.Status, message string) {
	if p.emitter == nil {
		return
	}
	event := events.NewProgressEvent(p.runID, step, status, p.videoID, message)
	if err := p.emitter.EmitEvent(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "failed to emit progress event",
			slog.String("step", step),
			slog.String("error", err.Error()))
	}
}
