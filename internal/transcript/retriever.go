package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
)

// Source lists and fetches caption tracks from an upstream service.
type Source interface {
	// ListTracks returns the tracks a video offers, in upstream order.
	ListTracks(ctx context.Context, id domain.VideoID) ([]domain.Track, error)

	// FetchTrack returns the timed segments of one track.
	FetchTrack(ctx context.Context, track domain.Track) ([]domain.Segment, error)
}

// SelectTrack returns the first track in the default language, or the first
// track overall when none matches. It reports false only for an empty list.
func SelectTrack(tracks []domain.Track, defaultLang string) (domain.Track, bool) {
	if len(tracks) == 0 {
		return domain.Track{}, false
	}
	for _, t := range tracks {
		if t.LanguageCode == defaultLang {
			return t, true
		}
	}
	return tracks[0], true
}

// Retriever turns a video ID into a flattened transcript.
type Retriever struct {
	source Source
	logger *slog.Logger
}

// NewRetriever creates a Retriever over the given source.
func NewRetriever(source Source, logger *slog.Logger) (*Retriever, error) {
	if source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{source: source, logger: logger.With("component", "transcript_retriever")}, nil
}

// Retrieve fetches the transcript of a video, preferring a track in defaultLang.
// The returned Transcript's Language is the language of the selected track.
func (r *Retriever) Retrieve(ctx context.Context, id domain.VideoID, defaultLang string) (domain.Transcript, error) {
	tracks, err := r.source.ListTracks(ctx, id)
	if err != nil {
		return domain.Transcript{}, upstreamError("list_tracks", err)
	}

	track, ok := SelectTrack(tracks, defaultLang)
	if !ok {
		return domain.Transcript{}, upstreamError("list_tracks",
			fmt.Errorf("%w: video has no caption tracks", domain.ErrUpstreamEmpty))
	}

	r.logger.DebugContext(ctx, "selected caption track",
		slog.String("video_id", id.String()),
		slog.String("language", track.LanguageCode),
		slog.Bool("auto_generated", track.IsAutoGenerated()),
		slog.Int("available_tracks", len(tracks)))

	segments, err := r.source.FetchTrack(ctx, track)
	if err != nil {
		return domain.Transcript{}, upstreamError("fetch_track", err)
	}

	text := domain.JoinSegments(segments)
	if text == "" {
		return domain.Transcript{}, upstreamError("fetch_track",
			fmt.Errorf("%w: caption track %q is empty", domain.ErrUpstreamEmpty, track.LanguageCode))
	}

	return domain.Transcript{
		VideoID:            id,
		Language:           track.LanguageCode,
		Text:               text,
		AvailableLanguages: languageCodes(tracks),
	}, nil
}

// Languages lists the caption languages a video offers, in upstream order and without duplicates.
func (r *Retriever) Languages(ctx context.Context, id domain.VideoID) ([]string, error) {
	tracks, err := r.source.ListTracks(ctx, id)
	if err != nil {
		return nil, upstreamError("list_tracks", err)
	}
	return languageCodes(tracks), nil
}

func languageCodes(tracks []domain.Track) []string {
	seen := make(map[string]struct{}, len(tracks))
	codes := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.LanguageCode]; ok {
			continue
		}
		seen[t.LanguageCode] = struct{}{}
		codes = append(codes, t.LanguageCode)
	}
	return codes
}

// upstreamError wraps err for the transcript service, defaulting to
// ErrUpstreamUnavailable when err carries no sentinel of its own.
func upstreamError(step string, err error) error {
	if !errors.Is(err, domain.ErrUpstreamEmpty) &&
		!errors.Is(err, domain.ErrQuotaExceeded) &&
		!errors.Is(err, domain.ErrUpstreamUnavailable) {
		err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return domain.NewUpstreamError(domain.ServiceTranscript, step, err)
}
