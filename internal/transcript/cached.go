package transcript

import (
	"context"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/cache"
)

// CachedSource remembers track lists and segments of another Source.
// Only successful, non-empty results are cached.
type CachedSource struct {
	next  Source
	cache *cache.Tiered
}

// NewCachedSource wraps next with the given cache.
func NewCachedSource(next Source, c *cache.Tiered) *CachedSource {
	return &CachedSource{next: next, cache: c}
}

// ListTracks implements Source.
func (s *CachedSource) ListTracks(ctx context.Context, id domain.VideoID) ([]domain.Track, error) {
	key := cache.Key("tracks", id.String())
	if tracks, ok := cache.GetJSON[[]domain.Track](ctx, s.cache, key); ok {
		return tracks, nil
	}

	tracks, err := s.next.ListTracks(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		cache.SetJSON(ctx, s.cache, key, tracks)
	}
	return tracks, nil
}

// FetchTrack implements Source.
func (s *CachedSource) FetchTrack(ctx context.Context, track domain.Track) ([]domain.Segment, error) {
	key := cache.Key("segments", track.BaseURL)
	if segments, ok := cache.GetJSON[[]domain.Segment](ctx, s.cache, key); ok {
		return segments, nil
	}

	segments, err := s.next.FetchTrack(ctx, track)
	if err != nil {
		return nil, err
	}
	if len(segments) > 0 {
		cache.SetJSON(ctx, s.cache, key, segments)
	}
	return segments, nil
}
