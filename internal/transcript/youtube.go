package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/retry"
)

// DefaultWatchBaseURL is the public site the watch page is fetched from.
const DefaultWatchBaseURL = "https://www.youtube.com"

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

const (
	userAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxWatchPageBytes = 6 * 1024 * 1024
	maxTimedTextBytes = 2 * 1024 * 1024
	maxPlayerBytes    = 4 * 1024 * 1024

	innertubePlayerPath  = "/youtubei/v1/player"
	androidClientVersion = "20.10.38"
	androidUserAgent     = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"
)

// YouTubeSource reads caption tracks from the public watch page.
type YouTubeSource struct {
	client       *http.Client
	watchBaseURL string
	retry        retry.Config
	logger       *slog.Logger
}

// YouTubeOption configures a YouTubeSource.
type YouTubeOption func(*YouTubeSource)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) YouTubeOption {
	return func(s *YouTubeSource) { s.client = client }
}

// WithWatchBaseURL points the source at a different host, e.g. an httptest server.
func WithWatchBaseURL(baseURL string) YouTubeOption {
	return func(s *YouTubeSource) { s.watchBaseURL = strings.TrimRight(baseURL, "/") }
}

// WithRetry sets the retry policy for upstream requests.
func WithRetry(rc retry.Config) YouTubeOption {
	return func(s *YouTubeSource) { s.retry = rc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) YouTubeOption {
	return func(s *YouTubeSource) { s.logger = logger }
}

// NewYouTubeSource creates a YouTubeSource with sensible defaults.
func NewYouTubeSource(opts ...YouTubeOption) *YouTubeSource {
	s := &YouTubeSource{
		client:       &http.Client{Timeout: 20 * time.Second},
		watchBaseURL: DefaultWatchBaseURL,
		retry:        retry.DefaultConfig,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "youtube_source")
	if s.retry.Logger == nil {
		s.retry.Logger = s.logger
	}
	return s
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Name.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type innertubeRequest struct {
	VideoID        string           `json:"videoId"`
	Context        innertubeContext `json:"context"`
	RacyCheckOk    bool             `json:"racyCheckOk"`
	ContentCheckOk bool             `json:"contentCheckOk"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

// timedText covers both the classic <transcript><text> layout and the
// <timedtext><body><p> layout.
type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
	Paragraphs []struct {
		T     string   `xml:"t,attr"`
		D     string   `xml:"d,attr"`
		Text  string   `xml:",chardata"`
		Spans []string `xml:"s"`
	} `xml:"body>p"`
}

// ListTracks implements Source.
//
// Tracks whose URL carries exp=xpe need a browser-issued PoToken and cannot be
// fetched server-side. When the watch page offers any such track, the list is
// taken from the ANDROID innertube player instead, which serves plain URLs in
// the same upstream order.
func (s *YouTubeSource) ListTracks(ctx context.Context, id domain.VideoID) ([]domain.Track, error) {
	watchURL := s.watchBaseURL + "/watch?v=" + url.QueryEscape(id.String())

	body, err := s.get(ctx, watchURL, maxWatchPageBytes, func(req *http.Request) {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		// Skips the cookie consent interstitial served to some regions.
		req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+1"})
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, fmt.Errorf("%w: player response not found in watch page", domain.ErrUpstreamUnavailable)
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, fmt.Errorf("%w: player response is not valid JSON", domain.ErrUpstreamUnavailable)
	}

	captionTracks, err := decodeCaptionTracks(raw)
	if err != nil {
		return nil, err
	}
	if !anyNeedsPoToken(captionTracks) {
		return s.toTracks(ctx, captionTracks)
	}

	s.logger.InfoContext(ctx, "watch page tracks need a PoToken, listing through the android player",
		slog.String("video_id", id.String()))
	androidTracks, err := s.listAndroidTracks(ctx, id)
	if err == nil && len(androidTracks) > 0 && !anyNeedsPoToken(androidTracks) {
		return s.toTracks(ctx, androidTracks)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "android player fallback failed",
			slog.String("video_id", id.String()), slog.Any("error", err))
	}

	usable := make([]captionTrack, 0, len(captionTracks))
	for _, ct := range captionTracks {
		if !needsPoToken(ct.BaseURL) {
			usable = append(usable, ct)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: every caption track requires a PoToken", domain.ErrUpstreamEmpty)
	}
	return s.toTracks(ctx, usable)
}

// listAndroidTracks asks the innertube /player endpoint for the caption
// tracks, posing as the ANDROID app.
func (s *YouTubeSource) listAndroidTracks(ctx context.Context, id domain.VideoID) ([]captionTrack, error) {
	payload, err := json.Marshal(innertubeRequest{
		VideoID: id.String(),
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidClientVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	body, err := s.post(ctx, s.watchBaseURL+innertubePlayerPath+"?prettyPrint=false", payload, func(req *http.Request) {
		req.Header.Set("User-Agent", androidUserAgent)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", androidClientVersion)
	})
	if err != nil {
		return nil, fmt.Errorf("android player: %w", err)
	}
	return decodeCaptionTracks(body)
}

// decodeCaptionTracks reads the caption track list out of a player response.
func decodeCaptionTracks(raw []byte) ([]captionTrack, error) {
	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("%w: decode player response: %v", domain.ErrUpstreamUnavailable, err)
	}

	if player.Captions == nil {
		if ps := player.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
			reason := ps.Reason
			if reason == "" {
				reason = ps.Status
			}
			return nil, fmt.Errorf("%w: video is not playable: %s", domain.ErrUpstreamEmpty, reason)
		}
		return nil, fmt.Errorf("%w: captions are disabled for this video", domain.ErrUpstreamEmpty)
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// toTracks converts caption tracks to domain tracks, resolving relative URLs
// against the watch host.
func (s *YouTubeSource) toTracks(ctx context.Context, captionTracks []captionTrack) ([]domain.Track, error) {
	base, err := url.Parse(s.watchBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid watch base URL: %w", err)
	}

	tracks := make([]domain.Track, 0, len(captionTracks))
	for _, ct := range captionTracks {
		if ct.BaseURL == "" || ct.LanguageCode == "" {
			continue
		}
		ref, err := url.Parse(ct.BaseURL)
		if err != nil {
			s.logger.DebugContext(ctx, "skipping caption track with bad URL",
				slog.String("language", ct.LanguageCode), slog.Any("error", err))
			continue
		}
		tracks = append(tracks, domain.Track{
			LanguageCode: ct.LanguageCode,
			Name:         ct.displayName(),
			Kind:         ct.Kind,
			BaseURL:      base.ResolveReference(ref).String(),
		})
	}
	return tracks, nil
}

// needsPoToken reports whether a caption URL is gated behind a PoToken.
func needsPoToken(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return strings.Contains(baseURL, "exp=xpe")
	}
	for _, exp := range u.Query()["exp"] {
		if exp == "xpe" {
			return true
		}
	}
	return false
}

func anyNeedsPoToken(tracks []captionTrack) bool {
	for _, ct := range tracks {
		if needsPoToken(ct.BaseURL) {
			return true
		}
	}
	return false
}

// FetchTrack implements Source.
func (s *YouTubeSource) FetchTrack(ctx context.Context, track domain.Track) ([]domain.Segment, error) {
	body, err := s.get(ctx, track.BaseURL, maxTimedTextBytes, nil)
	if err != nil {
		return nil, fmt.Errorf("timed text: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: timed text is empty", domain.ErrUpstreamEmpty)
	}

	segments, err := ParseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return segments, nil
}

// ParseTimedText decodes a timed-text XML document into segments.
// Caption text is HTML-escaped inside the XML, so entities are unescaped after decoding.
func ParseTimedText(data []byte) ([]domain.Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timed text XML: %w", err)
	}

	segments := make([]domain.Segment, 0, len(tt.Texts)+len(tt.Paragraphs))
	for _, t := range tt.Texts {
		segments = append(segments, domain.Segment{
			Text:     cleanCaption(t.Text),
			Start:    parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
		})
	}
	for _, p := range tt.Paragraphs {
		text := p.Text
		if len(p.Spans) > 0 {
			text = strings.Join(p.Spans, "")
		}
		segments = append(segments, domain.Segment{
			Text:     cleanCaption(text),
			Start:    parseMillis(p.T),
			Duration: parseMillis(p.D),
		})
	}
	return segments, nil
}

func cleanCaption(s string) string {
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseMillis(s string) float64 {
	return parseSeconds(s) / 1000
}

// get fetches rawURL with retries and returns at most limit bytes of the body.
func (s *YouTubeSource) get(ctx context.Context, rawURL string, limit int64, decorate func(*http.Request)) ([]byte, error) {
	return s.do(ctx, http.MethodGet, rawURL, nil, limit, decorate)
}

// post sends a JSON payload with retries.
func (s *YouTubeSource) post(ctx context.Context, rawURL string, payload []byte, decorate func(*http.Request)) ([]byte, error) {
	return s.do(ctx, http.MethodPost, rawURL, payload, maxPlayerBytes, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
		if decorate != nil {
			decorate(req)
		}
	})
}

func (s *YouTubeSource) do(ctx context.Context, method, rawURL string, payload []byte, limit int64, decorate func(*http.Request)) ([]byte, error) {
	body, err := retry.Do(ctx, s.retry, func(ctx context.Context) ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		if decorate != nil {
			decorate(req)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
			return nil, &retry.StatusError{StatusCode: resp.StatusCode}
		}

		return io.ReadAll(io.LimitReader(resp.Body, limit))
	})
	if err != nil {
		return nil, classifyHTTPError(err)
	}
	return body, nil
}

// classifyHTTPError attaches the matching domain sentinel to a transport error.
func classifyHTTPError(err error) error {
	var statusErr *retry.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
		case statusErr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %w", domain.ErrUpstreamEmpty, err)
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

// extractJSON returns the leading balanced JSON object of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
