package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/cache"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoID domain.VideoID = "dQw4w9WgXcQ"

func watchPage(playerJSON string) string {
	return `<html><head><script>var ytInitialPlayerResponse = ` + playerJSON +
		`;var meta = {"x":1};</script></head><body></body></html>`
}

func captionsJSON(tracks string) string {
	return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		tracks + `]}},"videoDetails":{"title":"A \"quoted\" {title}"}}`
}

const englishTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.2">Hello</text>` +
	`<text start="1.7" dur="2">world &amp;amp; friends</text>` +
	`<text start="3.7" dur="1">it&amp;#39;s   here</text>` +
	`</transcript>`

func fastRetry() retry.Config {
	return retry.Config{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}
}

// newTestServer serves a watch page listing the given tracks (relative base URLs)
// and the English timed text at /api/timedtext.
func newTestServer(t *testing.T, page string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testVideoID.String(), r.URL.Query().Get("v"))
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("lang") {
		case "en":
			fmt.Fprint(w, englishTimedText)
		case "de":
			fmt.Fprint(w, `<timedtext format="3"><body><p t="0" d="1500">Hallo</p><p t="1500" d="900"><s>Wel</s><s>t</s></p></body></timedtext>`)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSource(srv *httptest.Server) *YouTubeSource {
	return NewYouTubeSource(
		WithHTTPClient(srv.Client()),
		WithWatchBaseURL(srv.URL+"/"),
		WithRetry(fastRetry()),
	)
}

func TestYouTubeSourceListTracks(t *testing.T) {
	page := watchPage(captionsJSON(
		`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=de","languageCode":"de","name":{"simpleText":"German"}},` +
			`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=en&kind=asr","languageCode":"en","kind":"asr","name":{"runs":[{"text":"English (auto-generated)"}]}}`,
	))
	srv := newTestServer(t, page)

	tracks, err := newSource(srv).ListTracks(context.Background(), testVideoID)

	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "de", tracks[0].LanguageCode)
	assert.Equal(t, "German", tracks[0].Name)
	assert.Equal(t, srv.URL+"/api/timedtext?v=dQw4w9WgXcQ&lang=de", tracks[0].BaseURL)
	assert.Equal(t, "en", tracks[1].LanguageCode)
	assert.True(t, tracks[1].IsAutoGenerated())
	assert.Equal(t, "English (auto-generated)", tracks[1].Name)
}

func TestYouTubeSourceFetchTrack(t *testing.T) {
	srv := newTestServer(t, "")
	src := newSource(srv)

	t.Run("classic layout", func(t *testing.T) {
		segments, err := src.FetchTrack(context.Background(), domain.Track{BaseURL: srv.URL + "/api/timedtext?lang=en"})

		require.NoError(t, err)
		require.Len(t, segments, 3)
		assert.Equal(t, domain.Segment{Text: "Hello", Start: 0.5, Duration: 1.2}, segments[0])
		assert.Equal(t, "world & friends", segments[1].Text)
		assert.Equal(t, "it's here", segments[2].Text)
	})

	t.Run("paragraph layout", func(t *testing.T) {
		segments, err := src.FetchTrack(context.Background(), domain.Track{BaseURL: srv.URL + "/api/timedtext?lang=de"})

		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, "Hallo", segments[0].Text)
		assert.InDelta(t, 1.5, segments[0].Duration, 1e-9)
		assert.Equal(t, "Welt", segments[1].Text)
	})

	t.Run("missing track is upstream empty", func(t *testing.T) {
		_, err := src.FetchTrack(context.Background(), domain.Track{BaseURL: srv.URL + "/api/timedtext?lang=xx"})

		assert.ErrorIs(t, err, domain.ErrUpstreamEmpty)
	})
}

func TestYouTubeSourceEndToEnd(t *testing.T) {
	page := watchPage(captionsJSON(
		`{"baseUrl":"/api/timedtext?lang=de","languageCode":"de"},{"baseUrl":"/api/timedtext?lang=en","languageCode":"en"}`,
	))
	srv := newTestServer(t, page)
	r, err := NewRetriever(newSource(srv), nil)
	require.NoError(t, err)

	got, err := r.Retrieve(context.Background(), testVideoID, "en")

	require.NoError(t, err)
	assert.Equal(t, "Hello world & friends it's here", got.Text)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, []string{"de", "en"}, got.AvailableLanguages)
}

func TestYouTubeSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind domain.Kind
	}{
		{
			name: "captions disabled",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, watchPage(`{"playabilityStatus":{"status":"OK"}}`))
			},
			wantKind: domain.KindUpstreamEmpty,
		},
		{
			name: "private video",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, watchPage(`{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"This video is private"}}`))
			},
			wantKind: domain.KindUpstreamEmpty,
		},
		{
			name: "no player response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<html>consent required</html>")
			},
			wantKind: domain.KindUpstreamUnavailable,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantKind: domain.KindQuotaExceeded,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantKind: domain.KindUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			r, err := NewRetriever(newSource(srv), nil)
			require.NoError(t, err)

			_, err = r.Retrieve(context.Background(), testVideoID, "en")

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.Classify(err), "error: %v", err)
		})
	}
}

func TestYouTubeSourceRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, englishTimedText)
	}))
	defer srv.Close()

	segments, err := newSource(srv).FetchTrack(context.Background(), domain.Track{BaseURL: srv.URL})

	require.NoError(t, err)
	assert.Len(t, segments, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `{"a":1};rest`, `{"a":1}`},
		{"nested", `{"a":{"b":[{}]}} tail`, `{"a":{"b":[{}]}}`},
		{"braces in strings", `{"a":"}{"};`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"x\"}"}x`, `{"a":"x\"}"}`},
		{"escaped backslash", `{"a":"x\\"}x`, `{"a":"x\\"}`},
		{"not an object", `[1,2]`, ``},
		{"unterminated", `{"a":1`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(extractJSON([]byte(tt.input))))
		})
	}
}

func TestCachedSource(t *testing.T) {
	c := cache.New(context.Background(), cache.Options{TTL: time.Minute, MaxEntries: 10})
	defer c.Close()

	inner := staticSource([]domain.Track{{LanguageCode: "en", BaseURL: "u-en"}}, []domain.Segment{{Text: "hi"}})
	src := NewCachedSource(inner, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tracks, err := src.ListTracks(ctx, testVideoID)
		require.NoError(t, err)
		require.Len(t, tracks, 1)

		segments, err := src.FetchTrack(ctx, tracks[0])
		require.NoError(t, err)
		assert.Equal(t, "hi", segments[0].Text)
	}

	assert.Equal(t, 1, inner.listCalls)
	assert.Equal(t, 1, inner.fetchCalls)
}

func TestCachedSourceDoesNotCacheFailures(t *testing.T) {
	c := cache.New(context.Background(), cache.Options{TTL: time.Minute})
	defer c.Close()

	inner := staticSource(nil, nil)
	src := NewCachedSource(inner, c)

	for i := 0; i < 2; i++ {
		tracks, err := src.ListTracks(context.Background(), testVideoID)
		require.NoError(t, err)
		assert.Empty(t, tracks)
	}
	assert.Equal(t, 2, inner.listCalls)
}

// newPoTokenServer serves a watch page whose tracks are all gated behind a
// PoToken, and an android player that lists the same languages without it.
func newPoTokenServer(t *testing.T, playerCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPage(captionsJSON(
			`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=en&exp=xpe","languageCode":"en","name":{"simpleText":"English"}},`+
				`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=de&exp=xpe","languageCode":"de","name":{"simpleText":"German"}}`,
		)))
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		playerCalls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "com.google.android.youtube/")

		var req innertubeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testVideoID.String(), req.VideoID)
		assert.Equal(t, "ANDROID", req.Context.Client.ClientName)

		fmt.Fprint(w, captionsJSON(
			`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=en","languageCode":"en","name":{"simpleText":"English"}},`+
				`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=de","languageCode":"de","name":{"simpleText":"German"}}`,
		))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("exp") == "xpe" {
			w.WriteHeader(http.StatusOK)
			return
		}
		fmt.Fprint(w, englishTimedText)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestYouTubeSourceFallsBackToAndroidPlayerForPoTokenTracks(t *testing.T) {
	var playerCalls atomic.Int32
	srv := newPoTokenServer(t, &playerCalls)
	src := newSource(srv)

	tracks, err := src.ListTracks(context.Background(), testVideoID)

	require.NoError(t, err)
	assert.Equal(t, int32(1), playerCalls.Load())
	require.Len(t, tracks, 2)
	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.Equal(t, "de", tracks[1].LanguageCode)
	for _, tr := range tracks {
		assert.False(t, needsPoToken(tr.BaseURL), tr.BaseURL)
	}

	segments, err := src.FetchTrack(context.Background(), tracks[0])
	require.NoError(t, err)
	require.Len(t, segments, 3)
	assert.Equal(t, "Hello", segments[0].Text)
}

func TestYouTubeSourceSkipsAndroidPlayerWithoutPoToken(t *testing.T) {
	page := watchPage(captionsJSON(
		`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=en","languageCode":"en","name":{"simpleText":"English"}}`,
	))
	srv := newTestServer(t, page)

	tracks, err := newSource(srv).ListTracks(context.Background(), testVideoID)

	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, srv.URL+"/api/timedtext?v=dQw4w9WgXcQ&lang=en", tracks[0].BaseURL)
}

func TestYouTubeSourcePoTokenWithoutFallback(t *testing.T) {
	tests := []struct {
		name      string
		tracks    string
		wantLangs []string
		wantErr   error
	}{
		{
			name: "usable watch page tracks are kept",
			tracks: `{"baseUrl":"/api/timedtext?lang=en&exp=xpe","languageCode":"en"},` +
				`{"baseUrl":"/api/timedtext?lang=de","languageCode":"de"}`,
			wantLangs: []string{"de"},
		},
		{
			name:    "every track gated",
			tracks:  `{"baseUrl":"/api/timedtext?lang=en&exp=xpe","languageCode":"en"}`,
			wantErr: domain.ErrUpstreamEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, watchPage(captionsJSON(tt.tracks)))
			})
			mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "forbidden", http.StatusForbidden)
			})
			srv := httptest.NewServer(mux)
			t.Cleanup(srv.Close)

			tracks, err := newSource(srv).ListTracks(context.Background(), testVideoID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			langs := make([]string, 0, len(tracks))
			for _, tr := range tracks {
				langs = append(langs, tr.LanguageCode)
			}
			assert.Equal(t, tt.wantLangs, langs)
		})
	}
}

func TestNeedsPoToken(t *testing.T) {
	assert.True(t, needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en&exp=xpe"))
	assert.True(t, needsPoToken("/api/timedtext?exp=xpe&lang=en"))
	assert.False(t, needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en"))
	assert.False(t, needsPoToken("https://www.youtube.com/api/timedtext?v=x&expire=123"))
}
