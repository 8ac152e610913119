package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer lets the server goroutine and the test share log output.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func newServerApplication(t *testing.T, logs *lockedBuffer) *application {
	t.Helper()
	cfg := testConfig()
	cfg.Server.Port = freePort(t)
	logger := slog.New(slog.NewTextHandler(logs, nil))
	application, err := newApplication(context.Background(), cfg, logger,
		app.WithTranscriptSource(stubSource{}),
		app.WithTranslator(stubTranslator{}),
		app.WithModel(stubModel{}),
	)
	require.NoError(t, err)
	return application
}

func TestStartHTTPServerReleasesResourcesOnShutdown(t *testing.T) {
	logs := &lockedBuffer{}
	application := newServerApplication(t, logs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.startHTTPServer(ctx, application.setupRouter()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", application.config.Server.Port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, logs.String(), "Resources released")
}

func TestStartHTTPServerReleasesResourcesWhenShutdownFails(t *testing.T) {
	prev := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	t.Cleanup(func() { shutdownTimeout = prev })

	logs := &lockedBuffer{}
	application := newServerApplication(t, logs)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.startHTTPServer(ctx, slow) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/", application.config.Server.Port)
	go func() {
		// Retries until the listener is up; the first accepted request holds the
		// connection open past the shutdown deadline.
		for i := 0; i < 200; i++ {
			resp, err := http.Get(url)
			if err == nil {
				resp.Body.Close()
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("request never reached the handler")
	}

	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server shutdown failed")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, logs.String(), "Resources released")
}
