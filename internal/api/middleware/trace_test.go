package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api/shared"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	var seenTrace, seenRequestID string
	var hasLogger bool
	h := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenRequestID = logger.RequestID(r.Context())
		hasLogger = logger.FromContext(r.Context()) != nil
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seenTrace, 32)
	assert.Equal(t, seenTrace, seenRequestID)
	assert.True(t, hasLogger)
	assert.Equal(t, seenTrace, w.Header().Get(TraceIDHeader))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := NewTraceMiddleware(log)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	out := buf.String()
	assert.Contains(t, out, `"msg":"request completed"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"bytes":2`)
	assert.Contains(t, out, `"path":"/health"`)
	assert.Contains(t, out, `"trace_id":"`+w.Header().Get(TraceIDHeader)+`"`)
}
