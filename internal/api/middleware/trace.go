// Package middleware provides HTTP middleware for the api package.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api/shared"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/logger"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware adds a trace ID to the request context, to the response
// headers and to a request-scoped logger. It should be applied early in the
// chain so every later handler sees the trace ID.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := shared.NewTraceID()

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithRequestID(ctx, traceID)
			ctx = logger.WithLogger(ctx, log.With(slog.String("trace_id", traceID)))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
