// Package middleware assembles the HTTP middleware stack shared by every
// route.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"amparo/internal/platform/metrics"
	"amparo/pkg/platform/middleware/metadata"
	"amparo/pkg/platform/middleware/request"
	"amparo/pkg/requestcontext"
)

// Standard returns the stack in application order. metrics may be nil.
func Standard(logger *slog.Logger, m *metrics.Metrics, timeout time.Duration) chi.Middlewares {
	stack := chi.Middlewares{
		chimw.RealIP,
		request.RequestID,
		metadata.Capture,
		AccessLog(logger),
		chimw.Recoverer,
	}
	if m != nil {
		stack = append(stack, m.Middleware)
	}
	if timeout > 0 {
		stack = append(stack, chimw.Timeout(timeout))
	}
	return stack
}

// AccessLog writes one line per request. Server errors log at error level.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			ctx := r.Context()
			logger.Log(ctx, level, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
