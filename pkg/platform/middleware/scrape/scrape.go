// Package scrape guards operational endpoints such as /metrics with a static
// bearer token shared with the collector.
package scrape

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"amparo/pkg/requestcontext"
)

// RequireToken rejects requests whose bearer token differs from expected.
// An empty expected token leaves the endpoint open.
func RequireToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "scrape token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"scrape token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
