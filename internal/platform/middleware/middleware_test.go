package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/platform/metrics"
	"amparo/pkg/platform/middleware/request"
	"amparo/pkg/requestcontext"
	"amparo/pkg/testutil"
)

func TestStandardStack(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	var seen struct {
		requestID string
		now       time.Time
		agent     string
	}
	r := chi.NewRouter()
	r.Use(Standard(logger, metrics.New(prometheus.NewRegistry()), time.Second)...)
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		seen.requestID = requestcontext.RequestID(ctx)
		seen.now = requestcontext.Now(ctx)
		seen.agent = requestcontext.UserAgent(ctx)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/ping", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0")
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, seen.requestID)
	assert.Equal(t, seen.requestID, rr.Header().Get(request.HeaderRequestID))
	assert.False(t, seen.now.IsZero())
	assert.Contains(t, seen.agent, "Firefox")
	assert.Contains(t, logs.String(), `"path":"/ping"`)

	rr = testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}
