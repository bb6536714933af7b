package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"amparo/pkg/requestcontext"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"10.0.0.7:5123", "10.0.0.7"},
		{"[::1]:8080", "::1"},
		{"10.0.0.7", "10.0.0.7"},
		{"", "unknown"},
	}
	for _, tc := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tc.remote
		assert.Equal(t, tc.want, ClientIP(r), tc.remote)
	}
}

func TestCapture(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.20:4000"
	r.Header.Set("User-Agent", "curl/8.0")

	var ip, agent string
	var stamped bool
	Capture(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		agent = requestcontext.UserAgent(r.Context())
		stamped = !requestcontext.Now(r.Context()).IsZero()
	})).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.168.1.20", ip)
	assert.Equal(t, "curl/8.0", agent)
	assert.True(t, stamped)
}
