// Package metadata stamps each request with the facts every service reads
// from context: the request clock, the client address and the User-Agent.
package metadata

import (
	"net"
	"net/http"
	"time"

	"amparo/pkg/requestcontext"
)

// Capture records time.Now once per request so a save, its derived dates
// and its audit event agree on the day. It expects chi's RealIP to have
// already resolved proxy headers into RemoteAddr.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		ctx = requestcontext.WithClientMetadata(ctx, ClientIP(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP returns the host part of RemoteAddr, or "unknown" when empty.
func ClientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
