package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	id "amparo/pkg/domain"
	"amparo/pkg/requestcontext"
)

// WithOperator places an authenticated operator with the given role in the
// request context. This simulates what RequireAuth does for a valid token.
func WithOperator(req *http.Request, role id.Role) *http.Request {
	ctx := requestcontext.WithPrincipal(req.Context(), requestcontext.Operator{
		ID:       id.OperatorID(uuid.New()),
		Username: "op-" + string(role),
		Role:     role,
	})
	return req.WithContext(ctx)
}

// WithTime pins the request-scoped clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// AsOperator returns middleware that authenticates every request as an
// operator with role. Handler tests mount it in place of RequireAuth.
func AsOperator(role id.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, WithOperator(r, role))
		})
	}
}

// FixedClock returns middleware that pins the request clock to now.
func FixedClock(now time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, WithTime(r, now))
		})
	}
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
