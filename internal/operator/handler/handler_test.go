package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/operator/models"
	"amparo/internal/operator/revocation"
	"amparo/internal/operator/service"
	"amparo/internal/operator/store"
	"amparo/internal/operator/token"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/testutil"
)

type env struct {
	router  http.Handler
	service *service.Service
}

// newEnv mounts the handler behind the real token middleware.
func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	signer := token.NewSigner("test-key", "amparo-test", time.Hour)
	revoked := revocation.NewInMemoryList()
	svc := service.New(store.NewInMemoryStore(), signer, revoked)

	h := New(svc, logger)
	r := chi.NewRouter()
	h.RegisterPublic(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(signer, revoked, logger))
		h.Register(r)
	})
	return &env{router: r, service: svc}
}

func (e *env) seed(t *testing.T, username string, role id.Role) *models.Operator {
	t.Helper()
	op, err := e.service.Create(context.Background(), models.Fields{Username: username, Password: "s3cret-pass", Role: role})
	require.NoError(t, err)
	return op
}

func (e *env) login(t *testing.T, username string) string {
	t.Helper()
	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]any{
		"username": username,
		"password": "s3cret-pass",
	}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := testutil.UnmarshalResponse[LoginResponse](t, rr)
	assert.Equal(t, "Bearer", resp.TokenType)
	return resp.AccessToken
}

func (e *env) do(t *testing.T, bearer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return testutil.DoRequest(e.router, req)
}

func TestLoginAndLogout(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "maria", id.RoleOperator)

	bearer := e.login(t, "maria")

	rr := e.do(t, bearer, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	me := testutil.UnmarshalResponse[OperatorResponse](t, rr)
	assert.Equal(t, "maria", me.Username)
	assert.Equal(t, "OPERATOR", me.Role)

	rr = e.do(t, bearer, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = e.do(t, bearer, http.MethodGet, "/auth/me", nil)
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestLoginRejections(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "maria", id.RoleOperator)

	rr := e.do(t, "", http.MethodPost, "/auth/login", map[string]any{"username": "maria", "password": "wrong-pass"})
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = e.do(t, "", http.MethodPost, "/auth/login", map[string]any{"username": "maria"})
	testutil.AssertFieldError(t, rr, "password")

	rr = e.do(t, "", http.MethodGet, "/auth/me", nil)
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = e.do(t, "not-a-jwt", http.MethodGet, "/auth/me", nil)
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestOperatorManagement(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "admin", id.RoleAdmin)
	e.seed(t, "clerk", id.RoleSupervisor)
	admin := e.login(t, "admin")

	rr := e.do(t, admin, http.MethodPost, "/operators", map[string]any{
		"username": "joana",
		"password": "joana-pass",
		"role":     "viewer",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.UnmarshalResponse[OperatorResponse](t, rr)
	assert.Equal(t, "VIEWER", created.Role)
	assert.True(t, created.Active)

	t.Run("patch", func(t *testing.T) {
		rr := e.do(t, admin, http.MethodPatch, "/operators/"+created.ID, map[string]any{"role": "operator", "active": false})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		updated := testutil.UnmarshalResponse[OperatorResponse](t, rr)
		assert.Equal(t, "OPERATOR", updated.Role)
		assert.False(t, updated.Active)

		rr = e.do(t, admin, http.MethodPatch, "/operators/"+created.ID, map[string]any{})
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

		rr = e.do(t, admin, http.MethodPatch, "/operators/"+created.ID, map[string]any{"role": "owner"})
		testutil.AssertFieldError(t, rr, "role")
	})

	t.Run("list", func(t *testing.T) {
		rr := e.do(t, admin, http.MethodGet, "/operators", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		list := testutil.UnmarshalResponse[ListResponse](t, rr)
		require.Equal(t, 3, list.Count)
		assert.Equal(t, "admin", list.Operators[0].Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		rr := e.do(t, admin, http.MethodPost, "/operators", map[string]any{
			"username": "Joana",
			"password": "joana-pass",
			"role":     "viewer",
		})
		testutil.AssertFieldError(t, rr, "username")
	})

	t.Run("supervisors cannot manage operators", func(t *testing.T) {
		clerk := e.login(t, "clerk")
		rr := e.do(t, clerk, http.MethodGet, "/operators", nil)
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := e.do(t, admin, http.MethodGet, "/operators/nope", nil)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
