package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/benefit/service"
	"amparo/internal/benefit/store"
	id "amparo/pkg/domain"
	"amparo/pkg/testutil"
)

func newRouter(t *testing.T, role id.Role) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	r.Use(testutil.AsOperator(role))
	New(service.New(store.NewInMemoryStore()), logger).Register(r)
	return r
}

func TestBenefitLifecycle(t *testing.T) {
	router := newRouter(t, id.RoleSupervisor)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/benefits", map[string]any{
		"name":        "Cesta Básica",
		"category":    "food",
		"periodicity": "monthly",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.UnmarshalResponse[BenefitResponse](t, rr)
	assert.True(t, created.Active)
	assert.Equal(t, "FOOD", created.Category)
	assert.Equal(t, "Mensal", created.PeriodicityLabel)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/benefits/"+created.ID, map[string]any{
		"name":        "Cesta Básica",
		"category":    "FOOD",
		"periodicity": "MONTHLY",
		"active":      false,
	}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.False(t, testutil.UnmarshalResponse[BenefitResponse](t, rr).Active)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/benefits?active=false", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, testutil.UnmarshalResponse[ListResponse](t, rr).Count)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodDelete, "/benefits/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestBenefitValidation(t *testing.T) {
	router := newRouter(t, id.RoleOperator)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/benefits", map[string]any{
		"name": "Cesta", "category": "TOYS", "periodicity": "MONTHLY",
	}))
	testutil.AssertFieldError(t, rr, "category")

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/benefits?active=maybe", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestBenefitDeleteRequiresSupervisor(t *testing.T) {
	router := newRouter(t, id.RoleOperator)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodDelete, "/benefits/5b1d7f0e-9a0c-4c7a-8d3e-2f6b1c9e4a10", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
