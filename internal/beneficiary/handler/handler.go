package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

// Service defines the beneficiary operations used by the handler.
type Service interface {
	Create(ctx context.Context, f models.Fields) (*models.Beneficiary, error)
	Update(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.Fields) (*models.Beneficiary, error)
	Get(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Beneficiary, error)
	Delete(ctx context.Context, beneficiaryID id.BeneficiaryID) error
}

// Handler wires beneficiary endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts beneficiary endpoints. Routes expect RequireAuth to have
// run upstream.
func (h *Handler) Register(r chi.Router) {
	view := r.With(auth.RequireRole(id.CapabilityView))
	edit := r.With(auth.RequireRole(id.CapabilityEdit))
	del := r.With(auth.RequireRole(id.CapabilityDelete))

	view.Get("/beneficiaries", h.HandleList)
	edit.Post("/beneficiaries", h.HandleCreate)
	view.Get("/beneficiaries/{id}", h.HandleGet)
	edit.Put("/beneficiaries/{id}", h.HandleUpdate)
	del.Delete("/beneficiaries/{id}", h.HandleDelete)
}

// HandleCreate handles POST /beneficiaries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BeneficiaryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	b, err := h.service.Create(ctx, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to create beneficiary", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(b, requestcontext.Today(ctx)))
}

// HandleUpdate handles PUT /beneficiaries/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[BeneficiaryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	b, err := h.service.Update(ctx, beneficiaryID, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update beneficiary", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(b, requestcontext.Today(ctx)))
}

// HandleGet handles GET /beneficiaries/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	b, err := h.service.Get(ctx, beneficiaryID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to get beneficiary", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(b, requestcontext.Today(ctx)))
}

// HandleList handles GET /beneficiaries?q=&status=&limit=&offset=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.List(ctx, filter)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to list beneficiaries", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list, requestcontext.Today(ctx)))
}

// HandleDelete handles DELETE /beneficiaries/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(ctx, beneficiaryID); err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to delete beneficiary", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const maxPageSize = 500

func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{Query: q.Get("q")}

	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseChoice("status", raw, "", models.Statuses())
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &filter.Limit}, {"offset", &filter.Offset}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, dErrors.New(dErrors.CodeBadRequest, p.name+" must be a non-negative integer")
		}
		*p.dst = n
	}
	if filter.Limit == 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return filter, nil
}
