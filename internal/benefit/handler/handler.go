package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"amparo/internal/benefit/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, f models.Fields) (*models.Benefit, error)
	Update(ctx context.Context, benefitID id.BenefitID, f models.Fields) (*models.Benefit, error)
	Get(ctx context.Context, benefitID id.BenefitID) (*models.Benefit, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Benefit, error)
	Delete(ctx context.Context, benefitID id.BenefitID) error
}

// Handler serves the benefit catalog.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	view := r.With(auth.RequireRole(id.CapabilityView))
	edit := r.With(auth.RequireRole(id.CapabilityEdit))
	del := r.With(auth.RequireRole(id.CapabilityDelete))

	view.Get("/benefits", h.HandleList)
	edit.Post("/benefits", h.HandleCreate)
	view.Get("/benefits/{id}", h.HandleGet)
	edit.Put("/benefits/{id}", h.HandleUpdate)
	del.Delete("/benefits/{id}", h.HandleDelete)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BenefitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	b, err := h.service.Create(ctx, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to create benefit", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	benefitID, err := id.ParseBenefitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[BenefitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	b, err := h.service.Update(ctx, benefitID, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update benefit", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	benefitID, err := id.ParseBenefitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	b, err := h.service.Get(ctx, benefitID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to get benefit", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(b))
}

// HandleList handles GET /benefits?q=&category=&active=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := models.ListFilter{Query: q.Get("q")}
	if raw := q.Get("category"); raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Category = category
	}
	if raw := q.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "active must be true or false"))
			return
		}
		filter.Active = &active
	}

	list, err := h.service.List(ctx, filter)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to list benefits", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	benefitID, err := id.ParseBenefitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(ctx, benefitID); err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to delete benefit", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
