package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

// Service defines the distribution operations used by the handler.
type Service interface {
	CreateBatch(ctx context.Context, f models.Fields) (*models.Detail, error)
	UpdateBatch(ctx context.Context, batchID id.BatchID, f models.Fields) (*models.Detail, error)
	GetBatch(ctx context.Context, batchID id.BatchID) (*models.Detail, error)
	ListBatches(ctx context.Context, filter models.ListFilter) ([]models.Summary, error)
	DeleteBatch(ctx context.Context, batchID id.BatchID) error
	SetDelivered(ctx context.Context, batchID id.BatchID, itemID id.ItemID, delivered bool) (*models.Item, error)
	ApplyChecklist(ctx context.Context, batchID id.BatchID, checked []id.ItemID) (int, error)
}

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

	view.Get("/batches", h.HandleList)
	edit.Post("/batches", h.HandleCreate)
	view.Get("/batches/{id}", h.HandleGet)
	edit.Put("/batches/{id}", h.HandleUpdate)
	del.Delete("/batches/{id}", h.HandleDelete)
	edit.Post("/batches/{id}/checklist", h.HandleChecklist)
	edit.Put("/batches/{id}/items/{itemID}", h.HandleSetDelivered)
}

// HandleCreate handles POST /batches.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	d, err := h.service.CreateBatch(ctx, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to create batch", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toDetailResponse(d))
}

// HandleUpdate handles PUT /batches/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	d, err := h.service.UpdateBatch(ctx, batchID, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update batch", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDetailResponse(d))
}

// HandleGet handles GET /batches/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.service.GetBatch(ctx, batchID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to get batch", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDetailResponse(d))
}

// HandleList handles GET /batches?from=&to=&benefit_id=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListBatches(ctx, filter)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to list batches", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
}

// HandleDelete handles DELETE /batches/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteBatch(ctx, batchID); err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to delete batch", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChecklist handles POST /batches/{id}/checklist.
func (h *Handler) HandleChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ChecklistRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	changed, err := h.service.ApplyChecklist(ctx, batchID, req.ItemIDs())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to apply checklist", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ChecklistResponse{Changed: changed})
}

// HandleSetDelivered handles PUT /batches/{id}/items/{itemID}.
func (h *Handler) HandleSetDelivered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	itemID, err := id.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ItemRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	it, err := h.service.SetDelivered(ctx, batchID, itemID, *req.Delivered)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update delivery item", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toItemResponse(*it, models.Recipient{}))
}

func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	var filter models.ListFilter
	var err error
	if filter.From, err = id.ParseOptionalDate(q.Get("from")); err != nil {
		return filter, dErrors.New(dErrors.CodeBadRequest, "from must be a date in YYYY-MM-DD format")
	}
	if filter.To, err = id.ParseOptionalDate(q.Get("to")); err != nil {
		return filter, dErrors.New(dErrors.CodeBadRequest, "to must be a date in YYYY-MM-DD format")
	}
	if raw := q.Get("benefit_id"); raw != "" {
		if filter.BenefitID, err = id.ParseBenefitID(raw); err != nil {
			return filter, err
		}
	}
	return filter, nil
}
