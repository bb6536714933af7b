package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amparo/internal/assignment/models"
	"amparo/internal/assignment/service"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

// Service defines the assignment operations used by the handler.
type Service interface {
	Create(ctx context.Context, d models.Draft) (*models.Assignment, error)
	Update(ctx context.Context, assignmentID id.AssignmentID, d models.Draft) (*models.Assignment, error)
	End(ctx context.Context, assignmentID id.AssignmentID, end *id.Date) (*service.EndResult, error)
	Get(ctx context.Context, assignmentID id.AssignmentID) (*models.Assignment, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) ([]*models.Assignment, error)
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

	edit.Post("/assignments", h.HandleCreate)
	view.Get("/assignments/{id}", h.HandleGet)
	edit.Put("/assignments/{id}", h.HandleUpdate)
	edit.Post("/assignments/{id}/end", h.HandleEnd)
	view.Get("/beneficiaries/{id}/assignments", h.HandleListByBeneficiary)
}

// HandleCreate handles POST /assignments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AssignmentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := req.requireBeneficiary(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.Create(ctx, req.Draft())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to create assignment", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(a, requestcontext.Today(ctx)))
}

// HandleUpdate handles PUT /assignments/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	assignmentID, err := id.ParseAssignmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AssignmentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.Update(ctx, assignmentID, req.Draft())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update assignment", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(a, requestcontext.Today(ctx)))
}

// HandleEnd handles POST /assignments/{id}/end. Ending an assignment twice
// is not an error; the response flags it instead.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	assignmentID, err := id.ParseAssignmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[EndRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.End(ctx, assignmentID, req.End())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to end assignment", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &EndResponse{
		Assignment:   toResponse(res.Assignment, requestcontext.Today(ctx)),
		AlreadyEnded: res.AlreadyEnded,
	})
}

// HandleGet handles GET /assignments/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assignmentID, err := id.ParseAssignmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, err := h.service.Get(ctx, assignmentID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to get assignment", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(a, requestcontext.Today(ctx)))
}

// HandleListByBeneficiary handles GET /beneficiaries/{id}/assignments.
func (h *Handler) HandleListByBeneficiary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to list assignments", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list, requestcontext.Today(ctx)))
}
