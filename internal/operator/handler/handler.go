package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"amparo/internal/operator/models"
	"amparo/internal/operator/service"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

// Service defines the operator operations used by the handler.
type Service interface {
	Login(ctx context.Context, username, password string) (*service.Session, error)
	Logout(ctx context.Context) error
	Create(ctx context.Context, f models.Fields) (*models.Operator, error)
	Get(ctx context.Context, operatorID id.OperatorID) (*models.Operator, error)
	List(ctx context.Context) ([]*models.Operator, error)
	Update(ctx context.Context, operatorID id.OperatorID, c models.Changes) (*models.Operator, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// Register mounts the authenticated endpoints. Account management needs the
// administrator capability.
func (h *Handler) Register(r chi.Router) {
	view := r.With(auth.RequireRole(id.CapabilityView))
	manage := r.With(auth.RequireRole(id.CapabilityManage))

	view.Post("/auth/logout", h.HandleLogout)
	view.Get("/auth/me", h.HandleMe)
	manage.Get("/operators", h.HandleList)
	manage.Post("/operators", h.HandleCreate)
	manage.Get("/operators/{id}", h.HandleGet)
	manage.Patch("/operators/{id}", h.HandleUpdate)
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	session, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "login failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLoginResponse(session))
}

// HandleLogout handles POST /auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Logout(ctx); err != nil {
		httputil.LogFailure(ctx, h.logger, "logout failed", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := requestcontext.Principal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	op, err := h.service.Get(ctx, p.ID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to load current operator", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(op))
}

// HandleList handles GET /operators.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.List(ctx)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to list operators", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(list))
}

// HandleCreate handles POST /operators.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateOperatorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	op, err := h.service.Create(ctx, req.Fields())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to create operator", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(op))
}

// HandleGet handles GET /operators/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operatorID, err := id.ParseOperatorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	op, err := h.service.Get(ctx, operatorID)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to get operator", requestcontext.RequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(op))
}

// HandleUpdate handles PATCH /operators/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operatorID, err := id.ParseOperatorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateOperatorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	op, err := h.service.Update(ctx, operatorID, req.Changes())
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to update operator", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(op))
}
