package beneficiary

import (
	"log/slog"

	"amparo/internal/beneficiary/handler"
	"amparo/internal/beneficiary/service"
)

// Service exposes the beneficiary lifecycle.
type Service = service.Service

// Handler wires HTTP endpoints to the beneficiary service.
type Handler = handler.Handler

// NewService constructs the beneficiary service. assignments guards deletes
// against records that carry benefit history.
func NewService(store service.Store, assignments service.AssignmentCounter, opts ...service.Option) *Service {
	return service.New(store, assignments, opts...)
}

// NewHandler constructs the HTTP handler for /v1/beneficiaries.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
