package benefit

import (
	"log/slog"

	"amparo/internal/benefit/handler"
	"amparo/internal/benefit/service"
)

// Service exposes the benefit catalog.
type Service = service.Service

// Handler wires HTTP endpoints to the benefit service.
type Handler = handler.Handler

func NewService(store service.Store, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
