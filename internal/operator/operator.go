// Package operator holds staff accounts, sign-in and token revocation.
package operator

import (
	"log/slog"

	"amparo/internal/operator/handler"
	"amparo/internal/operator/service"
	"amparo/internal/operator/token"
)

type Service = service.Service

type Handler = handler.Handler

// NewService builds the account service. The signer issues tokens and the
// revoker records logouts.
func NewService(store service.Store, signer *token.Signer, revoker service.Revoker, opts ...service.Option) *Service {
	return service.New(store, signer, revoker, opts...)
}

func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
