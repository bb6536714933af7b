// Package distribution runs delivery batches: one batch per benefit and day,
// with a checklist of the assignments that should receive it.
package distribution

import (
	"log/slog"

	"amparo/internal/distribution/adapters"
	"amparo/internal/distribution/handler"
	"amparo/internal/distribution/service"
)

type Service = service.Service

type Handler = handler.Handler

func NewService(
	store service.Store,
	benefits service.BenefitDirectory,
	ledger service.Ledger,
	assignments adapters.AssignmentReader,
	beneficiaries adapters.BeneficiaryReader,
	opts ...service.Option,
) *Service {
	return service.New(store, benefits, ledger, adapters.NewRecipients(assignments, beneficiaries), opts...)
}

func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
