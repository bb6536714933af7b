// Package assignment is the benefit ledger: which beneficiary receives which
// benefit, and when.
package assignment

import (
	"log/slog"

	"amparo/internal/assignment/adapters"
	"amparo/internal/assignment/handler"
	"amparo/internal/assignment/service"
)

type Service = service.Service

type Handler = handler.Handler

// NewService builds the ledger over the beneficiary and benefit stores. The
// stores are consulted through narrow read adapters.
func NewService(
	store service.Store,
	beneficiaries adapters.BeneficiaryReader,
	benefits adapters.BenefitReader,
	opts ...service.Option,
) *Service {
	return service.New(store,
		adapters.NewBeneficiaryDirectory(beneficiaries),
		adapters.NewBenefitDirectory(benefits),
		opts...,
	)
}

func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
