// Package reporting renders the printable listings: beneficiary sheets,
// benefit rosters, assignment and batch summaries and delivery history,
// as JSON or spreadsheets.
package reporting

import (
	"database/sql"
	"log/slog"

	"amparo/internal/reporting/handler"
	rmetrics "amparo/internal/reporting/metrics"
	"amparo/internal/reporting/service"
	"amparo/internal/reporting/store"
)

type Service = service.Service

type Handler = handler.Handler

// NewService builds the report service over the shared database.
func NewService(db *sql.DB, opts ...service.Option) *Service {
	return service.New(store.NewPostgres(db), opts...)
}

func NewHandler(s *Service, logger *slog.Logger, m *rmetrics.Metrics) *Handler {
	return handler.New(s, logger, m)
}
