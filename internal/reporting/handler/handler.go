package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"amparo/internal/reporting/export"
	rmetrics "amparo/internal/reporting/metrics"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/requestcontext"
)

// Service defines the report operations used by the handler.
type Service interface {
	Identification(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error)
	Health(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error)
	Socioeconomic(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error)
	Roster(ctx context.Context, benefitID id.BenefitID, f models.BeneficiaryFilter) (*models.Table, error)
	Assignments(ctx context.Context, f models.AssignmentFilter) (*models.Table, error)
	Benefits(ctx context.Context, f models.BenefitFilter) (*models.Table, error)
	Batches(ctx context.Context, f models.BatchFilter) (*models.Table, error)
	BatchItems(ctx context.Context, batchID id.BatchID, f models.ItemFilter) (*models.Table, error)
	History(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.HistoryFilter) (*models.Table, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *rmetrics.Metrics
}

func New(service Service, logger *slog.Logger, m *rmetrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register mounts the report endpoints. Every report is readable by viewers.
func (h *Handler) Register(r chi.Router) {
	view := r.With(auth.RequireRole(id.CapabilityView))

	view.Get("/reports/identification", h.beneficiaryReport(Service.Identification))
	view.Get("/reports/health", h.beneficiaryReport(Service.Health))
	view.Get("/reports/socioeconomic", h.beneficiaryReport(Service.Socioeconomic))
	view.Get("/reports/assignments", h.HandleAssignments)
	view.Get("/reports/benefits", h.HandleBenefits)
	view.Get("/reports/benefits/{id}/roster", h.HandleRoster)
	view.Get("/reports/batches", h.HandleBatches)
	view.Get("/reports/batches/{id}/items", h.HandleBatchItems)
	view.Get("/reports/beneficiaries/{id}/history", h.HandleHistory)
	view.Get("/beneficiaries/{id}/deliveries", h.HandleHistory)
}

type format string

const (
	formatJSON format = "json"
	formatXLSX format = "xlsx"
)

func parseFormat(r *http.Request) (format, error) {
	switch raw := r.URL.Query().Get("format"); raw {
	case "", string(formatJSON):
		return formatJSON, nil
	case string(formatXLSX):
		return formatXLSX, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "format must be json or xlsx")
	}
}

// run parses the output format, executes fn and writes the table.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context) (*models.Table, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	out, err := parseFormat(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	table, err := fn(ctx)
	if err != nil {
		httputil.LogFailure(ctx, h.logger, "failed to render report", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncrementRendered(table.Name, string(out))
	}

	if out == formatJSON {
		httputil.WriteJSON(w, http.StatusOK, toResponse(table))
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, table); err != nil {
		h.logger.ErrorContext(ctx, "failed to write spreadsheet",
			"report", table.Name,
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to write spreadsheet"))
		return
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(table)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) beneficiaryReport(report func(Service, context.Context, models.BeneficiaryFilter) (*models.Table, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseBeneficiaryFilter(r.URL.Query())
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		h.run(w, r, func(ctx context.Context) (*models.Table, error) {
			return report(h.service, ctx, filter)
		})
	}
}

// HandleRoster handles GET /reports/benefits/{id}/roster.
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	benefitID, err := id.ParseBenefitID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter, err := parseBeneficiaryFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.Roster(ctx, benefitID, filter)
	})
}

// HandleAssignments handles GET /reports/assignments.
func (h *Handler) HandleAssignments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAssignmentFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.Assignments(ctx, filter)
	})
}

// HandleBenefits handles GET /reports/benefits.
func (h *Handler) HandleBenefits(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBenefitFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.Benefits(ctx, filter)
	})
}

// HandleBatches handles GET /reports/batches.
func (h *Handler) HandleBatches(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBatchFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.Batches(ctx, filter)
	})
}

// HandleBatchItems handles GET /reports/batches/{id}/items.
func (h *Handler) HandleBatchItems(w http.ResponseWriter, r *http.Request) {
	batchID, err := id.ParseBatchID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter := models.ItemFilter{Sort: models.Sort(r.URL.Query().Get("sort"))}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.BatchItems(ctx, batchID, filter)
	})
}

// HandleHistory handles GET /reports/beneficiaries/{id}/history and its
// alias GET /beneficiaries/{id}/deliveries.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	beneficiaryID, err := id.ParseBeneficiaryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	filter, err := parseHistoryFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.run(w, r, func(ctx context.Context) (*models.Table, error) {
		return h.service.History(ctx, beneficiaryID, filter)
	})
}
