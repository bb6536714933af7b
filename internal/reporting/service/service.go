// Package service renders reports: it runs the report query, resolves the
// sort key and applies the report's column projection.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	beneficiary "amparo/internal/beneficiary/models"
	rmetrics "amparo/internal/reporting/metrics"
	"amparo/internal/reporting/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	Beneficiaries(ctx context.Context, f models.BeneficiaryFilter) ([]*beneficiary.Beneficiary, error)
	Assignments(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentRow, error)
	Benefits(ctx context.Context, f models.BenefitFilter) ([]models.BenefitRow, error)
	Batches(ctx context.Context, f models.BatchFilter) ([]models.BatchRow, error)
	Batch(ctx context.Context, batchID id.BatchID) (*models.BatchRow, error)
	BatchItems(ctx context.Context, batchID id.BatchID, f models.ItemFilter) ([]models.ItemRow, error)
	History(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.HistoryFilter) ([]models.HistoryRow, error)
	BeneficiaryName(ctx context.Context, beneficiaryID id.BeneficiaryID) (string, error)
	BenefitName(ctx context.Context, benefitID id.BenefitID) (string, error)
}

// Report names, used in routes, file names and metrics.
const (
	ReportIdentification = "identification"
	ReportHealth         = "health"
	ReportSocioeconomic  = "socioeconomic"
	ReportRoster         = "roster"
	ReportAssignments    = "assignments"
	ReportBenefits       = "benefits"
	ReportBatches        = "batches"
	ReportBatchItems     = "batch-items"
	ReportHistory        = "history"
)

var tracer = otel.Tracer("amparo/internal/reporting")

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *rmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *rmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) Identification(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error) {
	cols := models.IdentificationColumns(requestcontext.Today(ctx))
	return s.beneficiaries(ctx, ReportIdentification, "Identification and address", f, cols)
}

func (s *Service) Health(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error) {
	return s.beneficiaries(ctx, ReportHealth, "Health conditions", f, models.HealthColumns)
}

func (s *Service) Socioeconomic(ctx context.Context, f models.BeneficiaryFilter) (*models.Table, error) {
	return s.beneficiaries(ctx, ReportSocioeconomic, "Socioeconomic situation", f, models.SocioeconomicColumns)
}

func (s *Service) beneficiaries(ctx context.Context, name, title string, f models.BeneficiaryFilter, cols []models.Column[*beneficiary.Beneficiary]) (*models.Table, error) {
	ctx, span := start(ctx, name)
	defer span.End()

	f.Sort = models.BeneficiarySorts.Resolve(string(f.Sort))
	rows, err := s.store.Beneficiaries(ctx, f)
	if err != nil {
		return nil, s.fail(ctx, span, name, err)
	}
	s.observe(name, len(rows))
	return models.Render(name, title, f.Sort, cols, rows), nil
}

// Roster lists the beneficiaries holding an active assignment of benefitID.
func (s *Service) Roster(ctx context.Context, benefitID id.BenefitID, f models.BeneficiaryFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportRoster)
	defer span.End()

	f.BenefitID = benefitID
	f.Sort = models.BeneficiarySorts.Resolve(string(f.Sort))

	var (
		benefitName string
		rows        []*beneficiary.Beneficiary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		benefitName, err = s.store.BenefitName(gctx, benefitID)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.store.Beneficiaries(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, ReportRoster, notFound(err, "benefit not found"))
	}
	s.observe(ReportRoster, len(rows))
	return models.Render(ReportRoster, "Roster: "+benefitName, f.Sort, models.RosterColumns, rows), nil
}

func (s *Service) Assignments(ctx context.Context, f models.AssignmentFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportAssignments)
	defer span.End()

	f.Sort = models.AssignmentSorts.Resolve(string(f.Sort))
	rows, err := s.store.Assignments(ctx, f)
	if err != nil {
		return nil, s.fail(ctx, span, ReportAssignments, err)
	}
	s.observe(ReportAssignments, len(rows))
	cols := models.AssignmentColumns(requestcontext.Today(ctx))
	return models.Render(ReportAssignments, "Assignments", f.Sort, cols, rows), nil
}

func (s *Service) Benefits(ctx context.Context, f models.BenefitFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportBenefits)
	defer span.End()

	f.Sort = models.BenefitSorts.Resolve(string(f.Sort))
	rows, err := s.store.Benefits(ctx, f)
	if err != nil {
		return nil, s.fail(ctx, span, ReportBenefits, err)
	}
	s.observe(ReportBenefits, len(rows))
	return models.Render(ReportBenefits, "Benefits", f.Sort, models.BenefitColumns, rows), nil
}

func (s *Service) Batches(ctx context.Context, f models.BatchFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportBatches)
	defer span.End()

	f.Sort = models.BatchSorts.Resolve(string(f.Sort))
	rows, err := s.store.Batches(ctx, f)
	if err != nil {
		return nil, s.fail(ctx, span, ReportBatches, err)
	}
	s.observe(ReportBatches, len(rows))
	return models.Render(ReportBatches, "Delivery batches", f.Sort, models.BatchColumns, rows), nil
}

// BatchItems renders the printable checklist of one batch.
func (s *Service) BatchItems(ctx context.Context, batchID id.BatchID, f models.ItemFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportBatchItems, attribute.String("batch.id", batchID.String()))
	defer span.End()

	f.Sort = models.ItemSorts.Resolve(string(f.Sort))

	var (
		header *models.BatchRow
		rows   []models.ItemRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		header, err = s.store.Batch(gctx, batchID)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.store.BatchItems(gctx, batchID, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, ReportBatchItems, notFound(err, "batch not found"))
	}
	s.observe(ReportBatchItems, len(rows))
	title := header.BenefitName + " on " + header.DeliveryDate.Display()
	return models.Render(ReportBatchItems, title, f.Sort, models.ItemColumns, rows), nil
}

// History lists the delivery items of one beneficiary across batches.
func (s *Service) History(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.HistoryFilter) (*models.Table, error) {
	ctx, span := start(ctx, ReportHistory, attribute.String("beneficiary.id", beneficiaryID.String()))
	defer span.End()

	f.Sort = models.HistorySorts.Resolve(string(f.Sort))

	var (
		name string
		rows []models.HistoryRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		name, err = s.store.BeneficiaryName(gctx, beneficiaryID)
		return err
	})
	g.Go(func() (err error) {
		rows, err = s.store.History(gctx, beneficiaryID, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, span, ReportHistory, notFound(err, "beneficiary not found"))
	}
	s.observe(ReportHistory, len(rows))
	return models.Render(ReportHistory, "Deliveries: "+name, f.Sort, models.HistoryColumns, rows), nil
}

func start(ctx context.Context, report string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("report", report))
	return tracer.Start(ctx, "reporting."+report, trace.WithAttributes(attrs...))
}

func notFound(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, msg)
	}
	return err
}

func (s *Service) fail(ctx context.Context, span trace.Span, report string, err error) error {
	span.SetStatus(codes.Error, err.Error())
	if _, ok := dErrors.From(err); ok {
		return err
	}
	s.logger.ErrorContext(ctx, "report query failed",
		"report", report,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to run report "+report)
}

func (s *Service) observe(report string, rows int) {
	if s.metrics != nil {
		s.metrics.ObserveRows(report, rows)
	}
}
