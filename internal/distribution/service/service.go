package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dmetrics "amparo/internal/distribution/metrics"
	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,BenefitDirectory,Ledger,RecipientDirectory,AuditPublisher

type Store interface {
	CreateBatch(ctx context.Context, b *models.Batch) error
	UpdateBatch(ctx context.Context, b *models.Batch) error
	FindBatch(ctx context.Context, batchID id.BatchID) (*models.Batch, error)
	DeleteBatch(ctx context.Context, batchID id.BatchID) error
	ListBatches(ctx context.Context, filter models.ListFilter) ([]models.Summary, error)
	CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error)
	InsertItems(ctx context.Context, items []models.Item) (int, error)
	HasItems(ctx context.Context, batchID id.BatchID) (bool, error)
	ListItems(ctx context.Context, batchID id.BatchID) ([]models.Item, error)
	CountDelivered(ctx context.Context, batchID id.BatchID) (int, error)
	SetDelivered(ctx context.Context, batchID id.BatchID, itemID id.ItemID, delivered bool) (*models.Item, error)
	SetDeliveredMany(ctx context.Context, batchID id.BatchID, ids []id.ItemID, delivered bool) (int, error)
}

// BenefitDirectory answers whether a catalog entry may receive new batches.
// IsActive returns sentinel.ErrNotFound for an unknown id.
type BenefitDirectory interface {
	IsActive(ctx context.Context, benefitID id.BenefitID) (bool, error)
}

// Ledger lists the assignments of a benefit that should receive a delivery.
type Ledger interface {
	Eligible(ctx context.Context, benefitID id.BenefitID) ([]id.AssignmentID, error)
}

// RecipientDirectory resolves who each assignment belongs to. Unknown ids
// are absent from the result.
type RecipientDirectory interface {
	Recipients(ctx context.Context, ids []id.AssignmentID) (map[id.AssignmentID]models.Recipient, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

var tracer = otel.Tracer("amparo/internal/distribution")

var errHasDeliveries = dErrors.New(dErrors.CodeConflict, "this batch has delivered items and cannot be deleted")

// Service manages distribution batches and their checklists.
type Service struct {
	store      Store
	benefits   BenefitDirectory
	ledger     Ledger
	recipients RecipientDirectory
	logger     *slog.Logger
	auditor    AuditPublisher
	metrics    *dmetrics.Metrics
	tx         tx.Runner
	newItemID  func() id.ItemID
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *dmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(store Store, benefits BenefitDirectory, ledger Ledger, recipients RecipientDirectory, opts ...Option) *Service {
	s := &Service{
		store:      store,
		benefits:   benefits,
		ledger:     ledger,
		recipients: recipients,
		newItemID:  func() id.ItemID { return id.ItemID(uuid.New()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = tx.NewLockRunner()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// CreateBatch stores a batch for an active benefit and snapshots its
// eligible assignments into items, in one transaction.
func (s *Service) CreateBatch(ctx context.Context, f models.Fields) (*models.Detail, error) {
	ctx, span := tracer.Start(ctx, "distribution.CreateBatch", trace.WithAttributes(
		attribute.String("benefit.id", f.BenefitID.String()),
		attribute.String("delivery_date", f.DeliveryDate.String()),
	))
	defer span.End()

	b, err := models.NewBatch(id.BatchID(uuid.New()), f, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	var generated int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		active, err := s.benefits.IsActive(txCtx, b.BenefitID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.NewField("benefit_id", "benefit not found")
		}
		if err != nil {
			return err
		}
		if !active {
			return dErrors.NewField("benefit_id", "batches can only be created for active benefits")
		}
		if err := s.store.CreateBatch(txCtx, b); err != nil {
			return err
		}
		if generated, err = s.generate(txCtx, b); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBatchCreated, b.ID, map[string]string{
			"benefit_id":    b.BenefitID.String(),
			"delivery_date": b.DeliveryDate.String(),
			"items":         strconv.Itoa(generated),
		})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err, "create batch")
	}

	if s.metrics != nil {
		s.metrics.IncrementBatchesCreated()
	}
	s.logger.InfoContext(ctx, "batch created",
		"request_id", requestcontext.RequestID(ctx),
		"batch_id", b.ID,
		"items", generated,
	)
	return s.GetBatch(ctx, b.ID)
}

// GenerateItems snapshots the eligible assignments of the batch's benefit.
// It does nothing when the batch already has items, and re-running it never
// duplicates a row. It returns the number of items inserted.
func (s *Service) GenerateItems(ctx context.Context, batchID id.BatchID) (int, error) {
	var generated int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.store.FindBatch(txCtx, batchID)
		if err != nil {
			return err
		}
		generated, err = s.generate(txCtx, b)
		return err
	})
	if err != nil {
		return 0, translate(err, "generate delivery items")
	}
	return generated, nil
}

// generate must run inside a transaction.
func (s *Service) generate(ctx context.Context, b *models.Batch) (int, error) {
	has, err := s.store.HasItems(ctx, b.ID)
	if err != nil || has {
		return 0, err
	}
	eligible, err := s.ledger.Eligible(ctx, b.BenefitID)
	if err != nil {
		return 0, err
	}
	inserted, err := s.store.InsertItems(ctx, models.Snapshot(b.ID, eligible, s.newItemID, requestcontext.Now(ctx)))
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.ObserveSnapshot(len(eligible), inserted)
	}
	return inserted, nil
}

// UpdateBatch changes the date and notes. Items are generated only when the
// batch has none yet.
func (s *Service) UpdateBatch(ctx context.Context, batchID id.BatchID, f models.Fields) (*models.Detail, error) {
	ctx, span := tracer.Start(ctx, "distribution.UpdateBatch", withBatch(batchID))
	defer span.End()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.store.FindBatch(txCtx, batchID)
		if err != nil {
			return err
		}
		next, err := current.Revise(f, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.UpdateBatch(txCtx, next); err != nil {
			return err
		}
		if _, err := s.generate(txCtx, next); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBatchUpdated, next.ID, map[string]string{
			"delivery_date": next.DeliveryDate.String(),
		})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err, "update batch")
	}
	return s.GetBatch(ctx, batchID)
}

// SetDelivered toggles one item of the batch.
func (s *Service) SetDelivered(ctx context.Context, batchID id.BatchID, itemID id.ItemID, delivered bool) (*models.Item, error) {
	it, err := s.store.SetDelivered(ctx, batchID, itemID, delivered)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "delivery item not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update delivery item")
	}
	if s.metrics != nil {
		s.metrics.AddChecklistChanges(delivered, 1)
	}
	return it, nil
}

// ApplyChecklist makes exactly the checked items delivered. Ids that are not
// items of the batch are ignored. It returns the number of rows changed.
func (s *Service) ApplyChecklist(ctx context.Context, batchID id.BatchID, checked []id.ItemID) (int, error) {
	ctx, span := tracer.Start(ctx, "distribution.ApplyChecklist", withBatch(batchID))
	defer span.End()

	var plan models.ChecklistPlan
	changed := 0
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindBatch(txCtx, batchID); err != nil {
			return err
		}
		items, err := s.store.ListItems(txCtx, batchID)
		if err != nil {
			return err
		}
		plan = models.PlanChecklist(items, checked)
		if plan.Changes() == 0 {
			return nil
		}
		delivered, err := s.store.SetDeliveredMany(txCtx, batchID, plan.Deliver, true)
		if err != nil {
			return err
		}
		undelivered, err := s.store.SetDeliveredMany(txCtx, batchID, plan.Undeliver, false)
		if err != nil {
			return err
		}
		changed = delivered + undelivered
		return s.emit(txCtx, audit.EventChecklistApplied, batchID, map[string]string{
			"delivered":   strconv.Itoa(delivered),
			"undelivered": strconv.Itoa(undelivered),
		})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, translate(err, "apply checklist")
	}
	if s.metrics != nil {
		s.metrics.AddChecklistChanges(true, len(plan.Deliver))
		s.metrics.AddChecklistChanges(false, len(plan.Undeliver))
	}
	return changed, nil
}

// DeleteBatch removes a batch and its items unless any item was delivered.
func (s *Service) DeleteBatch(ctx context.Context, batchID id.BatchID) error {
	ctx, span := tracer.Start(ctx, "distribution.DeleteBatch", withBatch(batchID))
	defer span.End()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindBatch(txCtx, batchID); err != nil {
			return err
		}
		delivered, err := s.store.CountDelivered(txCtx, batchID)
		if err != nil {
			return err
		}
		if delivered > 0 {
			return errHasDeliveries
		}
		if err := s.store.DeleteBatch(txCtx, batchID); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBatchDeleted, batchID, nil)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return translate(err, "delete batch")
	}
	return nil
}

// GetBatch returns the batch with its items ordered by beneficiary name.
func (s *Service) GetBatch(ctx context.Context, batchID id.BatchID) (*models.Detail, error) {
	b, err := s.store.FindBatch(ctx, batchID)
	if err != nil {
		return nil, translate(err, "load batch")
	}
	items, err := s.store.ListItems(ctx, batchID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load delivery items")
	}

	assignmentIDs := make([]id.AssignmentID, len(items))
	for i, it := range items {
		assignmentIDs[i] = it.AssignmentID
	}
	recipients, err := s.recipients.Recipients(ctx, assignmentIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recipients")
	}

	views := make([]models.ItemView, len(items))
	for i, it := range items {
		views[i] = models.ItemView{Item: it, Recipient: recipients[it.AssignmentID]}
	}
	slices.SortFunc(views, models.ByRecipientName)
	return &models.Detail{Batch: b, Items: views, Totals: models.TotalsOf(items)}, nil
}

func (s *Service) ListBatches(ctx context.Context, filter models.ListFilter) ([]models.Summary, error) {
	list, err := s.store.ListBatches(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list batches")
	}
	return list, nil
}

// CountByBenefit guards benefit deletes.
func (s *Service) CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error) {
	return s.store.CountByBenefit(ctx, benefitID)
}

func translate(err error, action string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case sentinel.Constraint(err) == models.ConstraintBatchPerDay:
		return models.ErrBatchExists
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "batch not found")
	case errors.Is(err, sentinel.ErrInUse):
		return dErrors.Wrap(err, dErrors.CodeConflict, "batch is referenced by other records")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, batchID id.BatchID, details map[string]string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:        action,
		AggregateType: audit.AggregateBatch,
		AggregateID:   batchID.String(),
		Details:       details,
	})
}

func withBatch(batchID id.BatchID) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("batch.id", batchID.String()))
}
