package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	ametrics "amparo/internal/assignment/metrics"
	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,BeneficiaryDirectory,BenefitDirectory,AuditPublisher

type Store interface {
	Create(ctx context.Context, a *models.Assignment) error
	Update(ctx context.Context, a *models.Assignment) error
	FindByID(ctx context.Context, assignmentID id.AssignmentID) (*models.Assignment, error)
	FindByIDs(ctx context.Context, ids []id.AssignmentID) ([]*models.Assignment, error)
	HasOtherActive(ctx context.Context, beneficiaryID id.BeneficiaryID, benefitID id.BenefitID, exclude id.AssignmentID) (bool, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) ([]*models.Assignment, error)
	ListActiveByBenefit(ctx context.Context, benefitID id.BenefitID) ([]*models.Assignment, error)
	CountByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (int, error)
	CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error)
}

// BeneficiaryDirectory answers status questions about beneficiaries.
// IsActive returns sentinel.ErrNotFound for an unknown id.
type BeneficiaryDirectory interface {
	IsActive(ctx context.Context, beneficiaryID id.BeneficiaryID) (bool, error)
	FilterActive(ctx context.Context, ids []id.BeneficiaryID) (map[id.BeneficiaryID]bool, error)
}

// BenefitDirectory answers status questions about catalog entries.
// IsActive returns sentinel.ErrNotFound for an unknown id.
type BenefitDirectory interface {
	IsActive(ctx context.Context, benefitID id.BenefitID) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

var tracer = otel.Tracer("amparo/internal/assignment")

// Service owns the assignment state machine. Every write validates, then
// recomputes Active, then persists, all inside one transaction.
type Service struct {
	store         Store
	beneficiaries BeneficiaryDirectory
	benefits      BenefitDirectory
	logger        *slog.Logger
	auditor       AuditPublisher
	metrics       *ametrics.Metrics
	tx            tx.Runner
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

func WithMetrics(m *ametrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(store Store, beneficiaries BeneficiaryDirectory, benefits BenefitDirectory, opts ...Option) *Service {
	s := &Service{store: store, beneficiaries: beneficiaries, benefits: benefits}
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

// Create grants a benefit to a beneficiary.
func (s *Service) Create(ctx context.Context, d models.Draft) (*models.Assignment, error) {
	ctx, span := tracer.Start(ctx, "assignment.Create", trace.WithAttributes(
		attribute.String("beneficiary.id", d.BeneficiaryID.String()),
		attribute.String("benefit.id", d.BenefitID.String()),
	))
	defer span.End()

	today := requestcontext.Today(ctx)
	a := models.NewAssignment(id.AssignmentID(uuid.New()), d, today, requestcontext.Now(ctx))

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.validate(txCtx, models.Change{Next: a, Today: today}); err != nil {
			return err
		}
		a.Recompute(today)
		if err := s.store.Create(txCtx, a); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventAssignmentCreated, a, map[string]string{
			"beneficiary_id": a.BeneficiaryID.String(),
			"benefit_id":     a.BenefitID.String(),
		})
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, s.translate(err, "create assignment")
	}

	s.incrementCreated()
	s.logger.InfoContext(ctx, "assignment created",
		"request_id", requestcontext.RequestID(ctx),
		"assignment_id", a.ID,
		"active", a.Active,
	)
	return a, nil
}

// Update edits the benefit and the window. The beneficiary never changes.
func (s *Service) Update(ctx context.Context, assignmentID id.AssignmentID, d models.Draft) (*models.Assignment, error) {
	ctx, span := tracer.Start(ctx, "assignment.Update", withID(assignmentID))
	defer span.End()

	today := requestcontext.Today(ctx)
	var updated *models.Assignment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.store.FindByID(txCtx, assignmentID)
		if err != nil {
			return err
		}
		next := current.Revise(d, requestcontext.Now(txCtx))
		if err := s.validate(txCtx, models.Change{Previous: current, Next: next, Today: today}); err != nil {
			return err
		}
		next.Recompute(today)
		if err := s.store.Update(txCtx, next); err != nil {
			return err
		}
		if err := s.emit(txCtx, audit.EventAssignmentUpdated, next, nil); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, s.translate(err, "update assignment")
	}
	return updated, nil
}

// EndResult reports the outcome of End.
type EndResult struct {
	Assignment   *models.Assignment
	AlreadyEnded bool
}

// End closes an assignment on end, or today when end is nil. Ending an
// assignment that is already ended returns it unchanged with AlreadyEnded
// set. A stale Active flag on such a record is corrected by the same call.
func (s *Service) End(ctx context.Context, assignmentID id.AssignmentID, end *id.Date) (*EndResult, error) {
	ctx, span := tracer.Start(ctx, "assignment.End", withID(assignmentID))
	defer span.End()

	today := requestcontext.Today(ctx)
	endDate := today
	if end != nil {
		endDate = *end
	}

	var result EndResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.store.FindByID(txCtx, assignmentID)
		if err != nil {
			return err
		}
		closed, alreadyEnded := current.EndOn(endDate, today, requestcontext.Now(txCtx))
		if alreadyEnded {
			result = EndResult{Assignment: current, AlreadyEnded: true}
			if current.Active {
				current.Recompute(today)
				return s.store.Update(txCtx, current)
			}
			return nil
		}
		if err := s.validate(txCtx, models.Change{Previous: current, Next: closed, Today: today}); err != nil {
			return err
		}
		closed.Recompute(today)
		if err := s.store.Update(txCtx, closed); err != nil {
			return err
		}
		if err := s.emit(txCtx, audit.EventAssignmentEnded, closed, map[string]string{"end_date": endDate.String()}); err != nil {
			return err
		}
		result = EndResult{Assignment: closed}
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, s.translate(err, "end assignment")
	}
	if !result.AlreadyEnded {
		s.incrementEnded()
	}
	return &result, nil
}

func (s *Service) Get(ctx context.Context, assignmentID id.AssignmentID) (*models.Assignment, error) {
	a, err := s.store.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, s.translate(err, "load assignment")
	}
	return a, nil
}

// ListByBeneficiary returns the full assignment history of a beneficiary.
func (s *Service) ListByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) ([]*models.Assignment, error) {
	if _, err := s.beneficiaries.IsActive(ctx, beneficiaryID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "beneficiary not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load beneficiary")
	}
	list, err := s.store.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list assignments")
	}
	return list, nil
}

// FindByIDs loads the assignments among ids that exist.
func (s *Service) FindByIDs(ctx context.Context, ids []id.AssignmentID) ([]*models.Assignment, error) {
	return s.store.FindByIDs(ctx, ids)
}

// CountByBeneficiary guards beneficiary deletes.
func (s *Service) CountByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (int, error) {
	return s.store.CountByBeneficiary(ctx, beneficiaryID)
}

// CountByBenefit guards benefit deletes.
func (s *Service) CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error) {
	return s.store.CountByBenefit(ctx, benefitID)
}

// Eligible returns the assignments of a benefit that should receive a
// delivery: the stored flag is active and the beneficiary is ACTIVE now.
// The beneficiary check covers flags that went stale since their last save.
func (s *Service) Eligible(ctx context.Context, benefitID id.BenefitID) ([]id.AssignmentID, error) {
	active, err := s.store.ListActiveByBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	beneficiaryIDs := make([]id.BeneficiaryID, len(active))
	for i, a := range active {
		beneficiaryIDs[i] = a.BeneficiaryID
	}
	activeBeneficiaries, err := s.beneficiaries.FilterActive(ctx, beneficiaryIDs)
	if err != nil {
		return nil, err
	}
	out := make([]id.AssignmentID, 0, len(active))
	for _, a := range active {
		if activeBeneficiaries[a.BeneficiaryID] {
			out = append(out, a.ID)
		}
	}
	return out, nil
}

// validate loads the eligibility context and applies the model rules.
func (s *Service) validate(ctx context.Context, c models.Change) error {
	next := c.Next
	beneficiaryActive, err := s.beneficiaries.IsActive(ctx, next.BeneficiaryID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.NewField("beneficiary_id", "beneficiary not found")
	}
	if err != nil {
		return err
	}
	benefitActive, err := s.benefits.IsActive(ctx, next.BenefitID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.NewField("benefit_id", "benefit not found")
	}
	if err != nil {
		return err
	}
	duplicate, err := s.store.HasOtherActive(ctx, next.BeneficiaryID, next.BenefitID, next.ID)
	if err != nil {
		return err
	}

	err = c.Validate(models.Eligibility{
		BeneficiaryActive: beneficiaryActive,
		BenefitActive:     benefitActive,
		DuplicateActive:   duplicate,
	})
	if errors.Is(err, models.ErrDuplicateActive) {
		s.incrementDuplicate(ametrics.SourcePrecheck)
	}
	return err
}

// translate maps store failures to domain errors. A unique violation on the
// active-pair index means a concurrent request won the race; it becomes the
// same field error the pre-check reports.
func (s *Service) translate(err error, action string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case sentinel.Constraint(err) == models.ConstraintOneActive:
		s.incrementDuplicate(ametrics.SourceConstraint)
		return models.ErrDuplicateActive
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "assignment not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, a *models.Assignment, details map[string]string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:        action,
		AggregateType: audit.AggregateAssignment,
		AggregateID:   a.ID.String(),
		Details:       details,
	})
}

func withID(assignmentID id.AssignmentID) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("assignment.id", assignmentID.String()))
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementEnded() {
	if s.metrics != nil {
		s.metrics.IncrementEnded()
	}
}

func (s *Service) incrementDuplicate(source string) {
	if s.metrics != nil {
		s.metrics.IncrementDuplicate(source)
	}
}
