package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"amparo/internal/benefit/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,UsageCounter,AuditPublisher

type Store interface {
	Create(ctx context.Context, b *models.Benefit) error
	Update(ctx context.Context, b *models.Benefit) error
	FindByID(ctx context.Context, benefitID id.BenefitID) (*models.Benefit, error)
	Delete(ctx context.Context, benefitID id.BenefitID) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Benefit, error)
}

// UsageCounter reports how many rows reference a benefit. Assignments and
// batches each provide one.
type UsageCounter interface {
	CountByBenefit(ctx context.Context, benefitID id.BenefitID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the benefit catalog.
type Service struct {
	store   Store
	usage   []UsageCounter
	logger  *slog.Logger
	auditor AuditPublisher
	tx      tx.Runner
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

func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithUsageCounters registers the references checked before a delete.
func WithUsageCounters(counters ...UsageCounter) Option {
	return func(s *Service) {
		s.usage = append(s.usage, counters...)
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
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

func (s *Service) Create(ctx context.Context, f models.Fields) (*models.Benefit, error) {
	b, err := models.NewBenefit(id.BenefitID(uuid.New()), f, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, b); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBenefitCreated, b.ID, map[string]string{"name": b.Name})
	})
	if err != nil {
		return nil, translate(err, "create benefit")
	}
	s.logger.InfoContext(ctx, "benefit created",
		"request_id", requestcontext.RequestID(ctx),
		"benefit_id", b.ID,
	)
	return b, nil
}

// Update replaces the catalog entry. Deactivation is an update with
// Active=false; existing assignments are not touched.
func (s *Service) Update(ctx context.Context, benefitID id.BenefitID, f models.Fields) (*models.Benefit, error) {
	var updated *models.Benefit
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.store.FindByID(txCtx, benefitID)
		if err != nil {
			return err
		}
		wasActive := b.Active
		if err := b.Apply(f, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, b); err != nil {
			return err
		}
		var details map[string]string
		if wasActive != b.Active {
			details = map[string]string{"active": strconv.FormatBool(b.Active)}
		}
		if err := s.emit(txCtx, audit.EventBenefitUpdated, b.ID, details); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, translate(err, "update benefit")
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, benefitID id.BenefitID) (*models.Benefit, error) {
	b, err := s.store.FindByID(ctx, benefitID)
	if err != nil {
		return nil, translate(err, "load benefit")
	}
	return b, nil
}

// List returns the catalog ordered by category, then name.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.Benefit, error) {
	list, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list benefits")
	}
	return list, nil
}

// Delete removes a benefit that no assignment or batch references.
func (s *Service) Delete(ctx context.Context, benefitID id.BenefitID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindByID(txCtx, benefitID); err != nil {
			return err
		}
		for _, counter := range s.usage {
			n, err := counter.CountByBenefit(txCtx, benefitID)
			if err != nil {
				return err
			}
			if n > 0 {
				return errHasHistory
			}
		}
		if err := s.store.Delete(txCtx, benefitID); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBenefitDeleted, benefitID, nil)
	})
	if err != nil {
		return translate(err, "delete benefit")
	}
	return nil
}

var errHasHistory = dErrors.New(dErrors.CodeConflict, "benefit is referenced by assignments or batches and cannot be deleted; deactivate it instead")

func translate(err error, action string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "benefit not found")
	case sentinel.Constraint(err) == models.ConstraintName:
		return dErrors.NewField("name", "a benefit with this name already exists")
	case errors.Is(err, sentinel.ErrInUse):
		return errHasHistory
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, benefitID id.BenefitID, details map[string]string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:        action,
		AggregateType: audit.AggregateBenefit,
		AggregateID:   benefitID.String(),
		Details:       details,
	})
}
