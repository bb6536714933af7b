package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	bmetrics "amparo/internal/beneficiary/metrics"
	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, b *models.Beneficiary) error
	Update(ctx context.Context, b *models.Beneficiary) error
	FindByID(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, beneficiaryID id.BeneficiaryID) error
	List(ctx context.Context, filter models.ListFilter) ([]*models.Beneficiary, error)
}

// AssignmentCounter reports how many assignments reference a beneficiary.
type AssignmentCounter interface {
	CountByBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// maxCodeAttempts bounds both the pre-insert availability loop and the
// insert retries after a unique violation on code.
const maxCodeAttempts = 8

var tracer = otel.Tracer("amparo/internal/beneficiary")

// Service orchestrates the beneficiary lifecycle.
type Service struct {
	store       Store
	assignments AssignmentCounter
	logger      *slog.Logger
	auditor     AuditPublisher
	metrics     *bmetrics.Metrics
	tx          tx.Runner
	entropy     io.Reader
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

func WithMetrics(m *bmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTx sets the transaction runner. Defaults to an in-process lock.
func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithEntropy overrides the randomness behind generated codes.
func WithEntropy(r io.Reader) Option {
	return func(s *Service) {
		s.entropy = r
	}
}

func New(store Store, assignments AssignmentCounter, opts ...Option) *Service {
	s := &Service{store: store, assignments: assignments}
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

// Create registers a beneficiary and assigns its code. A unique violation on
// code from a concurrent insert is retried with a fresh code.
func (s *Service) Create(ctx context.Context, f models.Fields) (*models.Beneficiary, error) {
	ctx, span := tracer.Start(ctx, "beneficiary.Create")
	defer span.End()
	defer s.observeSave(time.Now())

	today := requestcontext.Today(ctx)
	now := requestcontext.Now(ctx)

	var created *models.Beneficiary
	for attempt := 1; created == nil; attempt++ {
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			code, err := s.availableCode(txCtx, today)
			if err != nil {
				return err
			}
			b, err := models.NewBeneficiary(id.BeneficiaryID(uuid.New()), code, f, today, now)
			if err != nil {
				return err
			}
			if err := s.store.Create(txCtx, b); err != nil {
				return err
			}
			if err := s.emit(txCtx, audit.EventBeneficiaryCreated, b.ID, map[string]string{"code": b.Code}); err != nil {
				return err
			}
			created = b
			return nil
		})
		if err == nil {
			break
		}
		if sentinel.Constraint(err) == models.ConstraintCode && attempt < maxCodeAttempts {
			s.incrementCodeCollision()
			continue
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err, "create beneficiary")
	}

	span.SetAttributes(attribute.String("beneficiary.id", created.ID.String()))
	s.incrementCreated()
	s.logger.InfoContext(ctx, "beneficiary created",
		"request_id", requestcontext.RequestID(ctx),
		"beneficiary_id", created.ID,
		"code", created.Code,
	)
	return created, nil
}

// availableCode generates codes until one is not taken.
func (s *Service) availableCode(ctx context.Context, today id.Date) (string, error) {
	for range maxCodeAttempts {
		code, err := models.GenerateCode(today, s.entropy)
		if err != nil {
			return "", err
		}
		taken, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
		s.incrementCodeCollision()
	}
	return "", dErrors.New(dErrors.CodeInternal, "could not allocate a unique beneficiary code")
}

// Update replaces the editable attributes. The code never changes.
func (s *Service) Update(ctx context.Context, beneficiaryID id.BeneficiaryID, f models.Fields) (*models.Beneficiary, error) {
	ctx, span := tracer.Start(ctx, "beneficiary.Update", withID(beneficiaryID))
	defer span.End()
	defer s.observeSave(time.Now())

	today := requestcontext.Today(ctx)
	now := requestcontext.Now(ctx)

	var updated *models.Beneficiary
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.store.FindByID(txCtx, beneficiaryID)
		if err != nil {
			return err
		}
		previous := b.Status
		if err := b.Apply(f, today, now); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, b); err != nil {
			return err
		}
		if err := s.emit(txCtx, audit.EventBeneficiaryUpdated, b.ID, nil); err != nil {
			return err
		}
		if previous != b.Status {
			details := map[string]string{"from": string(previous), "to": string(b.Status)}
			if err := s.emit(txCtx, audit.EventBeneficiaryStatusChanged, b.ID, details); err != nil {
				return err
			}
		}
		updated = b
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err, "update beneficiary")
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	b, err := s.store.FindByID(ctx, beneficiaryID)
	if err != nil {
		return nil, translate(err, "load beneficiary")
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.Beneficiary, error) {
	list, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list beneficiaries")
	}
	return list, nil
}

// Delete removes a beneficiary that has never been assigned a benefit.
func (s *Service) Delete(ctx context.Context, beneficiaryID id.BeneficiaryID) error {
	ctx, span := tracer.Start(ctx, "beneficiary.Delete", withID(beneficiaryID))
	defer span.End()

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindByID(txCtx, beneficiaryID); err != nil {
			return err
		}
		if s.assignments != nil {
			n, err := s.assignments.CountByBeneficiary(txCtx, beneficiaryID)
			if err != nil {
				return err
			}
			if n > 0 {
				return errHasHistory
			}
		}
		if err := s.store.Delete(txCtx, beneficiaryID); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventBeneficiaryDeleted, beneficiaryID, nil)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return translate(err, "delete beneficiary")
	}
	return nil
}

var errHasHistory = dErrors.New(dErrors.CodeConflict, "beneficiary has assignments and cannot be deleted")

// translate maps store failures to domain errors. Errors that are already
// domain errors pass through.
func translate(err error, action string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "beneficiary not found")
	case sentinel.Constraint(err) == models.ConstraintNationalID:
		return dErrors.NewField("national_id", "a beneficiary with this CPF is already registered")
	case errors.Is(err, sentinel.ErrInUse):
		return errHasHistory
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, beneficiaryID id.BeneficiaryID, details map[string]string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:        action,
		AggregateType: audit.AggregateBeneficiary,
		AggregateID:   beneficiaryID.String(),
		Details:       details,
	})
}

func withID(beneficiaryID id.BeneficiaryID) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("beneficiary.id", beneficiaryID.String()))
}

func (s *Service) observeSave(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSave(start)
	}
}

func (s *Service) incrementCreated() {
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
}

func (s *Service) incrementCodeCollision() {
	if s.metrics != nil {
		s.metrics.IncrementCodeCollision()
	}
}
