// Package service manages operator accounts and sign-in.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	opmetrics "amparo/internal/operator/metrics"
	"amparo/internal/operator/models"
	"amparo/internal/operator/token"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Issuer,Revoker,AuditPublisher

type Store interface {
	Create(ctx context.Context, op *models.Operator) error
	Update(ctx context.Context, op *models.Operator) error
	FindByID(ctx context.Context, operatorID id.OperatorID) (*models.Operator, error)
	FindByUsername(ctx context.Context, username string) (*models.Operator, error)
	List(ctx context.Context) ([]*models.Operator, error)
	Count(ctx context.Context) (int, error)
}

// Issuer signs access tokens.
type Issuer interface {
	Issue(sub token.Subject, now time.Time) (*token.Issued, error)
}

// Revoker records logged-out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// Throttle limits repeated failed sign-ins per key.
type Throttle interface {
	Check(ctx context.Context, key string) (time.Duration, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Operator  *models.Operator
}

type Service struct {
	store    Store
	issuer   Issuer
	revoker  Revoker
	throttle Throttle
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *opmetrics.Metrics
	tx       tx.Runner
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

func WithMetrics(m *opmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithThrottle(t Throttle) Option {
	return func(s *Service) {
		s.throttle = t
	}
}

func WithTx(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

func New(store Store, issuer Issuer, revoker Revoker, opts ...Option) *Service {
	s := &Service{store: store, issuer: issuer, revoker: revoker}
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

var errBadCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")

// Login checks the credentials and issues a bearer token. Unknown users,
// wrong passwords and inactive accounts fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = models.NormalizeUsername(username)
	throttleKey := username + "|" + requestcontext.ClientIP(ctx)
	if err := s.checkThrottle(ctx, throttleKey); err != nil {
		return nil, err
	}

	op, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		models.BurnComparison(password)
		return nil, s.rejectLogin(ctx, throttleKey, username, "unknown username")
	}
	if err != nil {
		s.countLogin(opmetrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load operator")
	}

	ok, err := op.CheckPassword(password)
	if err != nil {
		s.countLogin(opmetrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	if !ok {
		return nil, s.rejectLogin(ctx, throttleKey, username, "wrong password")
	}
	if !op.Active {
		return nil, s.rejectLogin(ctx, throttleKey, username, "inactive operator")
	}

	issued, err := s.issuer.Issue(token.Subject{
		OperatorID: op.ID,
		Username:   op.Username,
		Role:       op.Role,
		Superuser:  op.Superuser,
	}, requestcontext.Now(ctx))
	if err != nil {
		s.countLogin(opmetrics.OutcomeError)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, throttleKey); err != nil {
			s.logger.WarnContext(ctx, "failed to reset login throttle", "error", err)
		}
	}
	s.countLogin(opmetrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "operator logged in",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", op.ID,
	)
	return &Session{Token: issued.Value, ExpiresAt: issued.ExpiresAt, Operator: op}, nil
}

func (s *Service) checkThrottle(ctx context.Context, key string) error {
	if s.throttle == nil {
		return nil
	}
	wait, err := s.throttle.Check(ctx, key)
	if err != nil {
		s.countLogin(opmetrics.OutcomeError)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check login throttle")
	}
	if wait <= 0 {
		return nil
	}
	s.countLogin(opmetrics.OutcomeLocked)
	s.logger.WarnContext(ctx, "login refused while locked",
		"request_id", requestcontext.RequestID(ctx),
		"key", key,
	)
	return dErrors.New(dErrors.CodeRateLimited,
		"too many failed attempts; try again in "+wait.Round(time.Second).String())
}

func (s *Service) rejectLogin(ctx context.Context, throttleKey, username, reason string) error {
	if s.throttle != nil {
		if err := s.throttle.Fail(ctx, throttleKey); err != nil {
			s.logger.WarnContext(ctx, "failed to record login failure", "error", err)
		}
	}
	s.countLogin(opmetrics.OutcomeRejected)
	s.logger.InfoContext(ctx, "login rejected",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"reason", reason,
	)
	if s.auditor != nil {
		err := s.auditor.Emit(ctx, audit.Event{
			Action:        audit.EventLoginFailed,
			AggregateType: audit.AggregateOperator,
			AggregateID:   username,
			Actor:         username,
			Details:       map[string]string{"reason": reason},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "failed to audit rejected login", "error", err)
		}
	}
	return errBadCredentials
}

// Logout revokes the token of the calling operator until it would have
// expired anyway.
func (s *Service) Logout(ctx context.Context) error {
	op, ok := requestcontext.Principal(ctx)
	if !ok || op.TokenID == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	ttl := op.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, op.TokenID, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	if s.metrics != nil {
		s.metrics.IncrementLogout()
	}
	s.logger.InfoContext(ctx, "operator logged out",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", op.ID,
	)
	return nil
}

func (s *Service) Create(ctx context.Context, f models.Fields) (*models.Operator, error) {
	op, err := models.NewOperator(id.OperatorID(uuid.New()), f, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, op); err != nil {
			return err
		}
		return s.emit(txCtx, audit.EventOperatorCreated, op, map[string]string{"role": op.Role.String()})
	})
	if err != nil {
		return nil, translate(err, "create operator")
	}
	s.logger.InfoContext(ctx, "operator created",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", op.ID,
		"role", op.Role,
	)
	return op, nil
}

func (s *Service) Get(ctx context.Context, operatorID id.OperatorID) (*models.Operator, error) {
	op, err := s.store.FindByID(ctx, operatorID)
	if err != nil {
		return nil, translate(err, "load operator")
	}
	return op, nil
}

// List returns every operator ordered by username.
func (s *Service) List(ctx context.Context) ([]*models.Operator, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list operators")
	}
	return list, nil
}

var errSelfLockout = dErrors.New(dErrors.CodeConflict, "operators cannot remove their own administrator access")

// Update applies a partial change. The calling operator may not remove
// their own ability to manage accounts.
func (s *Service) Update(ctx context.Context, operatorID id.OperatorID, c models.Changes) (*models.Operator, error) {
	if c.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no changes requested")
	}
	var updated *models.Operator
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		op, err := s.store.FindByID(txCtx, operatorID)
		if err != nil {
			return err
		}
		couldManage := op.CanManage()
		if err := op.Apply(c, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if caller, ok := requestcontext.Principal(txCtx); ok && caller.ID == op.ID && couldManage && !op.CanManage() {
			return errSelfLockout
		}
		if err := s.store.Update(txCtx, op); err != nil {
			return err
		}
		if err := s.emit(txCtx, audit.EventOperatorUpdated, op, changeDetails(c)); err != nil {
			return err
		}
		updated = op
		return nil
	})
	if err != nil {
		return nil, translate(err, "update operator")
	}
	return updated, nil
}

// Bootstrap creates a superuser administrator when no operator exists. It
// reports whether an account was created.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, nil
	}
	var created bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.store.Count(txCtx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		op, err := models.NewOperator(id.OperatorID(uuid.New()), models.Fields{
			Username:  username,
			Password:  password,
			Role:      id.RoleAdmin,
			Superuser: true,
		}, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.Create(txCtx, op); err != nil {
			return err
		}
		created = true
		return s.emit(txCtx, audit.EventOperatorCreated, op, map[string]string{"role": op.Role.String(), "bootstrap": "true"})
	})
	if err != nil {
		return false, translate(err, "bootstrap administrator")
	}
	if created {
		s.logger.InfoContext(ctx, "bootstrap administrator created", "username", models.NormalizeUsername(username))
	}
	return created, nil
}

func changeDetails(c models.Changes) map[string]string {
	details := map[string]string{}
	if c.Role != nil {
		details["role"] = c.Role.String()
	}
	if c.Superuser != nil {
		details["superuser"] = strconv.FormatBool(*c.Superuser)
	}
	if c.Active != nil {
		details["active"] = strconv.FormatBool(*c.Active)
	}
	if c.Password != nil {
		details["password"] = "changed"
	}
	return details
}

func translate(err error, action string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "operator not found")
	case sentinel.Constraint(err) == models.ConstraintUsername:
		return dErrors.NewField("username", "this username is already taken")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func (s *Service) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementLogin(outcome)
	}
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, op *models.Operator, details map[string]string) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.Emit(ctx, audit.Event{
		Action:        action,
		AggregateType: audit.AggregateOperator,
		AggregateID:   op.ID.String(),
		Details:       details,
	})
}
