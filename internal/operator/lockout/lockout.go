// Package lockout throttles repeated failed sign-ins. Failures are counted
// per key (username and client address) inside a window; reaching the limit
// locks the key for a fixed duration.
package lockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"amparo/pkg/requestcontext"
)

// Policy bounds failed attempts per key.
type Policy struct {
	Attempts     int
	Window       time.Duration
	LockDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 5, Window: 15 * time.Minute, LockDuration: 15 * time.Minute}
}

func (p Policy) validate() error {
	if p.Attempts <= 0 || p.Window <= 0 || p.LockDuration <= 0 {
		return errors.New("lockout policy values must be positive")
	}
	return nil
}

// Record is the failure state of one key.
type Record struct {
	Key           string
	Failures      int
	LastFailureAt time.Time
	LockedUntil   *time.Time
}

// LockedAt reports whether the key is locked at now.
func (r *Record) LockedAt(now time.Time) bool {
	return r != nil && r.LockedUntil != nil && now.Before(*r.LockedUntil)
}

// Store keeps failure records. Get returns nil, nil for an unknown key.
// Lock also resets the failure count so a key starts fresh once the lock
// expires.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	RecordFailure(ctx context.Context, key string, now time.Time, window time.Duration) (*Record, error)
	Lock(ctx context.Context, key string, until time.Time, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
}

type Guard struct {
	store  Store
	policy Policy
	logger *slog.Logger
}

type Option func(*Guard)

func WithPolicy(p Policy) Option {
	return func(g *Guard) {
		g.policy = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func NewGuard(store Store, opts ...Option) (*Guard, error) {
	if store == nil {
		return nil, errors.New("lockout store is required")
	}
	g := &Guard{store: store, policy: DefaultPolicy(), logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.policy.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Check returns how long key must wait before trying again. Zero means the
// attempt may proceed.
func (g *Guard) Check(ctx context.Context, key string) (time.Duration, error) {
	rec, err := g.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	now := requestcontext.Now(ctx)
	if !rec.LockedAt(now) {
		return 0, nil
	}
	return rec.LockedUntil.Sub(now), nil
}

// Fail records a failed attempt and locks key once the policy limit is hit.
func (g *Guard) Fail(ctx context.Context, key string) error {
	now := requestcontext.Now(ctx)
	rec, err := g.store.RecordFailure(ctx, key, now, g.policy.Window)
	if err != nil {
		return err
	}
	if rec.Failures < g.policy.Attempts {
		return nil
	}
	until := now.Add(g.policy.LockDuration)
	if err := g.store.Lock(ctx, key, until, g.policy.LockDuration); err != nil {
		return err
	}
	g.logger.WarnContext(ctx, "sign-in locked",
		"request_id", requestcontext.RequestID(ctx),
		"key", key,
		"failures", rec.Failures,
		"locked_until", until,
	)
	return nil
}

// Reset forgets the failures of key after a successful sign-in.
func (g *Guard) Reset(ctx context.Context, key string) error {
	return g.store.Clear(ctx, key)
}
