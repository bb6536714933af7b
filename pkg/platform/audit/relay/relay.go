// Package relay forwards audit events from the outbox table to the broker.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "amparo/pkg/platform/audit"
)

// Outbox is the durable side of the relay.
type Outbox interface {
	Pending(ctx context.Context, limit int) ([]audit.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Sink publishes a batch. It returns only after every entry was acknowledged.
type Sink interface {
	Publish(ctx context.Context, entries []audit.OutboxEntry) error
}

// Relay drains the outbox in batches. Delivery is at-least-once: entries are
// marked only after the sink acknowledged them, so a crash in between
// republishes the batch.
type Relay struct {
	outbox   Outbox
	sink     Sink
	batch    int
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  *Metrics
}

type Option func(*Relay)

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Relay) {
		r.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

func New(outbox Outbox, sink Sink, opts ...Option) *Relay {
	r := &Relay{
		outbox:   outbox,
		sink:     sink,
		batch:    100,
		interval: 2 * time.Second,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce relays at most one batch and reports how many entries went out.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	entries, err := r.outbox.Pending(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("load pending: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := r.sink.Publish(ctx, entries); err != nil {
		return 0, fmt.Errorf("publish %d entries: %w", len(entries), err)
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if err := r.outbox.MarkPublished(ctx, ids, r.now()); err != nil {
		return 0, fmt.Errorf("mark published: %w", err)
	}
	if r.metrics != nil {
		r.metrics.Relayed.Add(float64(len(entries)))
		r.metrics.Lag.Observe(r.now().Sub(entries[0].CreatedAt).Seconds())
	}
	return len(entries), nil
}

// Run drains the outbox until ctx is cancelled. A full batch is followed
// immediately by the next one; otherwise the relay sleeps for the interval.
// Failures are logged and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		n, err := r.RunOnce(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			return ctx.Err()
		case err != nil:
			r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			if r.metrics != nil {
				r.metrics.Failures.Inc()
			}
		case n > 0:
			r.logger.DebugContext(ctx, "outbox relayed", "count", n)
		}

		if err == nil && n == r.batch {
			timer.Reset(0)
		} else {
			timer.Reset(r.interval)
		}
	}
}
