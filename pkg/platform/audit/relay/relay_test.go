package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "amparo/pkg/platform/audit"
)

type fakeOutbox struct {
	mu        sync.Mutex
	entries   []audit.OutboxEntry
	published map[uuid.UUID]time.Time
	markErr   error
}

func newFakeOutbox(n int, created time.Time) *fakeOutbox {
	o := &fakeOutbox{published: map[uuid.UUID]time.Time{}}
	for i := 0; i < n; i++ {
		o.entries = append(o.entries, audit.OutboxEntry{
			ID:        uuid.New(),
			Key:       "agg",
			Payload:   []byte(`{}`),
			CreatedAt: created,
		})
	}
	return o
}

func (o *fakeOutbox) Pending(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []audit.OutboxEntry
	for _, e := range o.entries {
		if _, done := o.published[e.ID]; done {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *fakeOutbox) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.markErr != nil {
		return o.markErr
	}
	for _, id := range ids {
		o.published[id] = at
	}
	return nil
}

func (o *fakeOutbox) publishedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.published)
}

type fakeSink struct {
	batches [][]audit.OutboxEntry
	err     error
}

func (s *fakeSink) Publish(_ context.Context, entries []audit.OutboxEntry) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, entries)
	return nil
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("publishes then marks a batch", func(t *testing.T) {
		outbox := newFakeOutbox(3, now.Add(-time.Minute))
		sink := &fakeSink{}
		m := NewMetrics(prometheus.NewRegistry())
		r := New(outbox, sink, WithBatchSize(2), WithClock(clock), WithMetrics(m))

		n, err := r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, sink.batches, 1)
		assert.Len(t, sink.batches[0], 2)
		assert.Len(t, outbox.published, 2)
		assert.Equal(t, now, outbox.published[outbox.entries[0].ID])
		assert.Equal(t, float64(2), testutil.ToFloat64(m.Relayed))

		n, err = r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, sink.batches, 2)
	})

	t.Run("sink failure leaves entries pending", func(t *testing.T) {
		outbox := newFakeOutbox(2, now)
		r := New(outbox, &fakeSink{err: errors.New("broker down")}, WithClock(clock))

		_, err := r.RunOnce(context.Background())
		require.ErrorContains(t, err, "broker down")
		assert.Empty(t, outbox.published)
	})

	t.Run("mark failure is reported", func(t *testing.T) {
		outbox := newFakeOutbox(1, now)
		outbox.markErr = errors.New("db gone")
		sink := &fakeSink{}
		r := New(outbox, sink, WithClock(clock))

		_, err := r.RunOnce(context.Background())
		require.ErrorContains(t, err, "mark published")
		assert.Len(t, sink.batches, 1)
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	outbox := newFakeOutbox(5, time.Now())
	sink := &fakeSink{}
	r := New(outbox, sink, WithBatchSize(2), WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return outbox.publishedCount() == 5 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
