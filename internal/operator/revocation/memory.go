package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryList keeps revoked ids in a map. It serves single-instance
// deployments without Redis and tests.
type InMemoryList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	clock   Clock
}

type InMemoryOption func(*InMemoryList)

// WithClock replaces time.Now.
func WithClock(clock Clock) InMemoryOption {
	return func(l *InMemoryList) {
		if clock != nil {
			l.clock = clock
		}
	}
}

func NewInMemoryList(opts ...InMemoryOption) *InMemoryList {
	l := &InMemoryList{revoked: make(map[string]time.Time), clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Revoke records jti until ttl elapses. Expired entries are pruned on write.
func (l *InMemoryList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.clock()
	for k, until := range l.revoked {
		if !now.Before(until) {
			delete(l.revoked, k)
		}
	}
	l.revoked[jti] = now.Add(ttl)
	return nil
}

func (l *InMemoryList) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	until, ok := l.revoked[jti]
	if !ok {
		return false, nil
	}
	return l.clock().Before(until), nil
}
