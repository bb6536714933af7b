package lockout

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps records in process memory. Records are dropped once
// both their window and their lock have passed.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*entry
}

type entry struct {
	rec     Record
	expires time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*entry)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	rec := e.rec
	return &rec, nil
}

func (s *InMemoryStore) RecordFailure(_ context.Context, key string, now time.Time, window time.Duration) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(now)

	e, ok := s.records[key]
	if !ok {
		e = &entry{rec: Record{Key: key}}
		s.records[key] = e
	}
	e.rec.Failures++
	e.rec.LastFailureAt = now
	if exp := now.Add(window); exp.After(e.expires) {
		e.expires = exp
	}
	rec := e.rec
	return &rec, nil
}

func (s *InMemoryStore) Lock(_ context.Context, key string, until time.Time, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[key]
	if !ok {
		e = &entry{rec: Record{Key: key}}
		s.records[key] = e
	}
	e.rec.Failures = 0
	e.rec.LockedUntil = &until
	if until.After(e.expires) {
		e.expires = until
	}
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *InMemoryStore) prune(now time.Time) {
	for key, e := range s.records {
		if !now.Before(e.expires) {
			delete(s.records, key)
		}
	}
}
