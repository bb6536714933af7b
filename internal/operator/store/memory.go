package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"amparo/internal/operator/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

// InMemoryStore keeps operators in a map keyed by id.
type InMemoryStore struct {
	mu        sync.RWMutex
	operators map[id.OperatorID]models.Operator
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{operators: make(map[id.OperatorID]models.Operator)}
}

func (s *InMemoryStore) Create(_ context.Context, op *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.operators[op.ID]; exists {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, "operators_pkey")
	}
	for _, other := range s.operators {
		if other.Username == op.Username {
			return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintUsername)
		}
	}
	s.operators[op.ID] = *op
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, op *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.operators[op.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.operators[op.ID] = *op
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, operatorID id.OperatorID) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.operators[operatorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &op, nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, op := range s.operators {
		if op.Username == username {
			return &op, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns every operator ordered by username.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Operator, error) {
	s.mu.RLock()
	out := make([]*models.Operator, 0, len(s.operators))
	for _, op := range s.operators {
		out = append(out, &op)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Operator) int {
		return strings.Compare(a.Username, b.Username)
	})
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.operators), nil
}
