package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"amparo/internal/benefit/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

// InMemoryStore keeps the catalog in a map. Name uniqueness is
// case-sensitive, matching the Postgres unique index.
type InMemoryStore struct {
	mu       sync.RWMutex
	benefits map[id.BenefitID]models.Benefit
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{benefits: make(map[id.BenefitID]models.Benefit)}
}

func (s *InMemoryStore) Create(_ context.Context, b *models.Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.benefits[b.ID]; exists {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, "benefits_pkey")
	}
	if s.nameTaken(b) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintName)
	}
	s.benefits[b.ID] = *b
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, b *models.Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.benefits[b.ID]; !exists {
		return sentinel.ErrNotFound
	}
	if s.nameTaken(b) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintName)
	}
	s.benefits[b.ID] = *b
	return nil
}

func (s *InMemoryStore) nameTaken(b *models.Benefit) bool {
	for otherID, other := range s.benefits {
		if otherID != b.ID && other.Name == b.Name {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) FindByID(_ context.Context, benefitID id.BenefitID) (*models.Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.benefits[benefitID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &b, nil
}

func (s *InMemoryStore) Delete(_ context.Context, benefitID id.BenefitID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.benefits[benefitID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.benefits, benefitID)
	return nil
}

// List returns matching benefits ordered by category, then name.
func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Benefit, error) {
	s.mu.RLock()
	out := make([]*models.Benefit, 0, len(s.benefits))
	for _, b := range s.benefits {
		if filter.Matches(&b) {
			out = append(out, &b)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Benefit) int {
		if models.Less(a, b) {
			return -1
		}
		if models.Less(b, a) {
			return 1
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
