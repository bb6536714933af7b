package store

import (
	"context"
	"slices"
	"sync"

	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

// InMemoryStore keeps assignments in a map and enforces the one-active-per-
// pair rule the way the partial unique index does.
type InMemoryStore struct {
	mu          sync.RWMutex
	assignments map[id.AssignmentID]models.Assignment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assignments: make(map[id.AssignmentID]models.Assignment)}
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assignments[a.ID]; exists {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, "assignments_pkey")
	}
	if s.conflicts(a) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintOneActive)
	}
	s.assignments[a.ID] = *a
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assignments[a.ID]; !exists {
		return sentinel.ErrNotFound
	}
	if s.conflicts(a) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintOneActive)
	}
	s.assignments[a.ID] = *a
	return nil
}

// conflicts must be called with the write lock held.
func (s *InMemoryStore) conflicts(a *models.Assignment) bool {
	if !a.Active {
		return false
	}
	for otherID, other := range s.assignments {
		if otherID != a.ID && other.Active &&
			other.BeneficiaryID == a.BeneficiaryID && other.BenefitID == a.BenefitID {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) FindByID(_ context.Context, assignmentID id.AssignmentID) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[assignmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

// FindByIDs returns the assignments that exist among ids, in no particular order.
func (s *InMemoryStore) FindByIDs(_ context.Context, ids []id.AssignmentID) ([]*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Assignment, 0, len(ids))
	for _, assignmentID := range ids {
		if a, ok := s.assignments[assignmentID]; ok {
			out = append(out, &a)
		}
	}
	return out, nil
}

// HasOtherActive reports whether an active assignment other than exclude
// exists for the pair.
func (s *InMemoryStore) HasOtherActive(_ context.Context, beneficiaryID id.BeneficiaryID, benefitID id.BenefitID, exclude id.AssignmentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assignments {
		if a.ID != exclude && a.Active && a.BeneficiaryID == beneficiaryID && a.BenefitID == benefitID {
			return true, nil
		}
	}
	return false, nil
}

// ListByBeneficiary returns the full history of a beneficiary, newest start first.
func (s *InMemoryStore) ListByBeneficiary(_ context.Context, beneficiaryID id.BeneficiaryID) ([]*models.Assignment, error) {
	return s.collect(func(a *models.Assignment) bool { return a.BeneficiaryID == beneficiaryID }), nil
}

// ListActiveByBenefit returns the assignments of a benefit whose stored flag is active.
func (s *InMemoryStore) ListActiveByBenefit(_ context.Context, benefitID id.BenefitID) ([]*models.Assignment, error) {
	return s.collect(func(a *models.Assignment) bool { return a.BenefitID == benefitID && a.Active }), nil
}

func (s *InMemoryStore) CountByBeneficiary(_ context.Context, beneficiaryID id.BeneficiaryID) (int, error) {
	return len(s.collect(func(a *models.Assignment) bool { return a.BeneficiaryID == beneficiaryID })), nil
}

func (s *InMemoryStore) CountByBenefit(_ context.Context, benefitID id.BenefitID) (int, error) {
	return len(s.collect(func(a *models.Assignment) bool { return a.BenefitID == benefitID })), nil
}

func (s *InMemoryStore) collect(keep func(*models.Assignment) bool) []*models.Assignment {
	s.mu.RLock()
	var out []*models.Assignment
	for _, a := range s.assignments {
		if keep(&a) {
			out = append(out, &a)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Assignment) int {
		if c := b.StartDate.Time().Compare(a.StartDate.Time()); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
