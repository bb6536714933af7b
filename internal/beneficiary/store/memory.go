package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"amparo/internal/beneficiary/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

// InMemoryStore keeps beneficiaries in a map and mirrors the unique
// constraints of the Postgres schema.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.BeneficiaryID]models.Beneficiary
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.BeneficiaryID]models.Beneficiary)}
}

func (s *InMemoryStore) Create(_ context.Context, b *models.Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[b.ID]; exists {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, "beneficiaries_pkey")
	}
	if err := s.checkUnique(b); err != nil {
		return err
	}
	s.records[b.ID] = *b
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, b *models.Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[b.ID]; !exists {
		return sentinel.ErrNotFound
	}
	if err := s.checkUnique(b); err != nil {
		return err
	}
	s.records[b.ID] = *b
	return nil
}

// checkUnique must be called with the write lock held.
func (s *InMemoryStore) checkUnique(b *models.Beneficiary) error {
	for otherID, other := range s.records {
		if otherID == b.ID {
			continue
		}
		if other.Code == b.Code {
			return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintCode)
		}
		if b.NationalID != "" && other.NationalID == b.NationalID {
			return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintNationalID)
		}
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.records[beneficiaryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &b, nil
}

func (s *InMemoryStore) FindByIDs(_ context.Context, ids []id.BeneficiaryID) ([]*models.Beneficiary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Beneficiary, 0, len(ids))
	for _, beneficiaryID := range ids {
		if b, ok := s.records[beneficiaryID]; ok {
			out = append(out, &b)
		}
	}
	return out, nil
}

func (s *InMemoryStore) CodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.records {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryStore) Delete(_ context.Context, beneficiaryID id.BeneficiaryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[beneficiaryID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, beneficiaryID)
	return nil
}

// List returns matching records ordered by name, then code.
func (s *InMemoryStore) List(_ context.Context, filter models.ListFilter) ([]*models.Beneficiary, error) {
	s.mu.RLock()
	out := make([]*models.Beneficiary, 0, len(s.records))
	for _, b := range s.records {
		if filter.Matches(&b) {
			out = append(out, &b)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.Beneficiary) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	return page(out, filter.Offset, filter.Limit), nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
