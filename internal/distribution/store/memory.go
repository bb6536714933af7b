package store

import (
	"context"
	"slices"
	"sync"

	"amparo/internal/distribution/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

// InMemoryStore keeps batches and items in maps. It mirrors the Postgres
// unique constraints and the item cascade on batch delete.
type InMemoryStore struct {
	mu      sync.RWMutex
	batches map[id.BatchID]models.Batch
	items   map[id.ItemID]models.Item
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		batches: make(map[id.BatchID]models.Batch),
		items:   make(map[id.ItemID]models.Item),
	}
}

func (s *InMemoryStore) CreateBatch(_ context.Context, b *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.batches[b.ID]; exists {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, "batches_pkey")
	}
	if s.dayTaken(b) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintBatchPerDay)
	}
	s.batches[b.ID] = *b
	return nil
}

func (s *InMemoryStore) UpdateBatch(_ context.Context, b *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.batches[b.ID]; !exists {
		return sentinel.ErrNotFound
	}
	if s.dayTaken(b) {
		return sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintBatchPerDay)
	}
	s.batches[b.ID] = *b
	return nil
}

// dayTaken must be called with the write lock held.
func (s *InMemoryStore) dayTaken(b *models.Batch) bool {
	for otherID, other := range s.batches {
		if otherID != b.ID && other.BenefitID == b.BenefitID && other.DeliveryDate == b.DeliveryDate {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) FindBatch(_ context.Context, batchID id.BatchID) (*models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[batchID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &b, nil
}

// DeleteBatch removes the batch and its items.
func (s *InMemoryStore) DeleteBatch(_ context.Context, batchID id.BatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[batchID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.batches, batchID)
	for itemID, it := range s.items {
		if it.BatchID == batchID {
			delete(s.items, itemID)
		}
	}
	return nil
}

// ListBatches returns matching batches with their totals, newest delivery first.
func (s *InMemoryStore) ListBatches(_ context.Context, filter models.ListFilter) ([]models.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Summary
	for _, b := range s.batches {
		if !filter.Matches(&b) {
			continue
		}
		out = append(out, models.Summary{Batch: &b, Totals: models.TotalsOf(s.itemsOf(b.ID))})
	}
	slices.SortFunc(out, func(a, b models.Summary) int {
		if c := b.Batch.DeliveryDate.Time().Compare(a.Batch.DeliveryDate.Time()); c != 0 {
			return c
		}
		return b.Batch.CreatedAt.Compare(a.Batch.CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) CountByBenefit(_ context.Context, benefitID id.BenefitID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.batches {
		if b.BenefitID == benefitID {
			n++
		}
	}
	return n, nil
}

// InsertItems adds items, silently skipping any whose (batch, assignment)
// pair already exists. It returns the number inserted.
func (s *InMemoryStore) InsertItems(_ context.Context, items []models.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := make(map[[2]string]bool)
	for _, it := range s.items {
		taken[pairKey(it)] = true
	}
	inserted := 0
	for _, it := range items {
		if _, ok := s.batches[it.BatchID]; !ok {
			return inserted, sentinel.Violation(sentinel.ErrInUse, "delivery_items_batch_id_fkey")
		}
		if taken[pairKey(it)] {
			continue
		}
		taken[pairKey(it)] = true
		s.items[it.ID] = it
		inserted++
	}
	return inserted, nil
}

func pairKey(it models.Item) [2]string {
	return [2]string{it.BatchID.String(), it.AssignmentID.String()}
}

func (s *InMemoryStore) HasItems(_ context.Context, batchID id.BatchID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.BatchID == batchID {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryStore) ListItems(_ context.Context, batchID id.BatchID) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsOf(batchID), nil
}

// itemsOf must be called with the lock held.
func (s *InMemoryStore) itemsOf(batchID id.BatchID) []models.Item {
	var out []models.Item
	for _, it := range s.items {
		if it.BatchID == batchID {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b models.Item) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}

func (s *InMemoryStore) CountDelivered(_ context.Context, batchID id.BatchID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.TotalsOf(s.itemsOf(batchID)).Delivered, nil
}

// SetDelivered updates one item of batchID and returns it.
func (s *InMemoryStore) SetDelivered(_ context.Context, batchID id.BatchID, itemID id.ItemID, delivered bool) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	if !ok || it.BatchID != batchID {
		return nil, sentinel.ErrNotFound
	}
	it.Delivered = delivered
	s.items[itemID] = it
	return &it, nil
}

// SetDeliveredMany flips the items of batchID among ids whose flag differs
// from delivered, and returns how many changed.
func (s *InMemoryStore) SetDeliveredMany(_ context.Context, batchID id.BatchID, ids []id.ItemID, delivered bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, itemID := range ids {
		it, ok := s.items[itemID]
		if !ok || it.BatchID != batchID || it.Delivered == delivered {
			continue
		}
		it.Delivered = delivered
		s.items[itemID] = it
		changed++
	}
	return changed, nil
}
