package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amparo/internal/assignment/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store       *InMemoryStore
	ctx         context.Context
	beneficiary id.BeneficiaryID
	benefit     id.BenefitID
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.beneficiary = id.BeneficiaryID(uuid.New())
	s.benefit = id.BenefitID(uuid.New())
}

func (s *InMemoryStoreSuite) assignment(active bool, startDay int) *models.Assignment {
	return &models.Assignment{
		ID:            id.AssignmentID(uuid.New()),
		BeneficiaryID: s.beneficiary,
		BenefitID:     s.benefit,
		Active:        active,
		StartDate:     id.Date{Year: 2024, Month: time.May, Day: startDay},
		CreatedAt:     time.Now(),
	}
}

func (s *InMemoryStoreSuite) TestOneActivePerPair() {
	first := s.assignment(true, 1)
	s.Require().NoError(s.store.Create(s.ctx, first))

	err := s.store.Create(s.ctx, s.assignment(true, 2))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	s.Equal(models.ConstraintOneActive, sentinel.Constraint(err))

	s.Run("inactive cycles do not conflict", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.assignment(false, 3)))
	})

	s.Run("an ended cycle frees the pair", func() {
		first.Active = false
		s.Require().NoError(s.store.Update(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, s.assignment(true, 4)))
	})
}

func (s *InMemoryStoreSuite) TestHasOtherActive() {
	a := s.assignment(true, 1)
	s.Require().NoError(s.store.Create(s.ctx, a))

	other, err := s.store.HasOtherActive(s.ctx, s.beneficiary, s.benefit, a.ID)
	s.Require().NoError(err)
	s.False(other, "the assignment itself is excluded")

	other, err = s.store.HasOtherActive(s.ctx, s.beneficiary, s.benefit, id.AssignmentID{})
	s.Require().NoError(err)
	s.True(other)
}

func (s *InMemoryStoreSuite) TestListsAndCounts() {
	old := s.assignment(false, 1)
	current := s.assignment(true, 5)
	s.Require().NoError(s.store.Create(s.ctx, old))
	s.Require().NoError(s.store.Create(s.ctx, current))

	history, err := s.store.ListByBeneficiary(s.ctx, s.beneficiary)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(current.ID, history[0].ID, "newest start first")

	active, err := s.store.ListActiveByBenefit(s.ctx, s.benefit)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(current.ID, active[0].ID)

	n, err := s.store.CountByBenefit(s.ctx, s.benefit)
	s.Require().NoError(err)
	s.Equal(2, n)

	found, err := s.store.FindByIDs(s.ctx, []id.AssignmentID{old.ID, id.AssignmentID(uuid.New())})
	s.Require().NoError(err)
	s.Len(found, 1)
}
