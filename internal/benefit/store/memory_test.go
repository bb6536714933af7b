package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amparo/internal/benefit/models"
	id "amparo/pkg/domain"
	"amparo/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) benefit(name string, category models.Category) *models.Benefit {
	return &models.Benefit{
		ID:          id.BenefitID(uuid.New()),
		Name:        name,
		Category:    category,
		Periodicity: models.PeriodicityMonthly,
		Active:      true,
		CreatedAt:   time.Now(),
	}
}

func (s *InMemoryStoreSuite) TestNameIsUnique() {
	s.Require().NoError(s.store.Create(s.ctx, s.benefit("Cesta", models.CategoryFood)))

	err := s.store.Create(s.ctx, s.benefit("Cesta", models.CategoryOther))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	s.Equal(models.ConstraintName, sentinel.Constraint(err))

	other := s.benefit("Leite", models.CategoryFood)
	s.Require().NoError(s.store.Create(s.ctx, other))
	other.Name = "Cesta"
	s.ErrorIs(s.store.Update(s.ctx, other), sentinel.ErrAlreadyUsed)
}

func (s *InMemoryStoreSuite) TestListOrdersByCategoryThenName() {
	for _, b := range []*models.Benefit{
		s.benefit("Remédios", models.CategoryHealth),
		s.benefit("leite", models.CategoryFood),
		s.benefit("Cesta", models.CategoryFood),
	} {
		s.Require().NoError(s.store.Create(s.ctx, b))
	}

	list, err := s.store.List(s.ctx, models.ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("Cesta", list[0].Name)
	s.Equal("leite", list[1].Name)
	s.Equal("Remédios", list[2].Name)

	list, err = s.store.List(s.ctx, models.ListFilter{Category: models.CategoryHealth})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *InMemoryStoreSuite) TestDelete() {
	b := s.benefit("Cesta", models.CategoryFood)
	s.Require().NoError(s.store.Create(s.ctx, b))
	s.Require().NoError(s.store.Delete(s.ctx, b.ID))
	_, err := s.store.FindByID(s.ctx, b.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, b.ID), sentinel.ErrNotFound)
}
