package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"amparo/internal/beneficiary/models"
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

func (s *InMemoryStoreSuite) newRecord(name, code, cpf string) *models.Beneficiary {
	return &models.Beneficiary{
		ID:         id.BeneficiaryID(uuid.New()),
		Code:       code,
		Name:       name,
		NationalID: cpf,
		Status:     models.StatusActive,
	}
}

func (s *InMemoryStoreSuite) TestUniqueConstraints() {
	first := s.newRecord("Ana", "A-20240101-0001", "11144477735")
	s.Require().NoError(s.store.Create(s.ctx, first))

	s.Run("duplicate code", func() {
		err := s.store.Create(s.ctx, s.newRecord("Bia", first.Code, ""))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
		s.Equal(models.ConstraintCode, sentinel.Constraint(err))
	})

	s.Run("duplicate CPF", func() {
		err := s.store.Create(s.ctx, s.newRecord("Bia", "A-20240101-0002", first.NationalID))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
		s.Equal(models.ConstraintNationalID, sentinel.Constraint(err))
	})

	s.Run("empty CPF is not unique", func() {
		s.NoError(s.store.Create(s.ctx, s.newRecord("Caio", "A-20240101-0003", "")))
		s.NoError(s.store.Create(s.ctx, s.newRecord("Davi", "A-20240101-0004", "")))
	})
}

func (s *InMemoryStoreSuite) TestFindReturnsCopy() {
	b := s.newRecord("Ana", "A-20240101-0001", "")
	s.Require().NoError(s.store.Create(s.ctx, b))

	found, err := s.store.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	found.Name = "Changed"

	again, err := s.store.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal("Ana", again.Name)
}

func (s *InMemoryStoreSuite) TestDelete() {
	b := s.newRecord("Ana", "A-20240101-0001", "")
	s.Require().NoError(s.store.Create(s.ctx, b))

	s.NoError(s.store.Delete(s.ctx, b.ID))
	s.ErrorIs(s.store.Delete(s.ctx, b.ID), sentinel.ErrNotFound)
	_, err := s.store.FindByID(s.ctx, b.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListFiltersAndOrders() {
	inactive := s.newRecord("Carla", "A-20240101-0003", "")
	inactive.Status = models.StatusInactive
	for _, b := range []*models.Beneficiary{
		s.newRecord("bruno", "A-20240101-0002", "52998224725"),
		s.newRecord("Ana", "A-20240101-0001", "11144477735"),
		inactive,
	} {
		s.Require().NoError(s.store.Create(s.ctx, b))
	}

	all, err := s.store.List(s.ctx, models.ListFilter{})
	s.Require().NoError(err)
	s.Equal([]string{"Ana", "bruno", "Carla"}, names(all))

	active, err := s.store.List(s.ctx, models.ListFilter{Status: models.StatusActive})
	s.Require().NoError(err)
	s.Equal([]string{"Ana", "bruno"}, names(active))

	byCPF, err := s.store.List(s.ctx, models.ListFilter{Query: "529.982"})
	s.Require().NoError(err)
	s.Equal([]string{"bruno"}, names(byCPF))

	paged, err := s.store.List(s.ctx, models.ListFilter{Offset: 1, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"bruno"}, names(paged))
}

func names(list []*models.Beneficiary) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4}
	assert.Equal(t, []int{3, 4}, page(items, 2, 0))
	assert.Equal(t, []int{1, 2}, page(items, 0, 2))
	require.Empty(t, page(items, 10, 2))
}
