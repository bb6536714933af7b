package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	beneficiary "amparo/internal/beneficiary/models"
	distribution "amparo/internal/distribution/models"
	"amparo/internal/reporting/models"
	"amparo/internal/reporting/service/mocks"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.service = New(s.store)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC))
}

func sortedBy(key models.Sort) gomock.Matcher {
	return gomock.Cond(func(f models.BeneficiaryFilter) bool { return f.Sort == key })
}

func (s *ServiceSuite) TestBeneficiaryReportsResolveSort() {
	maria := &beneficiary.Beneficiary{Code: "A-1", Name: "Maria", Status: beneficiary.StatusActive}

	s.Run("unknown key falls back to name", func() {
		s.SetupTest()
		s.store.EXPECT().Beneficiaries(gomock.Any(), sortedBy("name")).Return([]*beneficiary.Beneficiary{maria}, nil)

		table, err := s.service.Health(s.ctx, models.BeneficiaryFilter{Sort: "birth_date"})
		s.Require().NoError(err)
		s.Equal(models.Sort("name"), table.Sort)
		s.Equal(ReportHealth, table.Name)
		s.Len(table.Rows, 1)
		s.Equal(len(models.HealthColumns), len(table.Columns))
	})

	s.Run("known key is kept", func() {
		s.SetupTest()
		s.store.EXPECT().Beneficiaries(gomock.Any(), sortedBy("-created_at")).Return(nil, nil)

		table, err := s.service.Socioeconomic(s.ctx, models.BeneficiaryFilter{Sort: "-created_at"})
		s.Require().NoError(err)
		s.Equal(models.Sort("-created_at"), table.Sort)
		s.Empty(table.Rows)
	})

	s.Run("identification computes age on the request day", func() {
		s.SetupTest()
		birth := id.Date{Year: 2000, Month: time.May, Day: 11}
		withBirth := *maria
		withBirth.BirthDate = &birth
		s.store.EXPECT().Beneficiaries(gomock.Any(), gomock.Any()).Return([]*beneficiary.Beneficiary{&withBirth}, nil)

		table, err := s.service.Identification(s.ctx, models.BeneficiaryFilter{})
		s.Require().NoError(err)
		s.Equal("23", table.Rows[0][3])
	})
}

func (s *ServiceSuite) TestRoster() {
	benefitID := id.BenefitID(uuid.New())

	s.Run("restricts to the benefit and titles with its name", func() {
		s.SetupTest()
		s.store.EXPECT().BenefitName(gomock.Any(), benefitID).Return("Cesta básica", nil)
		s.store.EXPECT().Beneficiaries(gomock.Any(), gomock.Cond(func(f models.BeneficiaryFilter) bool {
			return f.BenefitID == benefitID && f.Query == "ana"
		})).Return([]*beneficiary.Beneficiary{{Code: "A-2", Name: "Ana"}}, nil)

		table, err := s.service.Roster(s.ctx, benefitID, models.BeneficiaryFilter{Query: "ana"})
		s.Require().NoError(err)
		s.Equal("Roster: Cesta básica", table.Title)
		s.Equal([]string{"A-2", "Ana", "", "", ""}, table.Rows[0])
	})

	s.Run("unknown benefit", func() {
		s.SetupTest()
		s.store.EXPECT().BenefitName(gomock.Any(), benefitID).Return("", sentinel.ErrNotFound)
		s.store.EXPECT().Beneficiaries(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := s.service.Roster(s.ctx, benefitID, models.BeneficiaryFilter{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestAssignments() {
	s.store.EXPECT().Assignments(gomock.Any(), gomock.Cond(func(f models.AssignmentFilter) bool {
		return f.Sort == "-start_date" && f.Status == models.AssignmentsActive
	})).Return([]models.AssignmentRow{{
		BeneficiaryCode: "A-1",
		BeneficiaryName: "Maria",
		BenefitName:     "Cesta",
		StartDate:       id.Date{Year: 2024, Month: time.June, Day: 1},
	}}, nil)

	table, err := s.service.Assignments(s.ctx, models.AssignmentFilter{Status: models.AssignmentsActive, Sort: "created_at"})
	s.Require().NoError(err)
	s.Equal("PENDING", table.Rows[0][7])
}

func (s *ServiceSuite) TestBatchItems() {
	batchID := id.BatchID(uuid.New())

	s.Run("titles with benefit and date", func() {
		s.SetupTest()
		s.store.EXPECT().Batch(gomock.Any(), batchID).Return(&models.BatchRow{
			ID:           batchID,
			BenefitName:  "Cesta",
			DeliveryDate: id.Date{Year: 2024, Month: time.May, Day: 15},
			Totals:       distribution.NewTotals(2, 1),
		}, nil)
		s.store.EXPECT().BatchItems(gomock.Any(), batchID, models.ItemFilter{Sort: "-delivered"}).Return([]models.ItemRow{
			{BeneficiaryCode: "A-1", BeneficiaryName: "Ana", Delivered: true},
			{BeneficiaryCode: "A-2", BeneficiaryName: "Maria"},
		}, nil)

		table, err := s.service.BatchItems(s.ctx, batchID, models.ItemFilter{Sort: "-delivered"})
		s.Require().NoError(err)
		s.Equal("Cesta on 15/05/2024", table.Title)
		s.Len(table.Rows, 2)
	})

	s.Run("unknown batch", func() {
		s.SetupTest()
		s.store.EXPECT().Batch(gomock.Any(), batchID).Return(nil, sentinel.ErrNotFound)
		s.store.EXPECT().BatchItems(gomock.Any(), batchID, gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := s.service.BatchItems(s.ctx, batchID, models.ItemFilter{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestHistory() {
	person := id.BeneficiaryID(uuid.New())
	s.store.EXPECT().BeneficiaryName(gomock.Any(), person).Return("Maria", nil)
	s.store.EXPECT().History(gomock.Any(), person, models.HistoryFilter{Status: models.DeliveriesAll, Sort: "-delivery_date"}).
		Return([]models.HistoryRow{{
			DeliveryDate: id.Date{Year: 2024, Month: time.April, Day: 3},
			BenefitName:  "Cesta",
			Delivered:    true,
		}}, nil)

	table, err := s.service.History(s.ctx, person, models.HistoryFilter{Status: models.DeliveriesAll})
	s.Require().NoError(err)
	s.Equal("Deliveries: Maria", table.Title)
	s.Equal([][]string{{"03/04/2024", "Cesta", "Delivered"}}, table.Rows)
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	s.store.EXPECT().Batches(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := s.service.Batches(s.ctx, models.BatchFilter{})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestBenefits() {
	s.store.EXPECT().Benefits(gomock.Any(), models.BenefitFilter{Sort: "-active_count"}).
		Return([]models.BenefitRow{{Name: "Cesta", Category: "FOOD", Periodicity: "MONTHLY", Active: true, ActiveCount: 4, EndedCount: 1}}, nil)

	table, err := s.service.Benefits(s.ctx, models.BenefitFilter{Sort: "-active_count"})
	s.Require().NoError(err)
	s.Equal([]string{"Cesta", "Food", "Monthly", "Yes", "4", "1"}, table.Rows[0])
}
