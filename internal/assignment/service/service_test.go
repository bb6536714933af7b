package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"amparo/internal/assignment/models"
	"amparo/internal/assignment/service/mocks"
	"amparo/internal/assignment/store"
	id "amparo/pkg/domain"
	dErrors "amparo/pkg/domain-errors"
	"amparo/pkg/platform/audit"
	"amparo/pkg/platform/sentinel"
	"amparo/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	beneficiaries *mocks.MockBeneficiaryDirectory
	benefits      *mocks.MockBenefitDirectory
	auditor       *mocks.MockAuditPublisher
	store         *store.InMemoryStore
	service       *Service
	ctx           context.Context

	beneficiaryID id.BeneficiaryID
	benefitID     id.BenefitID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.beneficiaries = mocks.NewMockBeneficiaryDirectory(s.ctrl)
	s.benefits = mocks.NewMockBenefitDirectory(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.store = store.NewInMemoryStore()
	s.service = New(s.store, s.beneficiaries, s.benefits, WithAuditPublisher(s.auditor))
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC))
	s.beneficiaryID = id.BeneficiaryID(uuid.New())
	s.benefitID = id.BenefitID(uuid.New())
}

func date(month time.Month, day int) *id.Date {
	return &id.Date{Year: 2024, Month: month, Day: day}
}

func (s *ServiceSuite) directories(beneficiaryActive, benefitActive bool) {
	s.beneficiaries.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(beneficiaryActive, nil).AnyTimes()
	s.benefits.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(benefitActive, nil).AnyTimes()
}

func (s *ServiceSuite) expectAudit(action audit.AuditEvent) *gomock.Call {
	return s.auditor.EXPECT().Emit(gomock.Any(), gomock.Cond(func(e audit.Event) bool {
		return e.Action == action && e.AggregateType == audit.AggregateAssignment
	})).Return(nil)
}

func (s *ServiceSuite) seed(a models.Assignment) *models.Assignment {
	if a.ID.IsNil() {
		a.ID = id.AssignmentID(uuid.New())
	}
	if a.BeneficiaryID.IsNil() {
		a.BeneficiaryID = s.beneficiaryID
	}
	if a.BenefitID.IsNil() {
		a.BenefitID = s.benefitID
	}
	s.Require().NoError(s.store.Create(s.ctx, &a))
	return &a
}

func (s *ServiceSuite) TestCreate() {
	s.Run("starting today is active", func() {
		s.SetupTest()
		s.directories(true, true)
		s.expectAudit(audit.EventAssignmentCreated)

		a, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.Require().NoError(err)
		s.True(a.Active)
		s.Equal(*date(time.May, 10), a.StartDate)

		stored, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.True(stored.Active)
	})

	s.Run("future start is stored inactive", func() {
		s.SetupTest()
		s.directories(true, true)
		s.expectAudit(audit.EventAssignmentCreated)

		a, err := s.service.Create(s.ctx, models.Draft{
			BeneficiaryID: s.beneficiaryID,
			BenefitID:     s.benefitID,
			StartDate:     date(time.June, 1),
		})
		s.Require().NoError(err)
		s.False(a.Active)
		s.Equal(models.StatePending, a.State(requestcontext.Today(s.ctx)))
	})

	s.Run("inactive beneficiary", func() {
		s.SetupTest()
		s.directories(false, true)

		_, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.Equal("beneficiary_id", dErrors.FieldOf(err))
		n, _ := s.store.CountByBeneficiary(s.ctx, s.beneficiaryID)
		s.Zero(n)
	})

	s.Run("inactive benefit", func() {
		s.SetupTest()
		s.directories(true, false)

		_, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.Equal("benefit_id", dErrors.FieldOf(err))
	})

	s.Run("unknown beneficiary is a field error", func() {
		s.SetupTest()
		s.beneficiaries.EXPECT().IsActive(gomock.Any(), s.beneficiaryID).Return(false, sentinel.ErrNotFound)

		_, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("beneficiary_id", dErrors.FieldOf(err))
	})

	s.Run("unknown benefit is a field error", func() {
		s.SetupTest()
		s.beneficiaries.EXPECT().IsActive(gomock.Any(), s.beneficiaryID).Return(true, nil)
		s.benefits.EXPECT().IsActive(gomock.Any(), s.benefitID).Return(false, sentinel.ErrNotFound)

		_, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.Equal("benefit_id", dErrors.FieldOf(err))
	})

	s.Run("end before start", func() {
		s.SetupTest()
		s.directories(true, true)

		_, err := s.service.Create(s.ctx, models.Draft{
			BeneficiaryID: s.beneficiaryID,
			BenefitID:     s.benefitID,
			StartDate:     date(time.May, 5),
			EndDate:       date(time.May, 4),
		})
		s.Equal("end_date", dErrors.FieldOf(err))
	})

	s.Run("second active for the pair is rejected", func() {
		s.SetupTest()
		s.directories(true, true)
		s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})

		_, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.ErrorIs(err, models.ErrDuplicateActive)
		s.Equal("benefit_id", dErrors.FieldOf(err))
	})

	s.Run("ended history does not block a new cycle", func() {
		s.SetupTest()
		s.directories(true, true)
		s.seed(models.Assignment{StartDate: *date(time.January, 1), EndDate: date(time.March, 1)})
		s.expectAudit(audit.EventAssignmentCreated)

		a, err := s.service.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
		s.Require().NoError(err)
		s.True(a.Active)
	})

	s.Run("historical record for an inactive beneficiary", func() {
		s.SetupTest()
		s.directories(false, false)
		s.expectAudit(audit.EventAssignmentCreated)

		a, err := s.service.Create(s.ctx, models.Draft{
			BeneficiaryID: s.beneficiaryID,
			BenefitID:     s.benefitID,
			StartDate:     date(time.January, 1),
			EndDate:       date(time.February, 1),
		})
		s.Require().NoError(err)
		s.False(a.Active)
	})
}

func (s *ServiceSuite) TestCreateLosesRaceOnUniqueIndex() {
	st := mocks.NewMockStore(s.ctrl)
	svc := New(st, s.beneficiaries, s.benefits)
	s.directories(true, true)

	st.EXPECT().HasOtherActive(gomock.Any(), s.beneficiaryID, s.benefitID, gomock.Any()).Return(false, nil)
	st.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(sentinel.Violation(sentinel.ErrAlreadyUsed, models.ConstraintOneActive))

	_, err := svc.Create(s.ctx, models.Draft{BeneficiaryID: s.beneficiaryID, BenefitID: s.benefitID})
	s.ErrorIs(err, models.ErrDuplicateActive)
	s.Equal("benefit_id", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	st := mocks.NewMockStore(s.ctrl)
	svc := New(st, s.beneficiaries, s.benefits)

	st.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	_, err := svc.Get(s.ctx, id.AssignmentID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestUpdate() {
	s.Run("keeps an assignment whose benefit was later deactivated", func() {
		s.SetupTest()
		s.directories(true, false)
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})
		s.expectAudit(audit.EventAssignmentUpdated)

		updated, err := s.service.Update(s.ctx, a.ID, models.Draft{BenefitID: s.benefitID, EndDate: date(time.December, 31)})
		s.Require().NoError(err)
		s.True(updated.Active)
		s.Equal(*date(time.January, 1), updated.StartDate)
		s.Equal(date(time.December, 31), updated.EndDate)
	})

	s.Run("switching to an inactive benefit is rejected", func() {
		s.SetupTest()
		other := id.BenefitID(uuid.New())
		s.beneficiaries.EXPECT().IsActive(gomock.Any(), gomock.Any()).Return(true, nil)
		s.benefits.EXPECT().IsActive(gomock.Any(), other).Return(false, nil)
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})

		_, err := s.service.Update(s.ctx, a.ID, models.Draft{BenefitID: other})
		s.Equal("benefit_id", dErrors.FieldOf(err))
	})

	s.Run("reopening for an inactive beneficiary is rejected", func() {
		s.SetupTest()
		s.directories(false, true)
		a := s.seed(models.Assignment{StartDate: *date(time.January, 1), EndDate: date(time.February, 1)})

		_, err := s.service.Update(s.ctx, a.ID, models.Draft{BenefitID: s.benefitID})
		s.Equal("beneficiary_id", dErrors.FieldOf(err))
	})

	s.Run("beneficiary in the draft is ignored", func() {
		s.SetupTest()
		s.directories(true, true)
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})
		s.expectAudit(audit.EventAssignmentUpdated)

		updated, err := s.service.Update(s.ctx, a.ID, models.Draft{
			BeneficiaryID: id.BeneficiaryID(uuid.New()),
			BenefitID:     s.benefitID,
		})
		s.Require().NoError(err)
		s.Equal(s.beneficiaryID, updated.BeneficiaryID)
	})

	s.Run("unknown id", func() {
		s.SetupTest()
		_, err := s.service.Update(s.ctx, id.AssignmentID(uuid.New()), models.Draft{BenefitID: s.benefitID})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestEnd() {
	s.Run("defaults to today and deactivates", func() {
		s.SetupTest()
		s.directories(true, true)
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})
		s.expectAudit(audit.EventAssignmentEnded)

		res, err := s.service.End(s.ctx, a.ID, nil)
		s.Require().NoError(err)
		s.False(res.AlreadyEnded)
		s.False(res.Assignment.Active)
		s.Equal(date(time.May, 10), res.Assignment.EndDate)
	})

	s.Run("future end keeps it active", func() {
		s.SetupTest()
		s.directories(true, true)
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})
		s.expectAudit(audit.EventAssignmentEnded)

		res, err := s.service.End(s.ctx, a.ID, date(time.June, 30))
		s.Require().NoError(err)
		s.True(res.Assignment.Active)
	})

	s.Run("already ended is returned unchanged", func() {
		s.SetupTest()
		a := s.seed(models.Assignment{StartDate: *date(time.January, 1), EndDate: date(time.March, 1)})

		res, err := s.service.End(s.ctx, a.ID, nil)
		s.Require().NoError(err)
		s.True(res.AlreadyEnded)
		s.Equal(date(time.March, 1), res.Assignment.EndDate)
	})

	s.Run("already ended with a stale flag is corrected", func() {
		s.SetupTest()
		a := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1), EndDate: date(time.March, 1)})

		res, err := s.service.End(s.ctx, a.ID, nil)
		s.Require().NoError(err)
		s.True(res.AlreadyEnded)

		stored, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.False(stored.Active)
	})

	s.Run("pending assignment cannot end before it starts", func() {
		s.SetupTest()
		s.directories(true, true)
		a := s.seed(models.Assignment{StartDate: *date(time.June, 1)})

		_, err := s.service.End(s.ctx, a.ID, nil)
		s.Equal("end_date", dErrors.FieldOf(err))
	})
}

func (s *ServiceSuite) TestListByBeneficiary() {
	s.Run("unknown beneficiary", func() {
		s.SetupTest()
		s.beneficiaries.EXPECT().IsActive(gomock.Any(), s.beneficiaryID).Return(false, sentinel.ErrNotFound)
		_, err := s.service.ListByBeneficiary(s.ctx, s.beneficiaryID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("newest start first", func() {
		s.SetupTest()
		s.beneficiaries.EXPECT().IsActive(gomock.Any(), s.beneficiaryID).Return(true, nil)
		old := s.seed(models.Assignment{StartDate: *date(time.January, 1), EndDate: date(time.February, 1)})
		current := s.seed(models.Assignment{Active: true, StartDate: *date(time.March, 1)})

		list, err := s.service.ListByBeneficiary(s.ctx, s.beneficiaryID)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal(current.ID, list[0].ID)
		s.Equal(old.ID, list[1].ID)
	})
}

func (s *ServiceSuite) TestEligible() {
	inactiveBeneficiary := id.BeneficiaryID(uuid.New())
	keep := s.seed(models.Assignment{Active: true, StartDate: *date(time.January, 1)})
	s.seed(models.Assignment{Active: true, BeneficiaryID: inactiveBeneficiary, StartDate: *date(time.January, 1)})
	s.seed(models.Assignment{BeneficiaryID: id.BeneficiaryID(uuid.New()), StartDate: *date(time.June, 1)})
	s.seed(models.Assignment{Active: true, BenefitID: id.BenefitID(uuid.New()), StartDate: *date(time.January, 1)})

	s.beneficiaries.EXPECT().FilterActive(gomock.Any(), gomock.Len(2)).
		Return(map[id.BeneficiaryID]bool{s.beneficiaryID: true}, nil)

	ids, err := s.service.Eligible(s.ctx, s.benefitID)
	s.Require().NoError(err)
	s.Equal([]id.AssignmentID{keep.ID}, ids)
}

func (s *ServiceSuite) TestEligibleWithoutAssignments() {
	ids, err := s.service.Eligible(s.ctx, s.benefitID)
	s.Require().NoError(err)
	s.Empty(ids)
}
