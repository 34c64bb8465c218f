package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/core/services"
)

type DuesServiceTestSuite struct {
	suite.Suite
	mockMemberRepo       *MockMemberRepository
	mockSubscriptionRepo *MockSubscriptionRepository
	mockInstallmentRepo  *MockInstallmentRepository
	mockRepaymentRepo    *MockRepaymentRepository
	mockRankFeeRepo      *MockRankFeeRepository
	service              portssvc.DuesSvcFacade
}

func (suite *DuesServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	suite.mockRepaymentRepo = new(MockRepaymentRepository)
	suite.mockRankFeeRepo = new(MockRankFeeRepository)
	suite.service = services.NewDuesService(
		suite.mockMemberRepo,
		suite.mockSubscriptionRepo,
		suite.mockInstallmentRepo,
		suite.mockRepaymentRepo,
		suite.mockRankFeeRepo,
	)
}

func (suite *DuesServiceTestSuite) TestGetMemberDues() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Member{
		MemberID:         memberID,
		Rank:             domain.RankMajor,
		SubscriptionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(member, nil).Once()
	suite.mockSubscriptionRepo.On("CountSubscriptionsByMember", ctx, memberID).Return(25, nil).Once()
	suite.mockInstallmentRepo.On("CountInstallmentsByStatus", ctx, memberID, domain.Unpaid).Return(2, nil).Once()
	suite.mockRepaymentRepo.On("CountUnpaidRepaymentsByMember", ctx, memberID).Return(1, nil).Once()
	suite.mockRankFeeRepo.On("FindRankFee", ctx, domain.RankMajor).Return(&domain.RankFee{
		Rank:       domain.RankMajor,
		MonthlyFee: decimal.NewFromInt(100),
	}, nil).Once()

	summary, err := suite.service.GetMemberDues(ctx, memberID, asOf)

	suite.Require().NoError(err)
	suite.Equal(30, summary.DueMonths)
	suite.Equal(25, summary.PaidSubscriptions)
	suite.Equal(5, summary.UnpaidSubscriptions)
	suite.Equal(2, summary.UnpaidInstallments)
	suite.Equal(1, summary.UnpaidRepayments)
	suite.True(summary.ExpectedMonthlyFee.Equal(decimal.NewFromInt(100)))
}

func (suite *DuesServiceTestSuite) TestGetMemberDues_PaidAheadClampsToZero() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Member{
		MemberID:         memberID,
		Rank:             domain.RankCaptain,
		SubscriptionDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(member, nil).Once()
	suite.mockSubscriptionRepo.On("CountSubscriptionsByMember", ctx, memberID).Return(6, nil).Once()
	suite.mockInstallmentRepo.On("CountInstallmentsByStatus", ctx, memberID, domain.Unpaid).Return(0, nil).Once()
	suite.mockRepaymentRepo.On("CountUnpaidRepaymentsByMember", ctx, memberID).Return(0, nil).Once()
	suite.mockRankFeeRepo.On("FindRankFee", ctx, domain.RankCaptain).Return(&domain.RankFee{
		Rank:       domain.RankCaptain,
		MonthlyFee: decimal.NewFromInt(100),
	}, nil).Once()

	summary, err := suite.service.GetMemberDues(ctx, memberID, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, summary.DueMonths)
	suite.Equal(0, summary.UnpaidSubscriptions)
}

func (suite *DuesServiceTestSuite) TestGetMemberDues_MissingRankFeeIsZero() {
	ctx := context.Background()
	memberID := uuid.NewString()
	member := &domain.Member{
		MemberID:         memberID,
		Rank:             domain.RankColonel,
		SubscriptionDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(member, nil).Once()
	suite.mockSubscriptionRepo.On("CountSubscriptionsByMember", ctx, memberID).Return(0, nil).Once()
	suite.mockInstallmentRepo.On("CountInstallmentsByStatus", ctx, memberID, domain.Unpaid).Return(0, nil).Once()
	suite.mockRepaymentRepo.On("CountUnpaidRepaymentsByMember", ctx, memberID).Return(0, nil).Once()
	suite.mockRankFeeRepo.On("FindRankFee", ctx, domain.RankColonel).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.GetMemberDues(ctx, memberID, asOf)

	suite.Require().NoError(err)
	suite.True(summary.ExpectedMonthlyFee.IsZero())
}

func TestDuesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DuesServiceTestSuite))
}
