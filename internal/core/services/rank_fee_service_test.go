package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/core/services"
	"github.com/assocfin/afm_backend/internal/dto"
)

type RankFeeServiceTestSuite struct {
	suite.Suite
	mockRankFeeRepo *MockRankFeeRepository
	service         portssvc.RankFeeSvcFacade
}

func (suite *RankFeeServiceTestSuite) SetupTest() {
	suite.mockRankFeeRepo = new(MockRankFeeRepository)
	suite.service = services.NewRankFeeService(suite.mockRankFeeRepo)
}

func (suite *RankFeeServiceTestSuite) TestSetRankFee_Upserts() {
	ctx := context.Background()
	fee := decimal.NewFromInt(150)

	suite.mockRankFeeRepo.On("SaveRankFee", ctx, mock.MatchedBy(func(f domain.RankFee) bool {
		return f.Rank == domain.RankCaptain && f.MonthlyFee.Equal(fee)
	})).Return(nil).Once()

	saved, err := suite.service.SetRankFee(ctx, domain.RankCaptain, dto.SetRankFeeRequest{MonthlyFee: fee}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(saved.MonthlyFee.Equal(fee))
	suite.mockRankFeeRepo.AssertExpectations(suite.T())
}

func (suite *RankFeeServiceTestSuite) TestSetRankFee_UnknownRank() {
	ctx := context.Background()

	_, err := suite.service.SetRankFee(ctx, domain.Rank("SERGEANT"), dto.SetRankFeeRequest{MonthlyFee: decimal.NewFromInt(100)}, uuid.NewString())

	suite.Require().Error(err)
	var fieldErr *apperrors.FieldError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Equal("rank", fieldErr.Field)
	suite.mockRankFeeRepo.AssertNotCalled(suite.T(), "SaveRankFee", mock.Anything, mock.Anything)
}

func (suite *RankFeeServiceTestSuite) TestSetRankFee_NonPositiveFee() {
	ctx := context.Background()

	_, err := suite.service.SetRankFee(ctx, domain.RankMajor, dto.SetRankFeeRequest{MonthlyFee: decimal.Zero}, uuid.NewString())

	suite.Require().Error(err)
	var fieldErr *apperrors.FieldError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Equal("monthly_fee", fieldErr.Field)
}

func (suite *RankFeeServiceTestSuite) TestGetRankFee_UnknownRank() {
	ctx := context.Background()

	_, err := suite.service.GetRankFee(ctx, domain.Rank("GENERALISSIMO"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestRankFeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RankFeeServiceTestSuite))
}
