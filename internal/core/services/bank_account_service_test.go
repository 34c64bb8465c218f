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

type BankAccountServiceTestSuite struct {
	suite.Suite
	mockBankRepo *MockBankAccountRepository
	service      portssvc.BankAccountSvcFacade
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankAccountRepository)
	suite.service = services.NewBankAccountService(suite.mockBankRepo)
}

func (suite *BankAccountServiceTestSuite) TestCreateBankAccount_StartsAtZero() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockBankRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.Name == "Main Account" && a.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, dto.CreateBankAccountRequest{Name: "Main Account"}, userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.Balance.IsZero())
	suite.Equal(userID, account.CreatedBy)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestGetBalance_ReadsProjection() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockBankRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{
		AccountID: accountID,
		Balance:   decimal.NewFromInt(300),
	}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, accountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(300)))
}

func (suite *BankAccountServiceTestSuite) TestDeleteBankAccount_StillReferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockBankRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{AccountID: accountID}, nil).Once()
	suite.mockBankRepo.On("DeleteBankAccount", ctx, accountID).Return(apperrors.ErrIntegrity).Once()

	err := suite.service.DeleteBankAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
