package services_test

import (
	"context"
	"testing"
	"time"

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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRecordRepo   *MockRecordRepository
	mockCategoryRepo *MockCategoryRepository
	mockBankRepo     *MockBankAccountRepository
	service          portssvc.LedgerSvcFacade

	incomeCategory  *domain.TransactionCategory
	expenseCategory *domain.TransactionCategory
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRecordRepo = new(MockRecordRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBankRepo = new(MockBankAccountRepository)
	suite.service = services.NewLedgerService(suite.mockRecordRepo, suite.mockCategoryRepo, suite.mockBankRepo)

	suite.incomeCategory = &domain.TransactionCategory{
		CategoryID: uuid.NewString(),
		Name:       "Donations",
		Kind:       domain.Income,
	}
	suite.expenseCategory = &domain.TransactionCategory{
		CategoryID: uuid.NewString(),
		Name:       "Office Supplies",
		Kind:       domain.Expense,
	}
}

func strPtr(s string) *string { return &s }

func (suite *LedgerServiceTestSuite) TestAppendRecord_BankDeposit() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	req := dto.CreateRecordRequest{
		Amount:        decimal.NewFromInt(500),
		CategoryID:    suite.incomeCategory.CategoryID,
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethod: domain.BankDeposit,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-001"),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, req.CategoryID).Return(suite.incomeCategory, nil).Once()
	suite.mockBankRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{AccountID: accountID}, nil).Once()
	suite.mockRecordRepo.On("SaveRecord", ctx, mock.AnythingOfType("domain.LedgerRecord"), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	record, err := suite.service.AppendRecord(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.RecordID)
	suite.Equal(domain.Income, record.Kind)
	suite.Equal(userID, record.CreatedBy)
	suite.mockRecordRepo.AssertExpectations(suite.T())
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendRecord_CashNoDeltas() {
	ctx := context.Background()

	req := dto.CreateRecordRequest{
		Amount:        decimal.NewFromInt(75),
		CategoryID:    suite.expenseCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.Cash,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, req.CategoryID).Return(suite.expenseCategory, nil).Once()
	suite.mockRecordRepo.On("SaveRecord", ctx, mock.AnythingOfType("domain.LedgerRecord"), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 0
	})).Return(nil).Once()

	record, err := suite.service.AppendRecord(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, record.Kind)
	suite.mockRecordRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendRecord_CashWithBankAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()

	req := dto.CreateRecordRequest{
		Amount:        decimal.NewFromInt(100),
		CategoryID:    suite.incomeCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.Cash,
		BankAccountID: &accountID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, req.CategoryID).Return(suite.incomeCategory, nil).Once()
	suite.mockBankRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{AccountID: accountID}, nil).Once()

	record, err := suite.service.AppendRecord(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var fieldErr *apperrors.FieldError
	suite.Require().ErrorAs(err, &fieldErr)
	suite.Equal("bank_account", fieldErr.Field)
	suite.mockRecordRepo.AssertNotCalled(suite.T(), "SaveRecord", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendRecord_CategoryNotFound() {
	ctx := context.Background()

	req := dto.CreateRecordRequest{
		Amount:        decimal.NewFromInt(100),
		CategoryID:    uuid.NewString(),
		Date:          time.Now(),
		PaymentMethod: domain.Cash,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, req.CategoryID).Return(nil, apperrors.ErrNotFound).Once()

	record, err := suite.service.AppendRecord(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAmendRecord_AmountChange() {
	ctx := context.Background()
	accountID := uuid.NewString()
	recordID := uuid.NewString()

	oldRec := &domain.LedgerRecord{
		RecordID:      recordID,
		Amount:        decimal.NewFromInt(500),
		Kind:          domain.Income,
		CategoryID:    suite.incomeCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.BankDeposit,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-001"),
	}
	newAmount := decimal.NewFromInt(650)

	suite.mockRecordRepo.On("FindRecordByID", ctx, recordID).Return(oldRec, nil).Once()
	suite.mockRecordRepo.On("UpdateRecord", ctx, mock.MatchedBy(func(r domain.LedgerRecord) bool {
		return r.Amount.Equal(newAmount)
	}), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()

	updated, err := suite.service.AmendRecord(ctx, recordID, dto.AmendRecordRequest{Amount: &newAmount}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockRecordRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAmendRecord_SwitchToCashReversesOldAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	recordID := uuid.NewString()

	oldRec := &domain.LedgerRecord{
		RecordID:      recordID,
		Amount:        decimal.NewFromInt(480),
		Kind:          domain.Income,
		CategoryID:    suite.incomeCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.BankDeposit,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-002"),
	}
	cash := domain.Cash

	// Moving to cash detaches the bank fields and reverses the old account by
	// the (unchanged) amount.
	suite.mockRecordRepo.On("FindRecordByID", ctx, recordID).Return(oldRec, nil).Once()
	suite.mockRecordRepo.On("UpdateRecord", ctx, mock.MatchedBy(func(r domain.LedgerRecord) bool {
		return r.PaymentMethod == domain.Cash && r.BankAccountID == nil && r.ReceiptNumber == nil
	}), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(-480))
	})).Return(nil).Once()

	updated, err := suite.service.AmendRecord(ctx, recordID, dto.AmendRecordRequest{PaymentMethod: &cash}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(updated.BankAccountID)
	suite.mockRecordRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRetractRecord_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	recordID := uuid.NewString()

	record := &domain.LedgerRecord{
		RecordID:      recordID,
		Amount:        decimal.NewFromInt(200),
		Kind:          domain.Expense,
		CategoryID:    suite.expenseCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.BankExpense,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-003"),
	}

	suite.mockRecordRepo.On("FindRecordByID", ctx, recordID).Return(record, nil).Once()
	suite.mockRecordRepo.On("IsRecordOwned", ctx, recordID).Return(false, nil).Once()
	suite.mockRecordRepo.On("DeleteRecord", ctx, *record, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		// Retracting an expense gives the money back.
		return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	err := suite.service.RetractRecord(ctx, recordID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRecordRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRetractRecord_OwnedRecordRefused() {
	ctx := context.Background()
	recordID := uuid.NewString()

	record := &domain.LedgerRecord{
		RecordID:      recordID,
		Amount:        decimal.NewFromInt(100),
		Kind:          domain.Income,
		CategoryID:    suite.incomeCategory.CategoryID,
		Date:          time.Now(),
		PaymentMethod: domain.Cash,
	}

	suite.mockRecordRepo.On("FindRecordByID", ctx, recordID).Return(record, nil).Once()
	suite.mockRecordRepo.On("IsRecordOwned", ctx, recordID).Return(true, nil).Once()

	err := suite.service.RetractRecord(ctx, recordID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.mockRecordRepo.AssertNotCalled(suite.T(), "DeleteRecord", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
