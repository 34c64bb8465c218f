package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/assocfin/afm_backend/internal/core/domain"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/core/services"
	"github.com/assocfin/afm_backend/internal/dto"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo      *MockLoanRepository
	mockRepaymentRepo *MockRepaymentRepository
	mockRecordRepo    *MockRecordRepository
	mockCategoryRepo  *MockCategoryRepository
	mockMemberRepo    *MockMemberRepository
	service           portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockRepaymentRepo = new(MockRepaymentRepository)
	suite.mockRecordRepo = new(MockRecordRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.service = services.NewLoanService(
		suite.mockLoanRepo,
		suite.mockRepaymentRepo,
		suite.mockRecordRepo,
		suite.mockCategoryRepo,
		suite.mockMemberRepo,
	)
}

func (suite *LoanServiceTestSuite) disbursementCategory() *domain.TransactionCategory {
	key := string(domain.CategoryLoanDisbursement)
	return &domain.TransactionCategory{
		CategoryID:    uuid.NewString(),
		Name:          "Loan Disbursement",
		Kind:          domain.Expense,
		SystemRelated: true,
		SystemKey:     &key,
	}
}

func (suite *LoanServiceTestSuite) TestIssueLoan_Success() {
	ctx := context.Background()
	memberID := uuid.NewString()
	accountID := uuid.NewString()
	category := suite.disbursementCategory()

	req := dto.CreateLoanRequest{
		MemberID:         memberID,
		Amount:           decimal.NewFromInt(3000),
		IssuedDate:       time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		RepaymentsCount:  3,
		PaymentStartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentDetails: dto.PaymentDetails{
			PaymentMethod: domain.BankExpense,
			BankAccountID: &accountID,
			ReceiptNumber: strPtr("RCPT-500"),
		},
	}

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(&domain.Member{MemberID: memberID}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryBySystemKey", ctx, domain.CategoryLoanDisbursement).Return(category, nil).Once()
	suite.mockLoanRepo.On("SaveLoan", ctx,
		mock.MatchedBy(func(l domain.Loan) bool {
			return l.MemberID == memberID && l.Amount.Equal(decimal.NewFromInt(3000)) && l.RecordID != ""
		}),
		mock.MatchedBy(func(r domain.LedgerRecord) bool {
			// The disbursement is money leaving the association.
			return r.Kind == domain.Expense && r.Amount.Equal(decimal.NewFromInt(3000))
		}),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(-3000))
		}),
		mock.MatchedBy(func(repayments []domain.Repayment) bool {
			if len(repayments) != 3 {
				return false
			}
			for i, r := range repayments {
				if r.SequenceNumber != i+1 || r.Status != domain.Unpaid {
					return false
				}
				if !r.Amount.Equal(decimal.NewFromInt(1000)) {
					return false
				}
				want := time.Date(2025, time.Month(3+i), 1, 0, 0, 0, 0, time.UTC)
				if !r.DueDate.Equal(want) {
					return false
				}
			}
			return true
		}),
	).Return(nil).Once()

	loan, err := suite.service.IssueLoan(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.NotEmpty(loan.LoanID)
	suite.NotEmpty(loan.RecordID)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestGetLoanStatus() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(&domain.Loan{LoanID: loanID}, nil).Twice()
	suite.mockRepaymentRepo.On("CountRepaymentsByLoan", ctx, loanID).Return(2, 1, nil).Once()

	status, err := suite.service.GetLoanStatus(ctx, loanID)

	suite.Require().NoError(err)
	suite.Equal(2, status.Paid)
	suite.Equal(1, status.Unpaid)
	suite.Equal(3, status.Total)
	suite.False(status.IsCompleted)

	suite.mockRepaymentRepo.On("CountRepaymentsByLoan", ctx, loanID).Return(3, 0, nil).Once()
	status, err = suite.service.GetLoanStatus(ctx, loanID)

	suite.Require().NoError(err)
	suite.True(status.IsCompleted)
}

func (suite *LoanServiceTestSuite) TestDeleteLoan_CollectsEveryOwnedRecord() {
	ctx := context.Background()
	loanID := uuid.NewString()
	accountID := uuid.NewString()
	disbursementID := uuid.NewString()
	repaymentRecordID := uuid.NewString()
	paidAt := time.Now()

	loan := &domain.Loan{
		LoanID:   loanID,
		MemberID: uuid.NewString(),
		Amount:   decimal.NewFromInt(2000),
		RecordID: disbursementID,
	}
	repayments := []domain.Repayment{
		{RepaymentID: uuid.NewString(), LoanID: loanID, SequenceNumber: 1, Amount: decimal.NewFromInt(1000), Status: domain.Paid, PaidAt: &paidAt, RecordID: &repaymentRecordID},
		{RepaymentID: uuid.NewString(), LoanID: loanID, SequenceNumber: 2, Amount: decimal.NewFromInt(1000), Status: domain.Unpaid},
	}
	repaymentRecord := &domain.LedgerRecord{
		RecordID:      repaymentRecordID,
		Amount:        decimal.NewFromInt(1000),
		Kind:          domain.Income,
		PaymentMethod: domain.BankDeposit,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-501"),
	}
	disbursement := &domain.LedgerRecord{
		RecordID:      disbursementID,
		Amount:        decimal.NewFromInt(2000),
		Kind:          domain.Expense,
		PaymentMethod: domain.BankExpense,
		BankAccountID: &accountID,
		ReceiptNumber: strPtr("RCPT-500"),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockRepaymentRepo.On("ListRepaymentsByLoan", ctx, loanID).Return(repayments, nil).Once()
	suite.mockRecordRepo.On("FindRecordByID", ctx, repaymentRecordID).Return(repaymentRecord, nil).Once()
	suite.mockRecordRepo.On("FindRecordByID", ctx, disbursementID).Return(disbursement, nil).Once()
	suite.mockLoanRepo.On("DeleteLoan", ctx, *loan,
		[]string{repaymentRecordID, disbursementID},
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			// -1000 reverses the repayment income, +2000 reverses the
			// disbursement expense.
			return len(deltas) == 1 && deltas[accountID].Equal(decimal.NewFromInt(1000))
		}),
	).Return(nil).Once()

	err := suite.service.DeleteLoan(ctx, loanID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
