package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/assocfin/afm_backend/internal/core/domain"
)

// Shared repository mocks for the service test suites in this package.

// MockRecordRepository is a mock type for the RecordRepositoryFacade interface
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.LedgerRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRecord), args.Error(1)
}

func (m *MockRecordRepository) ListRecords(ctx context.Context, limit int, offset int) ([]domain.LedgerRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRecord), args.Error(1)
}

func (m *MockRecordRepository) IsRecordOwned(ctx context.Context, recordID string) (bool, error) {
	args := m.Called(ctx, recordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordRepository) SaveRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, record, deltas)
	return args.Error(0)
}

func (m *MockRecordRepository) UpdateRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, record, deltas)
	return args.Error(0)
}

func (m *MockRecordRepository) DeleteRecord(ctx context.Context, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, record, deltas)
	return args.Error(0)
}

func (m *MockRecordRepository) SaveRecordInTx(ctx context.Context, tx pgx.Tx, record domain.LedgerRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) DeleteRecordInTx(ctx context.Context, tx pgx.Tx, recordID string) error {
	args := m.Called(ctx, tx, recordID)
	return args.Error(0)
}

// MockBankAccountRepository is a mock type for the BankAccountRepositoryFacade interface
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeleteBankAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockBankAccountRepository) FindBankAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.BankAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// MockInstallmentRepository is a mock type for the InstallmentRepositoryFacade interface
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListInstallmentsByMember(ctx context.Context, memberID string) ([]domain.Installment, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) CountInstallmentsByStatus(ctx context.Context, memberID string, status domain.ObligationStatus) (int, error) {
	args := m.Called(ctx, memberID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockInstallmentRepository) PayInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, installment, record, deltas)
	return args.Error(0)
}

func (m *MockInstallmentRepository) RevokeInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, installment, record, deltas)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteInstallment(ctx context.Context, installment domain.Installment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, installment, record, deltas)
	return args.Error(0)
}

// MockRepaymentRepository is a mock type for the RepaymentRepositoryFacade interface
type MockRepaymentRepository struct {
	mock.Mock
}

func (m *MockRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	args := m.Called(ctx, repaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) ListRepaymentsByLoan(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) CountRepaymentsByLoan(ctx context.Context, loanID string) (int, int, error) {
	args := m.Called(ctx, loanID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockRepaymentRepository) CountUnpaidRepaymentsByMember(ctx context.Context, memberID string) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepaymentRepository) PayRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, repayment, record, deltas)
	return args.Error(0)
}

func (m *MockRepaymentRepository) RevokeRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, repayment, record, deltas)
	return args.Error(0)
}

func (m *MockRepaymentRepository) DeleteRepayment(ctx context.Context, repayment domain.Repayment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, repayment, record, deltas)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock type for the SubscriptionRepositoryFacade interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptionsByMember(ctx context.Context, memberID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) CountSubscriptionsByMember(ctx context.Context, memberID string) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, subscription, record, deltas)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeleteSubscription(ctx context.Context, subscription domain.Subscription, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, subscription, record, deltas)
	return args.Error(0)
}

// MockMemberRepository is a mock type for the MemberRepositoryFacade interface
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) CreatePaymentPlan(ctx context.Context, memberID string, record *domain.LedgerRecord, deltas map[string]decimal.Decimal, installments []domain.Installment) error {
	args := m.Called(ctx, memberID, record, deltas, installments)
	return args.Error(0)
}

// MockLoanRepository is a mock type for the LoanRepositoryFacade interface
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansByMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, record domain.LedgerRecord, deltas map[string]decimal.Decimal, repayments []domain.Repayment) error {
	args := m.Called(ctx, loan, record, deltas, repayments)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, loan domain.Loan, recordIDs []string, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, loan, recordIDs, deltas)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.TransactionCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryBySystemKey(ctx context.Context, key domain.SystemCategoryKey) (*domain.TransactionCategory, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.TransactionCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionCategory), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.TransactionCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// MockRankFeeRepository is a mock type for the RankFeeRepositoryFacade interface
type MockRankFeeRepository struct {
	mock.Mock
}

func (m *MockRankFeeRepository) FindRankFee(ctx context.Context, rank domain.Rank) (*domain.RankFee, error) {
	args := m.Called(ctx, rank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankFee), args.Error(1)
}

func (m *MockRankFeeRepository) ListRankFees(ctx context.Context) ([]domain.RankFee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankFee), args.Error(1)
}

func (m *MockRankFeeRepository) SaveRankFee(ctx context.Context, fee domain.RankFee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}
