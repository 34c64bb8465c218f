package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanRepositoryFacade persists loans together with their disbursement
// records and repayment schedules.
type LoanRepositoryFacade interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByMember retrieves a member's loans, newest first.
	ListLoansByMember(ctx context.Context, memberID string) ([]domain.Loan, error)

	// SaveLoan atomically inserts the disbursement record, the loan and the
	// repayment schedule, applying the disbursement balance deltas.
	SaveLoan(ctx context.Context, loan domain.Loan, record domain.LedgerRecord, deltas map[string]decimal.Decimal, repayments []domain.Repayment) error

	// DeleteLoan atomically removes the loan's repayments, every owned ledger
	// record named in recordIDs (repayment records plus the disbursement) and
	// the loan itself, applying the combined retract deltas.
	DeleteLoan(ctx context.Context, loan domain.Loan, recordIDs []string, deltas map[string]decimal.Decimal) error
}
