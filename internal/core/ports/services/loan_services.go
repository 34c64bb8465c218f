package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	// GetLoanByID retrieves a specific loan.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByMember retrieves all loans issued to a member.
	ListLoansByMember(ctx context.Context, memberID string) ([]domain.Loan, error)

	// GetLoanStatus summarizes repayment progress on a loan.
	GetLoanStatus(ctx context.Context, loanID string) (*domain.LoanStatus, error)
}

// LoanWriterSvc defines write operations for loans
type LoanWriterSvc interface {
	// IssueLoan creates the loan, its disbursement expense record and the
	// even repayment schedule in one transaction.
	IssueLoan(ctx context.Context, req dto.CreateLoanRequest, creatorUserID string) (*domain.Loan, error)

	// DeleteLoan removes the loan, its repayments and every owned record,
	// reversing all balance effects.
	DeleteLoan(ctx context.Context, loanID string, updaterUserID string) error
}

// LoanSvcFacade combines all loan service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
