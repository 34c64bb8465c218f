package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BankAccountReaderSvc defines read operations for bank accounts
type BankAccountReaderSvc interface {
	// GetBankAccountByID retrieves a specific bank account.
	GetBankAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// GetBalance returns the projected balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// BankAccountWriterSvc defines write operations for bank accounts
type BankAccountWriterSvc interface {
	// CreateBankAccount persists a new bank account with a zero balance.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// DeleteBankAccount removes an account that no record references.
	DeleteBankAccount(ctx context.Context, accountID string, updaterUserID string) error
}

// BankAccountSvcFacade combines all bank-account service interfaces
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
