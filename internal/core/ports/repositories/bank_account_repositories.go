package repositories

import (
	"context"
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts ordered by name.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeleteBankAccount removes a bank account. Fails with ErrIntegrity while
	// ledger records still reference it.
	DeleteBankAccount(ctx context.Context, accountID string) error
}

// BankAccountTransactionSupport defines the balance projection operations.
// Accounts are locked with SELECT ... FOR UPDATE before their cached balance
// is read-modified-written, so concurrent mutations against the same account
// serialize instead of losing updates.
type BankAccountTransactionSupport interface {
	// FindBankAccountsForUpdate selects and row-locks accounts within a transaction.
	FindBankAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.BankAccount, error)

	// ApplyBalanceDeltasInTx adds each delta to its account's cached balance
	// within the given transaction.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// BankAccountRepositoryFacade combines all bank account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankAccountTransactionSupport
}
