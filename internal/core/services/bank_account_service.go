package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// bankAccountService manages bank accounts and exposes their projected
// balances. The balance is never re-derived from the ledger on read; the
// cached projection is the source of truth.
type bankAccountService struct {
	bankRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(bankRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{bankRepo: bankRepo}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	return s.bankRepo.FindBankAccountByID(ctx, accountID)
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.bankRepo.ListBankAccounts(ctx)
}

func (s *bankAccountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.bankRepo.FindBankAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// CreateBankAccount persists a new account with a zero balance. Names are
// unique; a duplicate fails with ErrDuplicate.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.BankAccount{
		AccountID: uuid.NewString(),
		Name:      req.Name,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// DeleteBankAccount removes an account; the repository refuses with
// ErrIntegrity while any ledger record still references it.
func (s *bankAccountService) DeleteBankAccount(ctx context.Context, accountID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.bankRepo.FindBankAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.bankRepo.DeleteBankAccount(ctx, accountID); err != nil {
		logger.Warn("Failed to delete bank account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Bank account deleted", slog.String("account_id", accountID), slog.String("user_id", updaterUserID))
	return nil
}
