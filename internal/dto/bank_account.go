package dto

import (
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// BankBalanceResponse is the projected balance read.
type BankBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
	}
}

// ToListBankAccountResponse converts a slice of accounts to response DTOs.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
