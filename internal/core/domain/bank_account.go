package domain

import (
	"github.com/shopspring/decimal"
)

// BankAccount holds the cached balance projected from the ledger. The balance
// is only ever changed by applying projector deltas inside the same database
// transaction as the ledger write that caused them.
type BankAccount struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Name      string          `json:"name"`      // Unique
	Balance   decimal.Decimal `json:"balance"`   // Projected, never re-scanned
	AuditFields
}
