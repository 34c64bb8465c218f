package models

import "github.com/shopspring/decimal"

// BankAccount is the DB shape of a bank account row.
type BankAccount struct {
	AccountID string          `db:"account_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
}
