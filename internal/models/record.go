package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is the DB shape of a ledger record row.
type LedgerRecord struct {
	RecordID      string          `db:"record_id"`
	Amount        decimal.Decimal `db:"amount"`
	Kind          string          `db:"kind"`
	CategoryID    string          `db:"category_id"`
	Date          time.Time       `db:"date"`
	PaymentMethod string          `db:"payment_method"`
	BankAccountID *string         `db:"bank_account_id"`
	ReceiptNumber *string         `db:"receipt_number"`
	Notes         *string         `db:"notes"`
	AuditFields
}
