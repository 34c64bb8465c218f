package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the DB shape of a loan row.
type Loan struct {
	LoanID     string          `db:"loan_id"`
	MemberID   string          `db:"member_id"`
	Amount     decimal.Decimal `db:"amount"`
	IssuedDate time.Time       `db:"issued_date"`
	RecordID   string          `db:"record_id"`
	AuditFields
}
