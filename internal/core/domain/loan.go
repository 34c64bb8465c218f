package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a principal handed to a member, repaid in scheduled repayments.
// The disbursement is itself a ledger event, so RecordID is required.
type Loan struct {
	LoanID     string          `json:"loanID"`   // Primary Key (UUID)
	MemberID   string          `json:"memberID"` // FK -> members
	Amount     decimal.Decimal `json:"amount"`   // Principal
	IssuedDate time.Time       `json:"issuedDate"`
	RecordID   string          `json:"recordID"` // 1:1 FK -> ledger_records (disbursement)
	AuditFields
}
