package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationStatus is the two-state lifecycle shared by installments,
// repayments and subscriptions. UNPAID -> PAID via pay, PAID -> UNPAID via
// revoke; no other transitions exist.
type ObligationStatus string

const (
	Unpaid ObligationStatus = "UNPAID"
	Paid   ObligationStatus = "PAID"
)

// Installment is one piece of a member's initial payment plan.
// Invariants: Status == PAID iff PaidAt is set, and a PAID installment always
// references the ledger record that fulfilled it.
type Installment struct {
	InstallmentID  string           `json:"installmentID"` // Primary Key (UUID)
	MemberID       string           `json:"memberID"`      // FK -> members
	SequenceNumber int              `json:"sequenceNumber"`
	Amount         decimal.Decimal  `json:"amount"`
	DueDate        time.Time        `json:"dueDate"` // First of month
	Status         ObligationStatus `json:"status"`
	PaidAt         *time.Time       `json:"paidAt"`   // Nullable
	Notes          *string          `json:"notes"`    // Nullable
	RecordID       *string          `json:"recordID"` // Nullable 1:1 FK -> ledger_records
	AuditFields
}

// Repayment is one piece of a loan. Same shape and invariants as Installment,
// keyed by (loan, sequence).
type Repayment struct {
	RepaymentID    string           `json:"repaymentID"` // Primary Key (UUID)
	LoanID         string           `json:"loanID"`      // FK -> loans
	SequenceNumber int              `json:"sequenceNumber"`
	Amount         decimal.Decimal  `json:"amount"`
	DueDate        time.Time        `json:"dueDate"` // First of month
	Status         ObligationStatus `json:"status"`
	PaidAt         *time.Time       `json:"paidAt"`   // Nullable
	Notes          *string          `json:"notes"`    // Nullable
	RecordID       *string          `json:"recordID"` // Nullable 1:1 FK -> ledger_records
	AuditFields
}

// Subscription is a monthly membership due. Rows are materialized lazily on
// payment, so an existing row is a paid month; unique on (member, month).
type Subscription struct {
	SubscriptionID string           `json:"subscriptionID"` // Primary Key (UUID)
	MemberID       string           `json:"memberID"`       // FK -> members
	Month          time.Time        `json:"month"`          // First of month
	Amount         decimal.Decimal  `json:"amount"`
	Status         ObligationStatus `json:"status"`
	PaidAt         *time.Time       `json:"paidAt"`   // Nullable
	Notes          *string          `json:"notes"`    // Nullable
	RecordID       *string          `json:"recordID"` // Nullable 1:1 FK -> ledger_records
	AuditFields
}
