package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the DB shape of a payment-plan installment row.
type Installment struct {
	InstallmentID  string          `db:"installment_id"`
	MemberID       string          `db:"member_id"`
	SequenceNumber int             `db:"sequence_number"`
	Amount         decimal.Decimal `db:"amount"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	PaidAt         *time.Time      `db:"paid_at"`
	Notes          *string         `db:"notes"`
	RecordID       *string         `db:"record_id"`
	AuditFields
}

// Repayment is the DB shape of a loan repayment row.
type Repayment struct {
	RepaymentID    string          `db:"repayment_id"`
	LoanID         string          `db:"loan_id"`
	SequenceNumber int             `db:"sequence_number"`
	Amount         decimal.Decimal `db:"amount"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	PaidAt         *time.Time      `db:"paid_at"`
	Notes          *string         `db:"notes"`
	RecordID       *string         `db:"record_id"`
	AuditFields
}

// Subscription is the DB shape of a monthly subscription row.
type Subscription struct {
	SubscriptionID string          `db:"subscription_id"`
	MemberID       string          `db:"member_id"`
	Month          time.Time       `db:"month"`
	Amount         decimal.Decimal `db:"amount"`
	Status         string          `db:"status"`
	PaidAt         *time.Time      `db:"paid_at"`
	Notes          *string         `db:"notes"`
	RecordID       *string         `db:"record_id"`
	AuditFields
}
