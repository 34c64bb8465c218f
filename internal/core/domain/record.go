package domain

import (
	"time"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RecordKind indicates the direction of a ledger record.
type RecordKind string

const (
	Income  RecordKind = "INCOME"
	Expense RecordKind = "EXPENSE"
)

// PaymentMethod is how the money moved. Every method except CASH requires a
// bank account and a receipt number.
type PaymentMethod string

const (
	Cash         PaymentMethod = "CASH"
	BankDeposit  PaymentMethod = "BANK_DEPOSIT"
	BankExpense  PaymentMethod = "BANK_EXPENSE"
	Cheque       PaymentMethod = "CHEQUE"
	BankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsCash reports whether the method never touches a bank account.
func (m PaymentMethod) IsCash() bool {
	return m == Cash
}

// LedgerRecord is a single immutable monetary event. The amount is always
// stored positive; the sign is derived from Kind, never persisted.
type LedgerRecord struct {
	RecordID      string          `json:"recordID"`   // Primary Key (UUID)
	Amount        decimal.Decimal `json:"amount"`     // Positive value
	Kind          RecordKind      `json:"kind"`       // INCOME or EXPENSE, matches the category kind
	CategoryID    string          `json:"categoryID"` // FK -> TransactionCategory (Not Null)
	Date          time.Time       `json:"date"`       // Date the event occurred
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	BankAccountID *string         `json:"bankAccountID"` // Nullable FK -> BankAccount
	ReceiptNumber *string         `json:"receiptNumber"` // Nullable
	Notes         *string         `json:"notes"`         // Nullable
	AuditFields
}

// Validate enforces the payment-method invariants: CASH records carry no bank
// fields, bank-method records carry both.
func (r LedgerRecord) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.NewFieldError("amount", "amount must be positive")
	}
	if r.Kind != Income && r.Kind != Expense {
		return apperrors.NewFieldError("kind", "kind must be INCOME or EXPENSE")
	}
	if r.PaymentMethod.IsCash() {
		if r.BankAccountID != nil {
			return apperrors.NewFieldError("bank_account", "a bank account cannot be set on a cash record")
		}
		if r.ReceiptNumber != nil {
			return apperrors.NewFieldError("receipt_number", "a receipt number cannot be set on a cash record")
		}
		return nil
	}
	switch r.PaymentMethod {
	case BankDeposit, BankExpense, Cheque, BankTransfer:
	default:
		return apperrors.NewFieldError("payment_method", "unknown payment method")
	}
	if r.BankAccountID == nil {
		return apperrors.NewFieldError("bank_account", "a bank account is required for bank payment methods")
	}
	if r.ReceiptNumber == nil || *r.ReceiptNumber == "" {
		return apperrors.NewFieldError("receipt_number", "a receipt number is required for bank payment methods")
	}
	return nil
}
