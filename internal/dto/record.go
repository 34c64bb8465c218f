package dto

import (
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest defines the data needed to append a ledger record.
type CreateRecordRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	CategoryID    string               `json:"categoryID" binding:"required"`
	Date          time.Time            `json:"date" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK_DEPOSIT BANK_EXPENSE CHEQUE BANK_TRANSFER"`
	BankAccountID *string              `json:"bankAccountID"` // Required for bank methods
	ReceiptNumber *string              `json:"receiptNumber"` // Required for bank methods
	Notes         *string              `json:"notes"`
}

// AmendRecordRequest defines a correction of an existing record. Only the
// provided fields change; the merged record is re-validated as a whole.
type AmendRecordRequest struct {
	Amount        *decimal.Decimal      `json:"amount"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK_DEPOSIT BANK_EXPENSE CHEQUE BANK_TRANSFER"`
	BankAccountID *string               `json:"bankAccountID"`
	ReceiptNumber *string               `json:"receiptNumber"`
}

// RecordResponse defines the data returned for a ledger record.
type RecordResponse struct {
	RecordID      string               `json:"recordID"`
	Amount        decimal.Decimal      `json:"amount"`
	Kind          domain.RecordKind    `json:"kind"`
	CategoryID    string               `json:"categoryID"`
	Date          time.Time            `json:"date"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	BankAccountID *string              `json:"bankAccountID"`
	ReceiptNumber *string              `json:"receiptNumber"`
	Notes         *string              `json:"notes"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ToRecordResponse converts a domain.LedgerRecord to RecordResponse.
func ToRecordResponse(r *domain.LedgerRecord) RecordResponse {
	return RecordResponse{
		RecordID:      r.RecordID,
		Amount:        r.Amount,
		Kind:          r.Kind,
		CategoryID:    r.CategoryID,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		BankAccountID: r.BankAccountID,
		ReceiptNumber: r.ReceiptNumber,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}

// ToListRecordResponse converts a slice of records to response DTOs.
func ToListRecordResponse(records []domain.LedgerRecord) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i := range records {
		res[i] = ToRecordResponse(&records[i])
	}
	return res
}
