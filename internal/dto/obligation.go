package dto

import (
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentDetails carries the ledger-record fields shared by every "pay"
// style request. The payment-method constraints are validated by the engine,
// not by binding, so the errors come back field-tagged.
type PaymentDetails struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK_DEPOSIT BANK_EXPENSE CHEQUE BANK_TRANSFER"`
	BankAccountID *string              `json:"bankAccountID"`
	ReceiptNumber *string              `json:"receiptNumber"`
}

// PayObligationRequest fulfills an UNPAID installment or repayment. The paid
// amount may differ from the scheduled one and overwrites it.
type PayObligationRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt time.Time       `json:"paidAt" binding:"required"`
	Notes  *string         `json:"notes"`
	PaymentDetails
}

// RecordSubscriptionRequest materializes and pays one subscription month.
// MemberID comes from the URL path, not the body.
type RecordSubscriptionRequest struct {
	MemberID string          `json:"-"`
	Month    time.Time       `json:"month" binding:"required"` // Normalized to the first of the month
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	PaidAt   time.Time       `json:"paidAt" binding:"required"`
	Notes    *string         `json:"notes"`
	PaymentDetails
}

// InstallmentResponse defines the data returned for an installment.
type InstallmentResponse struct {
	InstallmentID  string                  `json:"installmentID"`
	MemberID       string                  `json:"memberID"`
	SequenceNumber int                     `json:"sequenceNumber"`
	Amount         decimal.Decimal         `json:"amount"`
	DueDate        time.Time               `json:"dueDate"`
	Status         domain.ObligationStatus `json:"status"`
	PaidAt         *time.Time              `json:"paidAt"`
	Notes          *string                 `json:"notes"`
	RecordID       *string                 `json:"recordID"`
}

// RepaymentResponse defines the data returned for a repayment.
type RepaymentResponse struct {
	RepaymentID    string                  `json:"repaymentID"`
	LoanID         string                  `json:"loanID"`
	SequenceNumber int                     `json:"sequenceNumber"`
	Amount         decimal.Decimal         `json:"amount"`
	DueDate        time.Time               `json:"dueDate"`
	Status         domain.ObligationStatus `json:"status"`
	PaidAt         *time.Time              `json:"paidAt"`
	Notes          *string                 `json:"notes"`
	RecordID       *string                 `json:"recordID"`
}

// SubscriptionResponse defines the data returned for a subscription month.
type SubscriptionResponse struct {
	SubscriptionID string                  `json:"subscriptionID"`
	MemberID       string                  `json:"memberID"`
	Month          time.Time               `json:"month"`
	Amount         decimal.Decimal         `json:"amount"`
	Status         domain.ObligationStatus `json:"status"`
	PaidAt         *time.Time              `json:"paidAt"`
	RecordID       *string                 `json:"recordID"`
}

// ToInstallmentResponse converts a domain.Installment to InstallmentResponse.
func ToInstallmentResponse(i *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:  i.InstallmentID,
		MemberID:       i.MemberID,
		SequenceNumber: i.SequenceNumber,
		Amount:         i.Amount,
		DueDate:        i.DueDate,
		Status:         i.Status,
		PaidAt:         i.PaidAt,
		Notes:          i.Notes,
		RecordID:       i.RecordID,
	}
}

// ToListInstallmentResponse converts a slice of installments to response DTOs.
func ToListInstallmentResponse(installments []domain.Installment) []InstallmentResponse {
	res := make([]InstallmentResponse, len(installments))
	for i := range installments {
		res[i] = ToInstallmentResponse(&installments[i])
	}
	return res
}

// ToRepaymentResponse converts a domain.Repayment to RepaymentResponse.
func ToRepaymentResponse(r *domain.Repayment) RepaymentResponse {
	return RepaymentResponse{
		RepaymentID:    r.RepaymentID,
		LoanID:         r.LoanID,
		SequenceNumber: r.SequenceNumber,
		Amount:         r.Amount,
		DueDate:        r.DueDate,
		Status:         r.Status,
		PaidAt:         r.PaidAt,
		Notes:          r.Notes,
		RecordID:       r.RecordID,
	}
}

// ToListRepaymentResponse converts a slice of repayments to response DTOs.
func ToListRepaymentResponse(repayments []domain.Repayment) []RepaymentResponse {
	res := make([]RepaymentResponse, len(repayments))
	for i := range repayments {
		res[i] = ToRepaymentResponse(&repayments[i])
	}
	return res
}

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		MemberID:       s.MemberID,
		Month:          s.Month,
		Amount:         s.Amount,
		Status:         s.Status,
		PaidAt:         s.PaidAt,
		RecordID:       s.RecordID,
	}
}

// ToListSubscriptionResponse converts a slice of subscriptions to response DTOs.
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		res[i] = ToSubscriptionResponse(&subs[i])
	}
	return res
}
