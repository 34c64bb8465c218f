package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentPlanRequest starts a member's financial life: the total
// subscription fee, the prepaid portion, and the schedule for the rest.
// InstallmentsCount and PaymentStartDate are only consulted when the fee is
// not fully prepaid. MemberID comes from the URL path, not the body.
type CreatePaymentPlanRequest struct {
	MemberID          string          `json:"-"`
	SubscriptionFee   decimal.Decimal `json:"subscriptionFee" binding:"required"`
	Prepaid           decimal.Decimal `json:"prepaid"`
	InstallmentsCount int             `json:"installmentsCount"`
	PaymentStartDate  *time.Time      `json:"paymentStartDate"`
	PaymentDate       time.Time       `json:"paymentDate" binding:"required"`
	Notes             *string         `json:"notes"`
	PaymentDetails
}

// PaymentPlanResponse returns the prepayment record and the generated
// installment schedule.
type PaymentPlanResponse struct {
	MemberID     string                `json:"memberID"`
	Prepayment   *RecordResponse       `json:"prepayment"`
	Installments []InstallmentResponse `json:"installments"`
}
