package dto

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DuesResponse summarizes what a member currently owes.
type DuesResponse struct {
	MemberID            string          `json:"memberID"`
	DueMonths           int             `json:"dueMonths"`
	PaidSubscriptions   int             `json:"paidSubscriptions"`
	UnpaidSubscriptions int             `json:"unpaidSubscriptions"`
	UnpaidInstallments  int             `json:"unpaidInstallments"`
	UnpaidRepayments    int             `json:"unpaidRepayments"`
	ExpectedMonthlyFee  decimal.Decimal `json:"expectedMonthlyFee"`
}

// ToDuesResponse converts a domain.DuesSummary to DuesResponse.
func ToDuesResponse(s *domain.DuesSummary) DuesResponse {
	return DuesResponse{
		MemberID:            s.MemberID,
		DueMonths:           s.DueMonths,
		PaidSubscriptions:   s.PaidSubscriptions,
		UnpaidSubscriptions: s.UnpaidSubscriptions,
		UnpaidInstallments:  s.UnpaidInstallments,
		UnpaidRepayments:    s.UnpaidRepayments,
		ExpectedMonthlyFee:  s.ExpectedMonthlyFee,
	}
}
