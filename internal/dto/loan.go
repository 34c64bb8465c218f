package dto

import (
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest issues a loan: one disbursement expense record plus an
// even repayment schedule starting at PaymentStartDate's month.
type CreateLoanRequest struct {
	MemberID         string          `json:"memberID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	IssuedDate       time.Time       `json:"issuedDate" binding:"required"`
	RepaymentsCount  int             `json:"repaymentsCount" binding:"required,min=1"`
	PaymentStartDate time.Time       `json:"paymentStartDate" binding:"required"`
	Notes            *string         `json:"notes"`
	PaymentDetails
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID     string          `json:"loanID"`
	MemberID   string          `json:"memberID"`
	Amount     decimal.Decimal `json:"amount"`
	IssuedDate time.Time       `json:"issuedDate"`
	RecordID   string          `json:"recordID"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
}

// LoanDetailResponse is a loan together with its repayment schedule.
type LoanDetailResponse struct {
	LoanResponse
	Repayments []RepaymentResponse `json:"repayments"`
}

// LoanStatusResponse summarizes repayment progress on a loan.
type LoanStatusResponse struct {
	LoanID      string `json:"loanID"`
	Paid        int    `json:"paid"`
	Unpaid      int    `json:"unpaid"`
	Total       int    `json:"total"`
	IsCompleted bool   `json:"isCompleted"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:     l.LoanID,
		MemberID:   l.MemberID,
		Amount:     l.Amount,
		IssuedDate: l.IssuedDate,
		RecordID:   l.RecordID,
		CreatedAt:  l.CreatedAt,
		CreatedBy:  l.CreatedBy,
	}
}

// ToListLoanResponse converts a slice of loans to response DTOs.
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

// ToLoanStatusResponse converts a domain.LoanStatus to LoanStatusResponse.
func ToLoanStatusResponse(s *domain.LoanStatus) LoanStatusResponse {
	return LoanStatusResponse{
		LoanID:      s.LoanID,
		Paid:        s.Paid,
		Unpaid:      s.Unpaid,
		Total:       s.Total,
		IsCompleted: s.IsCompleted,
	}
}
