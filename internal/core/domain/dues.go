package domain

import "github.com/shopspring/decimal"

// DuesSummary is what a member currently owes as of a reference date.
// ExpectedMonthlyFee is for display only: the rank fee if one exists, else 0.
type DuesSummary struct {
	MemberID            string          `json:"memberID"`
	DueMonths           int             `json:"dueMonths"`
	PaidSubscriptions   int             `json:"paidSubscriptions"`
	UnpaidSubscriptions int             `json:"unpaidSubscriptions"`
	UnpaidInstallments  int             `json:"unpaidInstallments"`
	UnpaidRepayments    int             `json:"unpaidRepayments"`
	ExpectedMonthlyFee  decimal.Decimal `json:"expectedMonthlyFee"`
}

// LoanStatus summarizes a loan's repayments grouped by status.
type LoanStatus struct {
	LoanID      string `json:"loanID"`
	Paid        int    `json:"paid"`
	Unpaid      int    `json:"unpaid"`
	Total       int    `json:"total"`
	IsCompleted bool   `json:"isCompleted"`
}
