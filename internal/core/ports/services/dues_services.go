package services

import (
	"context"
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
)

// DuesSvcFacade computes what a member currently owes
type DuesSvcFacade interface {
	// GetMemberDues derives the dues summary as of the reference date: months
	// elapsed since the subscription date versus months paid, plus open
	// installments and repayments. Nothing is stored; the summary is computed
	// on read.
	GetMemberDues(ctx context.Context, memberID string, asOf time.Time) (*domain.DuesSummary, error)
}
