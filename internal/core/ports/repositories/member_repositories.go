package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberRepositoryFacade reads member records owned by the membership CRUD
// layer and attaches their payment-plan rows.
type MemberRepositoryFacade interface {
	// FindMemberByID retrieves the financial slice of a member record.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// CreatePaymentPlan atomically inserts the optional prepayment record
	// (linking it to the member), applies its balance deltas and bulk-inserts
	// the installment schedule. If any row fails, nothing persists.
	CreatePaymentPlan(ctx context.Context, memberID string, record *domain.LedgerRecord, deltas map[string]decimal.Decimal, installments []domain.Installment) error
}
