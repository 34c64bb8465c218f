package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Each pay/revoke/delete method below is one atomic mutation: the obligation
// row change, the ledger record insert or delete and the balance deltas all
// happen in a single database transaction, or not at all. Pay and revoke use
// an optimistic status guard (UPDATE ... WHERE status = <expected>); when the
// guard matches no row the repository returns ErrInvalidTransition and the
// whole transaction rolls back, so a double-pay race creates exactly one
// ledger record.

// InstallmentRepositoryFacade persists payment-plan installments.
type InstallmentRepositoryFacade interface {
	// FindInstallmentByID retrieves an installment by its unique identifier.
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// ListInstallmentsByMember retrieves a member's installments ordered by sequence.
	ListInstallmentsByMember(ctx context.Context, memberID string) ([]domain.Installment, error)

	// CountInstallmentsByStatus counts a member's installments with the given status.
	CountInstallmentsByStatus(ctx context.Context, memberID string, status domain.ObligationStatus) (int, error)

	// PayInstallment inserts the fulfilling record, flips the installment to
	// PAID (guarded on UNPAID) and applies the balance deltas.
	PayInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// RevokeInstallment flips the installment back to UNPAID (guarded on
	// PAID), deletes the detached record and applies the retract deltas.
	RevokeInstallment(ctx context.Context, installment domain.Installment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// DeleteInstallment removes the installment and, if present, its owned
	// record, applying the retract deltas.
	DeleteInstallment(ctx context.Context, installment domain.Installment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error
}

// RepaymentRepositoryFacade persists loan repayments.
type RepaymentRepositoryFacade interface {
	// FindRepaymentByID retrieves a repayment by its unique identifier.
	FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error)

	// ListRepaymentsByLoan retrieves a loan's repayments ordered by sequence.
	ListRepaymentsByLoan(ctx context.Context, loanID string) ([]domain.Repayment, error)

	// CountRepaymentsByLoan returns the paid and unpaid repayment counts for a loan.
	CountRepaymentsByLoan(ctx context.Context, loanID string) (paid int, unpaid int, err error)

	// CountUnpaidRepaymentsByMember counts UNPAID repayments across all of a member's loans.
	CountUnpaidRepaymentsByMember(ctx context.Context, memberID string) (int, error)

	// PayRepayment inserts the fulfilling record, flips the repayment to PAID
	// (guarded on UNPAID) and applies the balance deltas.
	PayRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// RevokeRepayment flips the repayment back to UNPAID (guarded on PAID),
	// deletes the detached record and applies the retract deltas.
	RevokeRepayment(ctx context.Context, repayment domain.Repayment, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// DeleteRepayment removes the repayment and, if present, its owned
	// record, applying the retract deltas.
	DeleteRepayment(ctx context.Context, repayment domain.Repayment, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error
}

// SubscriptionRepositoryFacade persists monthly subscription rows, which are
// materialized lazily on payment.
type SubscriptionRepositoryFacade interface {
	// FindSubscriptionByID retrieves a subscription by its unique identifier.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// ListSubscriptionsByMember retrieves a member's subscriptions ordered by month.
	ListSubscriptionsByMember(ctx context.Context, memberID string) ([]domain.Subscription, error)

	// CountSubscriptionsByMember counts a member's subscription rows.
	CountSubscriptionsByMember(ctx context.Context, memberID string) (int, error)

	// SaveSubscription inserts the month row together with its fulfilling
	// record and balance deltas. A duplicate (member, month) pair fails with
	// ErrDuplicate: that month is already paid.
	SaveSubscription(ctx context.Context, subscription domain.Subscription, record domain.LedgerRecord, deltas map[string]decimal.Decimal) error

	// DeleteSubscription removes the month row and, if present, its owned
	// record, applying the retract deltas. Used by both revoke and delete:
	// a subscription row only exists while paid.
	DeleteSubscription(ctx context.Context, subscription domain.Subscription, record *domain.LedgerRecord, deltas map[string]decimal.Decimal) error
}
