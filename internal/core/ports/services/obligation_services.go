package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// InstallmentSvc defines operations on membership-fee installments
type InstallmentSvc interface {
	// GetInstallmentByID retrieves a specific installment.
	GetInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// ListInstallmentsByMember retrieves a member's installment schedule.
	ListInstallmentsByMember(ctx context.Context, memberID string) ([]domain.Installment, error)

	// PayInstallment fulfills an UNPAID installment: it creates the linked
	// ledger record and flips the status atomically. The paid amount
	// overwrites the scheduled one.
	PayInstallment(ctx context.Context, installmentID string, req dto.PayObligationRequest, creatorUserID string) (*domain.Installment, error)

	// RevokeInstallmentPayment undoes a payment: the linked record is
	// retracted and the installment returns to UNPAID.
	RevokeInstallmentPayment(ctx context.Context, installmentID string, updaterUserID string) (*domain.Installment, error)

	// DeleteInstallment removes an installment and, if paid, its record.
	DeleteInstallment(ctx context.Context, installmentID string, updaterUserID string) error
}

// RepaymentSvc defines operations on loan repayments
type RepaymentSvc interface {
	// GetRepaymentByID retrieves a specific repayment.
	GetRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error)

	// ListRepaymentsByLoan retrieves a loan's repayment schedule.
	ListRepaymentsByLoan(ctx context.Context, loanID string) ([]domain.Repayment, error)

	// PayRepayment fulfills an UNPAID repayment, creating the linked income
	// record atomically.
	PayRepayment(ctx context.Context, repaymentID string, req dto.PayObligationRequest, creatorUserID string) (*domain.Repayment, error)

	// RevokeRepaymentPayment undoes a repayment payment.
	RevokeRepaymentPayment(ctx context.Context, repaymentID string, updaterUserID string) (*domain.Repayment, error)
}

// SubscriptionSvc defines operations on monthly subscription payments.
// Subscription months are materialized lazily: a row exists only once paid.
type SubscriptionSvc interface {
	// ListSubscriptionsByMember retrieves a member's paid months.
	ListSubscriptionsByMember(ctx context.Context, memberID string) ([]domain.Subscription, error)

	// RecordSubscription materializes and pays one subscription month for a
	// member. Paying the same month twice fails with ErrDuplicate.
	RecordSubscription(ctx context.Context, req dto.RecordSubscriptionRequest, creatorUserID string) (*domain.Subscription, error)

	// RevokeSubscription deletes a paid month and retracts its record.
	RevokeSubscription(ctx context.Context, subscriptionID string, updaterUserID string) error
}

// ObligationSvcFacade combines every obligation service interface
type ObligationSvcFacade interface {
	InstallmentSvc
	RepaymentSvc
	SubscriptionSvc
}
