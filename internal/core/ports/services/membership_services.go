package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// MembershipSvcFacade sets up and inspects a member's financial plan
type MembershipSvcFacade interface {
	// GetMemberByID retrieves a member's financial profile.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// CreatePaymentPlan records the prepaid portion of the subscription fee
	// and schedules the remainder as even monthly installments, all in one
	// transaction. A fully prepaid fee produces no installments.
	CreatePaymentPlan(ctx context.Context, req dto.CreatePaymentPlanRequest, creatorUserID string) (*dto.PaymentPlanResponse, error)
}
