package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
	"github.com/assocfin/afm_backend/internal/utils/ledgerops"
	"github.com/assocfin/afm_backend/internal/utils/scheduling"
)

// membershipService sets up a member's initial payment plan: the prepaid slice
// of the subscription fee as a ledger record, the remainder as an even
// installment schedule.
type membershipService struct {
	memberRepo      portsrepo.MemberRepositoryFacade
	installmentRepo portsrepo.InstallmentRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

// NewMembershipService creates a new membership service.
func NewMembershipService(memberRepo portsrepo.MemberRepositoryFacade, installmentRepo portsrepo.InstallmentRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.MembershipSvcFacade {
	return &membershipService{
		memberRepo:      memberRepo,
		installmentRepo: installmentRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

func (s *membershipService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

// CreatePaymentPlan records the prepaid portion of the subscription fee and
// schedules the remainder as even monthly installments, all-or-nothing. A
// fully prepaid fee produces no installments; a zero prepayment produces no
// record.
func (s *membershipService) CreatePaymentPlan(ctx context.Context, req dto.CreatePaymentPlanRequest, creatorUserID string) (*dto.PaymentPlanResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	if req.SubscriptionFee.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("subscription_fee", "subscription fee must be positive")
	}
	if req.Prepaid.IsNegative() {
		return nil, apperrors.NewFieldError("prepaid", "prepaid amount cannot be negative")
	}
	if req.Prepaid.GreaterThan(req.SubscriptionFee) {
		return nil, apperrors.NewFieldError("prepaid", "prepaid amount cannot exceed the subscription fee")
	}

	if member.PrepaymentRecordID != nil {
		return nil, fmt.Errorf("%w: member already has a payment plan", apperrors.ErrDuplicate)
	}
	existing, err := s.installmentRepo.ListInstallmentsByMember(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: member already has a payment plan", apperrors.ErrDuplicate)
	}

	now := time.Now()
	var record *domain.LedgerRecord
	deltas := map[string]decimal.Decimal{}
	if req.Prepaid.IsPositive() {
		category, err := s.categoryRepo.FindCategoryBySystemKey(ctx, domain.CategoryMembershipPrepayment)
		if err != nil {
			logger.Error("Failed to fetch prepayment category", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch system category %s: %w", domain.CategoryMembershipPrepayment, err)
		}
		record = &domain.LedgerRecord{
			RecordID:      uuid.NewString(),
			Amount:        req.Prepaid,
			Kind:          category.Kind,
			CategoryID:    category.CategoryID,
			Date:          req.PaymentDate,
			PaymentMethod: req.PaymentMethod,
			BankAccountID: req.BankAccountID,
			ReceiptNumber: req.ReceiptNumber,
			Notes:         req.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := record.Validate(); err != nil {
			return nil, err
		}
		deltas = ledgerops.AppendDelta(*record)
	}

	var installments []domain.Installment
	remainder := req.SubscriptionFee.Sub(req.Prepaid)
	if remainder.IsPositive() {
		if req.InstallmentsCount < 1 {
			return nil, apperrors.NewFieldError("installments_count", "installment count is required when the fee is not fully prepaid")
		}
		if req.PaymentStartDate == nil {
			return nil, apperrors.NewFieldError("payment_start_date", "payment start date is required when the fee is not fully prepaid")
		}
		items, err := scheduling.BuildSchedule(remainder, req.InstallmentsCount, *req.PaymentStartDate)
		if err != nil {
			return nil, err
		}
		installments = make([]domain.Installment, len(items))
		for i, item := range items {
			installments[i] = domain.Installment{
				InstallmentID:  uuid.NewString(),
				MemberID:       req.MemberID,
				SequenceNumber: item.SequenceNumber,
				Amount:         item.Amount,
				DueDate:        item.DueDate,
				Status:         domain.Unpaid,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     creatorUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: creatorUserID,
				},
			}
		}
	}

	if err := s.memberRepo.CreatePaymentPlan(ctx, req.MemberID, record, deltas, installments); err != nil {
		logger.Error("Failed to create payment plan", slog.String("error", err.Error()), slog.String("member_id", req.MemberID))
		return nil, fmt.Errorf("failed to create payment plan: %w", err)
	}

	logger.Info("Payment plan created", slog.String("member_id", req.MemberID), slog.Int("installments", len(installments)))

	resp := &dto.PaymentPlanResponse{
		MemberID:     req.MemberID,
		Installments: dto.ToListInstallmentResponse(installments),
	}
	if record != nil {
		rr := dto.ToRecordResponse(record)
		resp.Prepayment = &rr
	}
	return resp, nil
}
