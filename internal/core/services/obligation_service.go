package services

import (
	"context"
	"errors"
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

// obligationService drives the UNPAID -> PAID -> UNPAID lifecycle of
// installments, repayments and subscriptions. Each pay creates the fulfilling
// ledger record under the matching system category; each revoke retracts it.
type obligationService struct {
	installmentRepo  portsrepo.InstallmentRepositoryFacade
	repaymentRepo    portsrepo.RepaymentRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	recordRepo       portsrepo.RecordRepositoryFacade
	categoryRepo     portsrepo.CategoryRepositoryFacade
	memberRepo       portsrepo.MemberRepositoryFacade
}

// NewObligationService creates a new obligation service.
func NewObligationService(
	installmentRepo portsrepo.InstallmentRepositoryFacade,
	repaymentRepo portsrepo.RepaymentRepositoryFacade,
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	recordRepo portsrepo.RecordRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	memberRepo portsrepo.MemberRepositoryFacade,
) portssvc.ObligationSvcFacade {
	return &obligationService{
		installmentRepo:  installmentRepo,
		repaymentRepo:    repaymentRepo,
		subscriptionRepo: subscriptionRepo,
		recordRepo:       recordRepo,
		categoryRepo:     categoryRepo,
		memberRepo:       memberRepo,
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

// buildFulfillingRecord assembles and validates the ledger record that a pay
// operation attaches to an obligation.
func (s *obligationService) buildFulfillingRecord(ctx context.Context, key domain.SystemCategoryKey, amount decimal.Decimal, date time.Time, details dto.PaymentDetails, notes *string, userID string) (*domain.LedgerRecord, error) {
	category, err := s.categoryRepo.FindCategoryBySystemKey(ctx, key)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch system category", slog.String("error", err.Error()), slog.String("system_key", string(key)))
		return nil, fmt.Errorf("failed to fetch system category %s: %w", key, err)
	}

	now := time.Now()
	record := domain.LedgerRecord{
		RecordID:      uuid.NewString(),
		Amount:        amount,
		Kind:          category.Kind,
		CategoryID:    category.CategoryID,
		Date:          date,
		PaymentMethod: details.PaymentMethod,
		BankAccountID: details.BankAccountID,
		ReceiptNumber: details.ReceiptNumber,
		Notes:         notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *obligationService) GetInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	return s.installmentRepo.FindInstallmentByID(ctx, installmentID)
}

func (s *obligationService) ListInstallmentsByMember(ctx context.Context, memberID string) ([]domain.Installment, error) {
	return s.installmentRepo.ListInstallmentsByMember(ctx, memberID)
}

// PayInstallment fulfills an UNPAID installment. The paid amount overwrites
// the scheduled one; the status flip is guarded in the repository so a
// concurrent double pay creates exactly one record.
func (s *obligationService) PayInstallment(ctx context.Context, installmentID string, req dto.PayObligationRequest, creatorUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	installment, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.Status != domain.Unpaid {
		return nil, fmt.Errorf("%w: installment is already paid", apperrors.ErrInvalidTransition)
	}

	record, err := s.buildFulfillingRecord(ctx, domain.CategoryInstallmentFee, req.Amount, req.PaidAt, req.PaymentDetails, req.Notes, creatorUserID)
	if err != nil {
		return nil, err
	}

	updated := *installment
	updated.Amount = req.Amount
	updated.Status = domain.Paid
	updated.PaidAt = &req.PaidAt
	if req.Notes != nil {
		updated.Notes = req.Notes
	}
	updated.RecordID = &record.RecordID
	updated.LastUpdatedAt = record.LastUpdatedAt
	updated.LastUpdatedBy = creatorUserID

	deltas := ledgerops.AppendDelta(*record)
	if err := s.installmentRepo.PayInstallment(ctx, updated, *record, deltas); err != nil {
		logger.Error("Failed to pay installment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, err
	}

	logger.Info("Installment paid", slog.String("installment_id", installmentID), slog.String("record_id", record.RecordID))
	return &updated, nil
}

// RevokeInstallmentPayment undoes a payment. The amount is left at the last
// paid value; only status, paid_at and the record linkage are reset.
func (s *obligationService) RevokeInstallmentPayment(ctx context.Context, installmentID string, updaterUserID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	installment, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.Status != domain.Paid || installment.RecordID == nil {
		return nil, fmt.Errorf("%w: installment is not paid", apperrors.ErrInvalidTransition)
	}

	record, err := s.recordRepo.FindRecordByID(ctx, *installment.RecordID)
	if err != nil {
		logger.Error("Failed to fetch fulfilling record for revoke", slog.String("error", err.Error()), slog.String("record_id", *installment.RecordID))
		return nil, err
	}

	updated := *installment
	updated.Status = domain.Unpaid
	updated.PaidAt = nil
	updated.Notes = nil
	updated.RecordID = nil
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = updaterUserID

	deltas := ledgerops.RetractDelta(*record)
	if err := s.installmentRepo.RevokeInstallment(ctx, updated, *record, deltas); err != nil {
		logger.Error("Failed to revoke installment payment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, err
	}

	logger.Info("Installment payment revoked", slog.String("installment_id", installmentID))
	return &updated, nil
}

// DeleteInstallment removes an installment and, when paid, the record it owns.
func (s *obligationService) DeleteInstallment(ctx context.Context, installmentID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	installment, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return err
	}

	var record *domain.LedgerRecord
	deltas := map[string]decimal.Decimal{}
	if installment.RecordID != nil {
		record, err = s.recordRepo.FindRecordByID(ctx, *installment.RecordID)
		if err != nil {
			return err
		}
		deltas = ledgerops.RetractDelta(*record)
	}

	if err := s.installmentRepo.DeleteInstallment(ctx, *installment, record, deltas); err != nil {
		logger.Error("Failed to delete installment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return err
	}

	logger.Info("Installment deleted", slog.String("installment_id", installmentID), slog.String("user_id", updaterUserID))
	return nil
}

func (s *obligationService) GetRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	return s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
}

func (s *obligationService) ListRepaymentsByLoan(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	return s.repaymentRepo.ListRepaymentsByLoan(ctx, loanID)
}

// PayRepayment fulfills an UNPAID loan repayment with a loan-repayment income
// record. Same lifecycle and guards as PayInstallment.
func (s *obligationService) PayRepayment(ctx context.Context, repaymentID string, req dto.PayObligationRequest, creatorUserID string) (*domain.Repayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repayment, err := s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
	if err != nil {
		return nil, err
	}
	if repayment.Status != domain.Unpaid {
		return nil, fmt.Errorf("%w: repayment is already paid", apperrors.ErrInvalidTransition)
	}

	record, err := s.buildFulfillingRecord(ctx, domain.CategoryLoanRepayment, req.Amount, req.PaidAt, req.PaymentDetails, req.Notes, creatorUserID)
	if err != nil {
		return nil, err
	}

	updated := *repayment
	updated.Amount = req.Amount
	updated.Status = domain.Paid
	updated.PaidAt = &req.PaidAt
	if req.Notes != nil {
		updated.Notes = req.Notes
	}
	updated.RecordID = &record.RecordID
	updated.LastUpdatedAt = record.LastUpdatedAt
	updated.LastUpdatedBy = creatorUserID

	deltas := ledgerops.AppendDelta(*record)
	if err := s.repaymentRepo.PayRepayment(ctx, updated, *record, deltas); err != nil {
		logger.Error("Failed to pay repayment", slog.String("error", err.Error()), slog.String("repayment_id", repaymentID))
		return nil, err
	}

	logger.Info("Repayment paid", slog.String("repayment_id", repaymentID), slog.String("record_id", record.RecordID))
	return &updated, nil
}

// RevokeRepaymentPayment undoes a repayment payment, leaving the amount at the
// last paid value.
func (s *obligationService) RevokeRepaymentPayment(ctx context.Context, repaymentID string, updaterUserID string) (*domain.Repayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repayment, err := s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
	if err != nil {
		return nil, err
	}
	if repayment.Status != domain.Paid || repayment.RecordID == nil {
		return nil, fmt.Errorf("%w: repayment is not paid", apperrors.ErrInvalidTransition)
	}

	record, err := s.recordRepo.FindRecordByID(ctx, *repayment.RecordID)
	if err != nil {
		return nil, err
	}

	updated := *repayment
	updated.Status = domain.Unpaid
	updated.PaidAt = nil
	updated.Notes = nil
	updated.RecordID = nil
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = updaterUserID

	deltas := ledgerops.RetractDelta(*record)
	if err := s.repaymentRepo.RevokeRepayment(ctx, updated, *record, deltas); err != nil {
		logger.Error("Failed to revoke repayment payment", slog.String("error", err.Error()), slog.String("repayment_id", repaymentID))
		return nil, err
	}

	logger.Info("Repayment payment revoked", slog.String("repayment_id", repaymentID))
	return &updated, nil
}

func (s *obligationService) ListSubscriptionsByMember(ctx context.Context, memberID string) ([]domain.Subscription, error) {
	return s.subscriptionRepo.ListSubscriptionsByMember(ctx, memberID)
}

// RecordSubscription materializes and pays one subscription month. Months are
// lazy: the row is created already PAID, and a second payment of the same
// month trips the unique (member, month) constraint.
func (s *obligationService) RecordSubscription(ctx context.Context, req dto.RecordSubscriptionRequest, creatorUserID string) (*domain.Subscription, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.memberRepo.FindMemberByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	record, err := s.buildFulfillingRecord(ctx, domain.CategorySubscriptionFee, req.Amount, req.PaidAt, req.PaymentDetails, req.Notes, creatorUserID)
	if err != nil {
		return nil, err
	}

	subscription := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		MemberID:       req.MemberID,
		Month:          scheduling.MonthOf(req.Month),
		Amount:         req.Amount,
		Status:         domain.Paid,
		PaidAt:         &req.PaidAt,
		Notes:          req.Notes,
		RecordID:       &record.RecordID,
		AuditFields:    record.AuditFields,
	}

	deltas := ledgerops.AppendDelta(*record)
	if err := s.subscriptionRepo.SaveSubscription(ctx, subscription, *record, deltas); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: subscription for this month is already paid", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to record subscription", slog.String("error", err.Error()), slog.String("member_id", req.MemberID))
		return nil, err
	}

	logger.Info("Subscription recorded", slog.String("subscription_id", subscription.SubscriptionID), slog.String("member_id", req.MemberID))
	return &subscription, nil
}

// RevokeSubscription deletes a paid month and retracts its record. The row
// only exists while paid, so revoke and delete are the same operation.
func (s *obligationService) RevokeSubscription(ctx context.Context, subscriptionID string, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	subscription, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return err
	}

	var record *domain.LedgerRecord
	deltas := map[string]decimal.Decimal{}
	if subscription.RecordID != nil {
		record, err = s.recordRepo.FindRecordByID(ctx, *subscription.RecordID)
		if err != nil {
			return err
		}
		deltas = ledgerops.RetractDelta(*record)
	}

	if err := s.subscriptionRepo.DeleteSubscription(ctx, *subscription, record, deltas); err != nil {
		logger.Error("Failed to revoke subscription", slog.String("error", err.Error()), slog.String("subscription_id", subscriptionID))
		return err
	}

	logger.Info("Subscription revoked", slog.String("subscription_id", subscriptionID), slog.String("user_id", updaterUserID))
	return nil
}
