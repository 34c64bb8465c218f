package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/middleware"
	"github.com/assocfin/afm_backend/internal/utils/scheduling"
)

// duesService computes what a member owes. Dues are never stored: every read
// derives the summary from the subscription date and the obligation counts.
type duesService struct {
	memberRepo       portsrepo.MemberRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	installmentRepo  portsrepo.InstallmentRepositoryFacade
	repaymentRepo    portsrepo.RepaymentRepositoryFacade
	rankFeeRepo      portsrepo.RankFeeRepositoryFacade
}

// NewDuesService creates a new dues service.
func NewDuesService(
	memberRepo portsrepo.MemberRepositoryFacade,
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	installmentRepo portsrepo.InstallmentRepositoryFacade,
	repaymentRepo portsrepo.RepaymentRepositoryFacade,
	rankFeeRepo portsrepo.RankFeeRepositoryFacade,
) portssvc.DuesSvcFacade {
	return &duesService{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		installmentRepo:  installmentRepo,
		repaymentRepo:    repaymentRepo,
		rankFeeRepo:      rankFeeRepo,
	}
}

var _ portssvc.DuesSvcFacade = (*duesService)(nil)

// GetMemberDues derives the dues summary as of the reference date. Unpaid
// subscription months never go negative: a member who somehow paid ahead owes
// zero, not a credit.
func (s *duesService) GetMemberDues(ctx context.Context, memberID string, asOf time.Time) (*domain.DuesSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	dueMonths := scheduling.MonthsBetween(member.SubscriptionDate, asOf)
	if dueMonths < 0 {
		dueMonths = 0
	}

	paidSubscriptions, err := s.subscriptionRepo.CountSubscriptionsByMember(ctx, memberID)
	if err != nil {
		logger.Error("Failed to count subscriptions", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, err
	}

	unpaidSubscriptions := dueMonths - paidSubscriptions
	if unpaidSubscriptions < 0 {
		unpaidSubscriptions = 0
	}

	unpaidInstallments, err := s.installmentRepo.CountInstallmentsByStatus(ctx, memberID, domain.Unpaid)
	if err != nil {
		logger.Error("Failed to count installments", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, err
	}

	unpaidRepayments, err := s.repaymentRepo.CountUnpaidRepaymentsByMember(ctx, memberID)
	if err != nil {
		logger.Error("Failed to count repayments", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, err
	}

	// A missing fee row is not an error; the expected fee just reads as zero.
	expectedFee := decimal.Zero
	fee, err := s.rankFeeRepo.FindRankFee(ctx, member.Rank)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if fee != nil {
		expectedFee = fee.MonthlyFee
	}

	return &domain.DuesSummary{
		MemberID:            memberID,
		DueMonths:           dueMonths,
		PaidSubscriptions:   paidSubscriptions,
		UnpaidSubscriptions: unpaidSubscriptions,
		UnpaidInstallments:  unpaidInstallments,
		UnpaidRepayments:    unpaidRepayments,
		ExpectedMonthlyFee:  expectedFee,
	}, nil
}
