package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
	"github.com/assocfin/afm_backend/internal/dto"
	"github.com/assocfin/afm_backend/internal/middleware"
)

// rankFeeService manages the rank -> monthly fee table consumed by the dues
// calculator.
type rankFeeService struct {
	rankFeeRepo portsrepo.RankFeeRepositoryFacade
}

// NewRankFeeService creates a new rank fee service.
func NewRankFeeService(rankFeeRepo portsrepo.RankFeeRepositoryFacade) portssvc.RankFeeSvcFacade {
	return &rankFeeService{rankFeeRepo: rankFeeRepo}
}

var _ portssvc.RankFeeSvcFacade = (*rankFeeService)(nil)

func (s *rankFeeService) GetRankFee(ctx context.Context, rank domain.Rank) (*domain.RankFee, error) {
	if !validRank(rank) {
		return nil, apperrors.NewFieldError("rank", "unknown rank")
	}
	return s.rankFeeRepo.FindRankFee(ctx, rank)
}

func (s *rankFeeService) ListRankFees(ctx context.Context) ([]domain.RankFee, error) {
	return s.rankFeeRepo.ListRankFees(ctx)
}

// SetRankFee inserts or updates the monthly fee for a rank.
func (s *rankFeeService) SetRankFee(ctx context.Context, rank domain.Rank, req dto.SetRankFeeRequest, updaterUserID string) (*domain.RankFee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !validRank(rank) {
		return nil, apperrors.NewFieldError("rank", "unknown rank")
	}
	if req.MonthlyFee.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("monthly_fee", "monthly fee must be positive")
	}

	now := time.Now()
	fee := domain.RankFee{
		Rank:       rank,
		MonthlyFee: req.MonthlyFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.rankFeeRepo.SaveRankFee(ctx, fee); err != nil {
		logger.Error("Failed to save rank fee", slog.String("error", err.Error()), slog.String("rank", string(rank)))
		return nil, err
	}

	logger.Info("Rank fee set", slog.String("rank", string(rank)), slog.String("monthly_fee", req.MonthlyFee.String()))
	return &fee, nil
}

func validRank(rank domain.Rank) bool {
	for _, r := range domain.AllRanks {
		if r == rank {
			return true
		}
	}
	return false
}
