package services

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/dto"
)

// RankFeeSvcFacade manages the rank -> monthly fee table
type RankFeeSvcFacade interface {
	// GetRankFee retrieves the monthly fee for a rank.
	GetRankFee(ctx context.Context, rank domain.Rank) (*domain.RankFee, error)

	// ListRankFees retrieves the whole fee table.
	ListRankFees(ctx context.Context) ([]domain.RankFee, error)

	// SetRankFee inserts or updates the fee for a rank.
	SetRankFee(ctx context.Context, rank domain.Rank, req dto.SetRankFeeRequest, updaterUserID string) (*domain.RankFee, error)
}
