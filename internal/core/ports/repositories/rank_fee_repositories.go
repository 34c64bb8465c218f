package repositories

import (
	"context"

	"github.com/assocfin/afm_backend/internal/core/domain"
)

// RankFeeRepositoryFacade persists the rank -> monthly fee lookup table.
type RankFeeRepositoryFacade interface {
	// FindRankFee retrieves the fee row for a rank.
	FindRankFee(ctx context.Context, rank domain.Rank) (*domain.RankFee, error)

	// ListRankFees retrieves all fee rows.
	ListRankFees(ctx context.Context) ([]domain.RankFee, error)

	// SaveRankFee inserts or updates the fee for a rank.
	SaveRankFee(ctx context.Context, fee domain.RankFee) error
}
