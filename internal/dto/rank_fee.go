package dto

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetRankFeeRequest sets the monthly subscription fee for a rank.
type SetRankFeeRequest struct {
	MonthlyFee decimal.Decimal `json:"monthlyFee" binding:"required"`
}

// RankFeeResponse defines the data returned for a rank fee row.
type RankFeeResponse struct {
	Rank       domain.Rank     `json:"rank"`
	MonthlyFee decimal.Decimal `json:"monthlyFee"`
}

// ToRankFeeResponse converts a domain.RankFee to RankFeeResponse.
func ToRankFeeResponse(f *domain.RankFee) RankFeeResponse {
	return RankFeeResponse{Rank: f.Rank, MonthlyFee: f.MonthlyFee}
}

// ToListRankFeeResponse converts a slice of rank fees to response DTOs.
func ToListRankFeeResponse(fees []domain.RankFee) []RankFeeResponse {
	res := make([]RankFeeResponse, len(fees))
	for i := range fees {
		res[i] = ToRankFeeResponse(&fees[i])
	}
	return res
}
