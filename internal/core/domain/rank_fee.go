package domain

import "github.com/shopspring/decimal"

// RankFee maps a rank to its expected monthly subscription fee. One row per
// rank, seeded by migration.
type RankFee struct {
	Rank       Rank            `json:"rank"` // Primary Key
	MonthlyFee decimal.Decimal `json:"monthlyFee"`
	AuditFields
}
