package scheduling_test

import (
	"testing"
	"time"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/utils/scheduling"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchedule_EvenSplit(t *testing.T) {
	items, err := scheduling.BuildSchedule(
		decimal.NewFromInt(6000), 6, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, items, 6)

	for i, item := range items {
		assert.Equal(t, i+1, item.SequenceNumber)
		assert.Equal(t, time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), item.DueDate)
		assert.True(t, decimal.NewFromInt(1000).Equal(item.Amount), "item %d amount %s", i, item.Amount)
	}
}

func TestBuildSchedule_AnchorsToFirstOfMonth(t *testing.T) {
	items, err := scheduling.BuildSchedule(
		decimal.NewFromInt(300), 3, time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), items[0].DueDate)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), items[1].DueDate)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), items[2].DueDate)
}

// The division happens once with no remainder redistribution; the per-unit
// amount of 100/3 is the truncated decimal and the sum drifts below the
// principal. This pins the historical behavior.
func TestBuildSchedule_RoundingDriftPreserved(t *testing.T) {
	items, err := scheduling.BuildSchedule(
		decimal.NewFromInt(100), 3, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, item := range items {
		assert.True(t, items[0].Amount.Equal(item.Amount))
		sum = sum.Add(item.Amount)
	}
	assert.False(t, sum.Equal(decimal.NewFromInt(100)))
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(decimal.NewFromFloat(0.01)))
}

func TestBuildSchedule_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		count     int
		field     string
	}{
		{"zero principal", decimal.Zero, 4, "principal"},
		{"negative principal", decimal.NewFromInt(-10), 4, "principal"},
		{"zero count", decimal.NewFromInt(100), 0, "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduling.BuildSchedule(tt.principal, tt.count, time.Now())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var fieldErr *apperrors.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		asOf time.Time
		want int
	}{
		{"jan to mar", date(2025, 1, 1), date(2025, 3, 25), 2},
		{"ignores day of month", date(2025, 1, 31), date(2025, 3, 1), 2},
		{"same month", date(2025, 6, 1), date(2025, 6, 30), 0},
		{"across years", date(2023, 1, 1), date(2025, 7, 1), 30},
		{"future subscription", date(2025, 9, 1), date(2025, 7, 1), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduling.MonthsBetween(tt.from, tt.asOf))
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
