// Package scheduling builds even-split obligation schedules and does the
// calendar-month arithmetic the dues calculator depends on.
package scheduling

import (
	"time"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ScheduledItem is one generated obligation: its 1-based sequence number, the
// first-of-month due date and the even per-unit amount.
type ScheduledItem struct {
	SequenceNumber int
	DueDate        time.Time
	Amount         decimal.Decimal
}

// BuildSchedule splits principal into count periodic obligations. The start
// date is normalized to the first day of its month, item i is due i months
// after the anchor, and every item carries principal/count.
//
// The division is performed once and is not remainder-redistributed, so the
// sum of the items can drift from the principal by sub-cent amounts. That is
// the historical billing behavior and is kept deliberately.
func BuildSchedule(principal decimal.Decimal, count int, startDate time.Time) ([]ScheduledItem, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewFieldError("principal", "schedule principal must be positive")
	}
	if count < 1 {
		return nil, apperrors.NewFieldError("count", "schedule must have at least one obligation")
	}

	perUnit := principal.Div(decimal.NewFromInt(int64(count)))
	anchor := MonthOf(startDate)

	items := make([]ScheduledItem, count)
	for i := 0; i < count; i++ {
		items[i] = ScheduledItem{
			SequenceNumber: i + 1,
			DueDate:        anchor.AddDate(0, i, 0),
			Amount:         perUnit,
		}
	}
	return items, nil
}

// MonthOf returns the first day of t's month, at midnight UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts whole calendar months from one date to another,
// ignoring the day of month: January to March is 2 regardless of the days.
func MonthsBetween(from, asOf time.Time) int {
	return (asOf.Year()-from.Year())*12 + int(asOf.Month()) - int(from.Month())
}
