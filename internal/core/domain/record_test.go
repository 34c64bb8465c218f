package domain_test

import (
	"testing"
	"time"

	"github.com/assocfin/afm_backend/internal/apperrors"
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestLedgerRecord_Validate(t *testing.T) {
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		record    domain.LedgerRecord
		wantField string // empty means valid
	}{
		{
			name: "valid cash record",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Income,
				Date:          date,
				PaymentMethod: domain.Cash,
			},
		},
		{
			name: "valid bank deposit",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Income,
				Date:          date,
				PaymentMethod: domain.BankDeposit,
				BankAccountID: strPtr("acc-a"),
				ReceiptNumber: strPtr("R-1"),
			},
		},
		{
			name: "cash with bank account",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Income,
				Date:          date,
				PaymentMethod: domain.Cash,
				BankAccountID: strPtr("acc-a"),
			},
			wantField: "bank_account",
		},
		{
			name: "cash with receipt number",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Income,
				Date:          date,
				PaymentMethod: domain.Cash,
				ReceiptNumber: strPtr("R-1"),
			},
			wantField: "receipt_number",
		},
		{
			name: "bank transfer without account",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Expense,
				Date:          date,
				PaymentMethod: domain.BankTransfer,
				ReceiptNumber: strPtr("R-1"),
			},
			wantField: "bank_account",
		},
		{
			name: "cheque without receipt number",
			record: domain.LedgerRecord{
				Amount:        decimal.NewFromInt(100),
				Kind:          domain.Expense,
				Date:          date,
				PaymentMethod: domain.Cheque,
				BankAccountID: strPtr("acc-a"),
			},
			wantField: "receipt_number",
		},
		{
			name: "non-positive amount",
			record: domain.LedgerRecord{
				Amount:        decimal.Zero,
				Kind:          domain.Income,
				Date:          date,
				PaymentMethod: domain.Cash,
			},
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var fieldErr *apperrors.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}
