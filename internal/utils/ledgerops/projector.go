// Package ledgerops holds the pure balance projection math. The functions
// here compute per-account balance deltas from explicit (old, new) record
// states; repositories apply the deltas inside the same database transaction
// as the ledger write itself.
package ledgerops

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Normalize converts a positive stored amount into a signed delta:
// +amount for INCOME, -amount for EXPENSE.
func Normalize(amount decimal.Decimal, kind domain.RecordKind) decimal.Decimal {
	if kind == domain.Expense {
		return amount.Neg()
	}
	return amount
}

// contributes reports whether a record participates in any bank balance.
// Cash records and records without a bank account never do.
func contributes(r domain.LedgerRecord) bool {
	return r.BankAccountID != nil && !r.PaymentMethod.IsCash()
}

// AppendDelta returns the balance changes caused by appending a record.
func AppendDelta(r domain.LedgerRecord) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	if contributes(r) {
		deltas[*r.BankAccountID] = Normalize(r.Amount, r.Kind)
	}
	return deltas
}

// RetractDelta returns the balance changes caused by deleting a record.
// The reversal applies whenever a bank account is attached.
func RetractDelta(r domain.LedgerRecord) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	if r.BankAccountID != nil {
		deltas[*r.BankAccountID] = Normalize(r.Amount, r.Kind).Neg()
	}
	return deltas
}

// AmendDeltas returns the balance changes caused by amending a record in
// place. With an unchanged bank account the delta is the difference between
// the new and old signed amounts (zero for cash records). When the bank
// account changes, the new account gains normalize(newAmount) unless the new
// state is cash, and the old account is always reversed using the NEW amount,
// not the old one.
func AmendDeltas(oldRec, newRec domain.LedgerRecord) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)

	if sameAccount(oldRec.BankAccountID, newRec.BankAccountID) {
		if !contributes(newRec) {
			return deltas
		}
		diff := Normalize(newRec.Amount, newRec.Kind).Sub(Normalize(oldRec.Amount, oldRec.Kind))
		if !diff.IsZero() {
			deltas[*newRec.BankAccountID] = diff
		}
		return deltas
	}

	delta := Normalize(newRec.Amount, newRec.Kind)
	if contributes(newRec) {
		addDelta(deltas, *newRec.BankAccountID, delta)
	}
	if oldRec.BankAccountID != nil {
		addDelta(deltas, *oldRec.BankAccountID, delta.Neg())
	}
	return deltas
}

func sameAccount(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func addDelta(deltas map[string]decimal.Decimal, accountID string, delta decimal.Decimal) {
	if cur, ok := deltas[accountID]; ok {
		deltas[accountID] = cur.Add(delta)
		return
	}
	deltas[accountID] = delta
}
