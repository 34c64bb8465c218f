package mapping

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/models"
)

// ToModelLedgerRecord converts a domain ledger record to its DB shape.
func ToModelLedgerRecord(d domain.LedgerRecord) models.LedgerRecord {
	return models.LedgerRecord{
		RecordID:      d.RecordID,
		Amount:        d.Amount,
		Kind:          string(d.Kind),
		CategoryID:    d.CategoryID,
		Date:          d.Date,
		PaymentMethod: string(d.PaymentMethod),
		BankAccountID: d.BankAccountID,
		ReceiptNumber: d.ReceiptNumber,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerRecord converts a DB ledger record row to the domain shape.
func ToDomainLedgerRecord(m models.LedgerRecord) domain.LedgerRecord {
	return domain.LedgerRecord{
		RecordID:      m.RecordID,
		Amount:        m.Amount,
		Kind:          domain.RecordKind(m.Kind),
		CategoryID:    m.CategoryID,
		Date:          m.Date,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		BankAccountID: m.BankAccountID,
		ReceiptNumber: m.ReceiptNumber,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
