package mapping

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/models"
)

// ToModelLoan converts a domain loan to its DB shape.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:      d.LoanID,
		MemberID:    d.MemberID,
		Amount:      d.Amount,
		IssuedDate:  d.IssuedDate,
		RecordID:    d.RecordID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a DB loan row to the domain shape.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:      m.LoanID,
		MemberID:    m.MemberID,
		Amount:      m.Amount,
		IssuedDate:  m.IssuedDate,
		RecordID:    m.RecordID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
