package mapping

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/models"
)

// ToModelInstallment converts a domain installment to its DB shape.
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:  d.InstallmentID,
		MemberID:       d.MemberID,
		SequenceNumber: d.SequenceNumber,
		Amount:         d.Amount,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		PaidAt:         d.PaidAt,
		Notes:          d.Notes,
		RecordID:       d.RecordID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a DB installment row to the domain shape.
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:  m.InstallmentID,
		MemberID:       m.MemberID,
		SequenceNumber: m.SequenceNumber,
		Amount:         m.Amount,
		DueDate:        m.DueDate,
		Status:         domain.ObligationStatus(m.Status),
		PaidAt:         m.PaidAt,
		Notes:          m.Notes,
		RecordID:       m.RecordID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRepayment converts a domain repayment to its DB shape.
func ToModelRepayment(d domain.Repayment) models.Repayment {
	return models.Repayment{
		RepaymentID:    d.RepaymentID,
		LoanID:         d.LoanID,
		SequenceNumber: d.SequenceNumber,
		Amount:         d.Amount,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		PaidAt:         d.PaidAt,
		Notes:          d.Notes,
		RecordID:       d.RecordID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRepayment converts a DB repayment row to the domain shape.
func ToDomainRepayment(m models.Repayment) domain.Repayment {
	return domain.Repayment{
		RepaymentID:    m.RepaymentID,
		LoanID:         m.LoanID,
		SequenceNumber: m.SequenceNumber,
		Amount:         m.Amount,
		DueDate:        m.DueDate,
		Status:         domain.ObligationStatus(m.Status),
		PaidAt:         m.PaidAt,
		Notes:          m.Notes,
		RecordID:       m.RecordID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSubscription converts a domain subscription to its DB shape.
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID: d.SubscriptionID,
		MemberID:       d.MemberID,
		Month:          d.Month,
		Amount:         d.Amount,
		Status:         string(d.Status),
		PaidAt:         d.PaidAt,
		Notes:          d.Notes,
		RecordID:       d.RecordID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a DB subscription row to the domain shape.
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID: m.SubscriptionID,
		MemberID:       m.MemberID,
		Month:          m.Month,
		Amount:         m.Amount,
		Status:         domain.ObligationStatus(m.Status),
		PaidAt:         m.PaidAt,
		Notes:          m.Notes,
		RecordID:       m.RecordID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
