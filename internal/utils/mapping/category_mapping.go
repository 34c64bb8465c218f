package mapping

import (
	"github.com/assocfin/afm_backend/internal/core/domain"
	"github.com/assocfin/afm_backend/internal/models"
)

// ToModelCategory converts a domain transaction category to its DB shape.
func ToModelCategory(d domain.TransactionCategory) models.TransactionCategory {
	return models.TransactionCategory{
		CategoryID:    d.CategoryID,
		Name:          d.Name,
		Kind:          string(d.Kind),
		SystemRelated: d.SystemRelated,
		SystemKey:     d.SystemKey,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a DB transaction category row to the domain shape.
func ToDomainCategory(m models.TransactionCategory) domain.TransactionCategory {
	return domain.TransactionCategory{
		CategoryID:    m.CategoryID,
		Name:          m.Name,
		Kind:          domain.RecordKind(m.Kind),
		SystemRelated: m.SystemRelated,
		SystemKey:     m.SystemKey,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
