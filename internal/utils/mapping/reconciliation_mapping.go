package mapping

import (
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/models"
)

// ToModelReconciliationLink converts a domain link to a model link
func ToModelReconciliationLink(d domain.ReconciliationLink) models.ReconciliationLink {
	return models.ReconciliationLink{
		LinkID:      d.LinkID,
		UserID:      d.UserID,
		StatementID: d.StatementID,
		JournalID:   d.JournalID,
		MatchType:   models.MatchType(d.MatchType),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliationLink converts a model link to a domain link
func ToDomainReconciliationLink(m models.ReconciliationLink) domain.ReconciliationLink {
	return domain.ReconciliationLink{
		LinkID:      m.LinkID,
		UserID:      m.UserID,
		StatementID: m.StatementID,
		JournalID:   m.JournalID,
		MatchType:   domain.MatchType(m.MatchType),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
