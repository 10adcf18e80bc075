package mapping

import (
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/models"
)

// ToModelJournalApproval converts a domain approval record to a model one
func ToModelJournalApproval(d domain.JournalApproval) models.JournalApproval {
	return models.JournalApproval{
		ApprovalID:  d.ApprovalID,
		JournalID:   d.JournalID,
		UserID:      d.UserID,
		Status:      models.ApprovalStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
