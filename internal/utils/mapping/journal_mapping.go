package mapping

import (
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:     d.JournalID,
		UserID:        d.UserID,
		JournalNumber: d.JournalNumber,
		JournalDate:   d.JournalDate,
		Narration:     d.Narration,
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		Status:        models.JournalStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:     m.JournalID,
		UserID:        m.UserID,
		JournalNumber: m.JournalNumber,
		JournalDate:   m.JournalDate,
		Narration:     m.Narration,
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		Status:        domain.JournalStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain ones
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
