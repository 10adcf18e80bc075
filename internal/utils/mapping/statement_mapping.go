package mapping

import (
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/models"
)

// ToModelBankStatementLine converts a domain statement line to a model statement line
func ToModelBankStatementLine(d domain.BankStatementLine) models.BankStatementLine {
	return models.BankStatementLine{
		StatementID:     d.StatementID,
		UserID:          d.UserID,
		TransactionID:   d.TransactionID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		Balance:         d.Balance,
		SourceFile:      d.SourceFile,
		Status:          models.MatchStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankStatementLine converts a model statement line to a domain statement line
func ToDomainBankStatementLine(m models.BankStatementLine) domain.BankStatementLine {
	return domain.BankStatementLine{
		StatementID:     m.StatementID,
		UserID:          m.UserID,
		TransactionID:   m.TransactionID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Balance:         m.Balance,
		SourceFile:      m.SourceFile,
		Status:          domain.MatchStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankStatementLineSlice converts a slice of model statement lines to domain ones
func ToDomainBankStatementLineSlice(ms []models.BankStatementLine) []domain.BankStatementLine {
	ds := make([]domain.BankStatementLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankStatementLine(m)
	}
	return ds
}
