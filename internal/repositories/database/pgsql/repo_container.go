package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	statementRepo := newPgxStatementRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		StatementRepo:      statementRepo,
		JournalRepo:        journalRepo,
		ReconciliationRepo: reconciliationRepo,
		AccountRepo:        accountRepo,
		ReportingRepo:      reportingRepo,
	}
}
