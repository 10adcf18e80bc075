package services

import (
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Statement = NewStatementService(repos.StatementRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.StatementRepo, container.Account)

	reconOptions := []ReconciliationServiceOption{
		WithMatchDateWindowDays(cfg.MatchDateWindowDays),
	}
	if publisher != nil {
		reconOptions = append(reconOptions, WithEventPublisher(publisher))
	}
	container.Reconciliation = NewReconciliationService(repos.StatementRepo, repos.JournalRepo, repos.ReconciliationRepo, reconOptions...)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
