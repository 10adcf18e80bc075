package repositories

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// Account maintenance belongs to the ledger-setup flow; this core only reads.
type AccountReader interface {
	// FindAccountByID retrieves an account scoped to its owning user.
	FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
	FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all active accounts for a user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountRepositoryFacade is the account repository surface used by services.
type AccountRepositoryFacade interface {
	AccountReader
}
