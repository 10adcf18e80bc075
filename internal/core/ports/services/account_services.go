package services

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// AccountSvcFacade exposes read-only chart-of-accounts lookups.
type AccountSvcFacade interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by account ID.
	GetAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all active accounts for a user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}
