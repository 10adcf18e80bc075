package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
)

// accountService provides read-only chart-of-accounts lookups.
// Account maintenance is owned by the ledger-setup flow.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a single account scoped to the user.
func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch account", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by account ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts", slog.Int("count", len(accountIDs)))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves all active accounts for a user.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}
