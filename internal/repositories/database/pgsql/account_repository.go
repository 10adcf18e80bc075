package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	"github.com/ledgerly/bankrecon_app/internal/models"
	"github.com/ledgerly/bankrecon_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, code, name, account_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAccountByID retrieves an account scoped to its owning user.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND account_id = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAccount := mapping.ToDomainAccount(*m)
	return &domainAccount, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, userID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

// ListAccounts retrieves all active accounts for a user ordered by chart code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND is_active ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for user "+userID, err)
	}
	defer rows.Close()

	modelAccounts := []models.Account{}
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row for user "+userID, scanErr)
		}
		modelAccounts = append(modelAccounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows for user "+userID, err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}
