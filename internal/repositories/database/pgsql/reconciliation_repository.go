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

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation links.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReconciliationRepository implements the facade
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// CreateLink persists a reconciliation link. The unique index on statement_id
// enforces the one-active-link-per-line policy.
func (r *PgxReconciliationRepository) CreateLink(ctx context.Context, link domain.ReconciliationLink) error {
	modelLink := mapping.ToModelReconciliationLink(link)
	query := `
		INSERT INTO reconciliation_links (
			link_id, user_id, statement_id, journal_id, match_type,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelLink.LinkID,
		modelLink.UserID,
		modelLink.StatementID,
		modelLink.JournalID,
		modelLink.MatchType,
		modelLink.CreatedAt,
		modelLink.CreatedBy,
		modelLink.LastUpdatedAt,
		modelLink.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert reconciliation link for statement "+modelLink.StatementID, err)
	}
	return nil
}

// FindLinkByStatementID retrieves the active link for a statement line, if any.
func (r *PgxReconciliationRepository) FindLinkByStatementID(ctx context.Context, userID, statementID string) (*domain.ReconciliationLink, error) {
	query := `
		SELECT link_id, user_id, statement_id, journal_id, match_type,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM reconciliation_links
		WHERE user_id = $1 AND statement_id = $2;
	`
	var m models.ReconciliationLink
	err := r.Pool.QueryRow(ctx, query, userID, statementID).Scan(
		&m.LinkID,
		&m.UserID,
		&m.StatementID,
		&m.JournalID,
		&m.MatchType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation link for statement "+statementID, err)
	}

	domainLink := mapping.ToDomainReconciliationLink(m)
	return &domainLink, nil
}

// DeleteLinkByStatementID removes the active link for a statement line.
func (r *PgxReconciliationRepository) DeleteLinkByStatementID(ctx context.Context, userID, statementID string) error {
	query := `DELETE FROM reconciliation_links WHERE user_id = $1 AND statement_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, statementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete reconciliation link for statement "+statementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("reconciliation link for statement " + statementID + " not found")
	}
	return nil
}
