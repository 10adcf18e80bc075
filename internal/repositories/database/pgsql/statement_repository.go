package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	"github.com/ledgerly/bankrecon_app/internal/models"
	"github.com/ledgerly/bankrecon_app/internal/utils/mapping"
	"github.com/ledgerly/bankrecon_app/internal/utils/pagination"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for bank statement data.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

// SaveStatement persists a single statement line.
// The (user_id, transaction_id) uniqueness constraint turns repeated imports
// of the same source data into ErrDuplicate instead of duplicate rows.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, line domain.BankStatementLine) error {
	modelLine := mapping.ToModelBankStatementLine(line)
	query := `
		INSERT INTO bank_statement_lines (
			statement_id, user_id, transaction_id, transaction_date, description,
			debit, credit, balance, source_file, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelLine.StatementID,
		modelLine.UserID,
		modelLine.TransactionID,
		modelLine.TransactionDate,
		modelLine.Description,
		modelLine.Debit,
		modelLine.Credit,
		modelLine.Balance,
		modelLine.SourceFile,
		modelLine.Status,
		modelLine.CreatedAt,
		modelLine.CreatedBy,
		modelLine.LastUpdatedAt,
		modelLine.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert bank statement "+modelLine.StatementID, err)
	}
	return nil
}

// FindStatementByID retrieves a statement line scoped to its owning user.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, userID, statementID string) (*domain.BankStatementLine, error) {
	query := `
		SELECT statement_id, user_id, transaction_id, transaction_date, description,
		       debit, credit, balance, source_file, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_statement_lines
		WHERE user_id = $1 AND statement_id = $2;
	`
	var m models.BankStatementLine
	err := r.Pool.QueryRow(ctx, query, userID, statementID).Scan(
		&m.StatementID,
		&m.UserID,
		&m.TransactionID,
		&m.TransactionDate,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.Balance,
		&m.SourceFile,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank statement by ID "+statementID, err)
	}

	domainLine := mapping.ToDomainBankStatementLine(m)
	return &domainLine, nil
}

// ListStatements retrieves a paginated list of statement lines using token pagination.
func (r *PgxStatementRepository) ListStatements(ctx context.Context, userID string, status *domain.MatchStatus, limit int, nextToken *string) ([]domain.BankStatementLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT statement_id, user_id, transaction_id, transaction_date, description,
		       debit, credit, balance, source_file, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_statement_lines
	`
	filterClause := `WHERE user_id = $1`
	args := []interface{}{userID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable for cursor pagination.
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bank statements for user "+userID, err)
	}
	defer rows.Close()

	modelLines := make([]models.BankStatementLine, 0, fetchLimit)
	for rows.Next() {
		var m models.BankStatementLine
		if scanErr := rows.Scan(
			&m.StatementID,
			&m.UserID,
			&m.TransactionID,
			&m.TransactionDate,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.Balance,
			&m.SourceFile,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan bank statement row for user "+userID, scanErr)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating bank statement rows for user "+userID, err)
	}

	var nextTokenVal *string
	results := modelLines
	if len(modelLines) > limit {
		lastLine := modelLines[limit-1]
		token := pagination.EncodeToken(lastLine.TransactionDate, lastLine.CreatedAt)
		nextTokenVal = &token
		results = modelLines[:limit]
	}

	return mapping.ToDomainBankStatementLineSlice(results), nextTokenVal, nil
}

// CountStatementsByStatus returns the number of statement lines per match status.
func (r *PgxStatementRepository) CountStatementsByStatus(ctx context.Context, userID string) (map[domain.MatchStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM bank_statement_lines
		WHERE user_id = $1
		GROUP BY status;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count bank statements for user "+userID, err)
	}
	defer rows.Close()

	counts := make(map[domain.MatchStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement count row for user "+userID, err)
		}
		counts[domain.MatchStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement count rows for user "+userID, err)
	}

	return counts, nil
}

// UpdateStatementStatus sets the match status of a statement line.
func (r *PgxStatementRepository) UpdateStatementStatus(ctx context.Context, userID, statementID string, status domain.MatchStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE bank_statement_lines
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE user_id = $1 AND statement_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, statementID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for bank statement "+statementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank statement " + statementID + " not found for update")
	}
	return nil
}

// DeleteStatement removes a statement line owned by the user.
func (r *PgxStatementRepository) DeleteStatement(ctx context.Context, userID, statementID string) error {
	query := `DELETE FROM bank_statement_lines WHERE user_id = $1 AND statement_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, statementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank statement "+statementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank statement " + statementID + " not found for delete")
	}
	return nil
}

// autoMatchQuery links unmatched statement lines to posted journals on exact
// amount within the date window and flips their status, all set-based. The
// NOT EXISTS guards keep the routine idempotent: already-linked lines and
// journals are never considered again.
const autoMatchQuery = `
	WITH candidates AS (
		SELECT DISTINCT ON (s.statement_id) s.statement_id, j.journal_id
		FROM bank_statement_lines s
		JOIN journals j
		  ON j.user_id = s.user_id
		 AND j.status = 'POSTED'
		 AND j.total_debit = CASE WHEN s.debit > 0 THEN s.debit ELSE s.credit END
		 AND j.journal_date BETWEEN s.transaction_date - make_interval(days => $2)
		                        AND s.transaction_date + make_interval(days => $2)
		WHERE s.user_id = $1
		  AND s.status = 'UNMATCHED'
		  AND NOT EXISTS (SELECT 1 FROM reconciliation_links l WHERE l.statement_id = s.statement_id)
		  AND NOT EXISTS (SELECT 1 FROM reconciliation_links l2 WHERE l2.journal_id = j.journal_id)
		ORDER BY s.statement_id, j.journal_date, j.journal_number
	), inserted AS (
		INSERT INTO reconciliation_links (
			link_id, user_id, statement_id, journal_id, match_type,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT gen_random_uuid(), $1, statement_id, journal_id, 'AUTO', $3, $4, $3, $4
		FROM candidates
		RETURNING statement_id
	)
	UPDATE bank_statement_lines s
	SET status = $5,
	    last_updated_at = $3,
	    last_updated_by = $4
	FROM inserted i
	WHERE s.statement_id = i.statement_id;
`

// autoMatchPartialQuery is the second pass: exact amount but no journal inside
// the date window. Those lines are flagged for review rather than matched.
const autoMatchPartialQuery = `
	WITH candidates AS (
		SELECT DISTINCT ON (s.statement_id) s.statement_id, j.journal_id
		FROM bank_statement_lines s
		JOIN journals j
		  ON j.user_id = s.user_id
		 AND j.status = 'POSTED'
		 AND j.total_debit = CASE WHEN s.debit > 0 THEN s.debit ELSE s.credit END
		WHERE s.user_id = $1
		  AND s.status = 'UNMATCHED'
		  AND NOT EXISTS (SELECT 1 FROM reconciliation_links l WHERE l.statement_id = s.statement_id)
		  AND NOT EXISTS (SELECT 1 FROM reconciliation_links l2 WHERE l2.journal_id = j.journal_id)
		ORDER BY s.statement_id, j.journal_date, j.journal_number
	), inserted AS (
		INSERT INTO reconciliation_links (
			link_id, user_id, statement_id, journal_id, match_type,
			created_at, created_by, last_updated_at, last_updated_by
		)
		SELECT gen_random_uuid(), $1, statement_id, journal_id, 'AUTO', $2, $3, $2, $3
		FROM candidates
		RETURNING statement_id
	)
	UPDATE bank_statement_lines s
	SET status = $4,
	    last_updated_at = $2,
	    last_updated_by = $3
	FROM inserted i
	WHERE s.statement_id = i.statement_id;
`

// AutoMatchStatements runs the set-based matching routine in one transaction.
// First pass: exact amount within the date window -> MATCHED. Second pass:
// exact amount with no date-window candidate -> PARTIALLY_MATCHED for review.
func (r *PgxStatementRepository) AutoMatchStatements(ctx context.Context, userID string, dateWindowDays int, updatedByUserID string, updatedAt time.Time) (int, int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	matchedTag, err := tx.Exec(ctx, autoMatchQuery,
		userID, dateWindowDays, updatedAt, updatedByUserID, string(models.Matched))
	if err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to auto-match bank statements for user "+userID, err)
	}

	partialTag, err := tx.Exec(ctx, autoMatchPartialQuery,
		userID, updatedAt, updatedByUserID, string(models.PartiallyMatched))
	if err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to partial-match bank statements for user "+userID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}

	return int(matchedTag.RowsAffected()), int(partialTag.RowsAffected()), nil
}
