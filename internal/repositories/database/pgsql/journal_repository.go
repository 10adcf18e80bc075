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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournalHeader persists the journal header. The UNIQUE (created_by,
// journal_number) constraint is the backstop for the numbering race: a
// concurrent creation that grabbed the same number surfaces as ErrDuplicate.
func (r *PgxJournalRepository) SaveJournalHeader(ctx context.Context, journal domain.Journal) error {
	modelJournal := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (
			journal_id, user_id, journal_number, journal_date, narration,
			total_debit, total_credit, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelJournal.JournalID,
		modelJournal.UserID,
		modelJournal.JournalNumber,
		modelJournal.JournalDate,
		modelJournal.Narration,
		modelJournal.TotalDebit,
		modelJournal.TotalCredit,
		modelJournal.Status,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}
	return nil
}

// SaveJournalLines persists all lines of a journal in one batch.
func (r *PgxJournalRepository) SaveJournalLines(ctx context.Context, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (
			line_id, journal_id, account_id, debit, credit, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			modelLine.LineID,
			modelLine.JournalID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	// Close checks for errors in each queued command.
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute journal line batch", err)
	}
	return nil
}

// SaveJournalApproval records the approval-workflow entry for a new journal.
func (r *PgxJournalRepository) SaveJournalApproval(ctx context.Context, approval domain.JournalApproval) error {
	modelApproval := mapping.ToModelJournalApproval(approval)
	query := `
		INSERT INTO journal_approvals (
			approval_id, journal_id, user_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelApproval.ApprovalID,
		modelApproval.JournalID,
		modelApproval.UserID,
		modelApproval.Status,
		modelApproval.CreatedAt,
		modelApproval.CreatedBy,
		modelApproval.LastUpdatedAt,
		modelApproval.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal approval for "+modelApproval.JournalID, err)
	}
	return nil
}

// DeleteJournalHeader removes a journal header. Lines and approvals cascade
// via their foreign keys; this is the compensating action for a failed
// multi-step journal creation.
func (r *PgxJournalRepository) DeleteJournalHeader(ctx context.Context, userID, journalID string) error {
	query := `DELETE FROM journals WHERE user_id = $1 AND journal_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalID + " not found for delete")
	}
	return nil
}

// FindJournalByID retrieves a journal scoped to its owning user.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, user_id, journal_number, journal_date, narration,
		       total_debit, total_credit, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE user_id = $1 AND journal_id = $2;
	`
	var m models.Journal
	err := r.Pool.QueryRow(ctx, query, userID, journalID).Scan(
		&m.JournalID,
		&m.UserID,
		&m.JournalNumber,
		&m.JournalDate,
		&m.Narration,
		&m.TotalDebit,
		&m.TotalCredit,
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
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(m)
	return &domainJournal, nil
}

// FindJournalLines retrieves all lines of a journal in insertion order.
func (r *PgxJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, debit, credit, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if scanErr := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, scanErr)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal "+journalID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// FindLatestJournalNumber returns the highest journal number for the user.
// Length-first ordering keeps JE1000 above JE999 once numbers outgrow the
// three-digit padding.
func (r *PgxJournalRepository) FindLatestJournalNumber(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT journal_number
		FROM journals
		WHERE user_id = $1
		ORDER BY length(journal_number) DESC, journal_number DESC
		LIMIT 1;
	`
	var number string
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperrors.NewAppError(500, "failed to read latest journal number for user "+userID, err)
	}
	return number, nil
}

// ListJournals retrieves a paginated list of journal headers using token pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT journal_id, user_id, journal_number, journal_date, narration,
		       total_debit, total_credit, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journals
	`
	filterClause := `WHERE user_id = $1`
	args := []interface{}{userID}

	// Ordering must be stable for cursor pagination.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (journal_date, created_at) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for user "+userID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		var m models.Journal
		if scanErr := rows.Scan(
			&m.JournalID,
			&m.UserID,
			&m.JournalNumber,
			&m.JournalDate,
			&m.Narration,
			&m.TotalDebit,
			&m.TotalCredit,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for user "+userID, scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for user "+userID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		lastJournal := modelJournals[limit-1]
		token := pagination.EncodeToken(lastJournal.JournalDate, lastJournal.CreatedAt)
		nextTokenVal = &token
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}

	return domainJournals, nextTokenVal, nil
}

// CountJournals returns the total number of journals owned by the user.
func (r *PgxJournalRepository) CountJournals(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journals WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journals for user "+userID, err)
	}
	return count, nil
}

// UpdateJournalStatus changes the status of a journal.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, userID, journalID string, status domain.JournalStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE user_id = $1 AND journal_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, journalID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalID + " not found for update")
	}
	return nil
}
