package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for report aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData returns per-account debit/credit totals across posted
// journals up to the given date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, userID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.user_id = $1
		  AND j.status = 'POSTED'
		  AND j.journal_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, userID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data for user "+userID, err)
	}
	defer rows.Close()

	trialBalanceRows := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if scanErr := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", scanErr)
		}
		row.AccountType = domain.AccountType(accountType)
		trialBalanceRows = append(trialBalanceRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return trialBalanceRows, nil
}

// GetReceiptsAndPaymentsData returns per-account net movement over the period,
// split into receipts (net credit inflow) and payments (net debit outflow).
func (r *reportingRepository) GetReceiptsAndPaymentsData(ctx context.Context, userID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.name,
		       COALESCE(SUM(l.credit), 0) - COALESCE(SUM(l.debit), 0) AS net_amount
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.user_id = $1
		  AND j.status = 'POSTED'
		  AND j.journal_date >= $2
		  AND j.journal_date <= $3
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query receipts and payments data for user "+userID, err)
	}
	defer rows.Close()

	receipts := []domain.AccountAmount{}
	payments := []domain.AccountAmount{}
	for rows.Next() {
		var amount domain.AccountAmount
		if scanErr := rows.Scan(&amount.AccountID, &amount.Name, &amount.NetAmount); scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan receipts and payments row", scanErr)
		}
		if amount.NetAmount.IsZero() {
			continue
		}
		if amount.NetAmount.GreaterThan(decimal.Zero) {
			receipts = append(receipts, amount)
		} else {
			amount.NetAmount = amount.NetAmount.Neg()
			payments = append(payments, amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating receipts and payments rows", err)
	}

	return receipts, payments, nil
}
