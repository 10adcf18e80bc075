package repositories

import (
	"context"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// ReportingRepository defines the aggregation queries behind financial reports.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit totals across posted
	// journals up to the given date.
	GetTrialBalanceData(ctx context.Context, userID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetReceiptsAndPaymentsData returns per-account net receipts and payments
	// over the period.
	GetReceiptsAndPaymentsData(ctx context.Context, userID string, from, to time.Time) (receipts []domain.AccountAmount, payments []domain.AccountAmount, err error)
}
