package services

import (
	"context"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// ReportingService exposes financial report generation.
type ReportingService interface {
	// TrialBalance generates per-account debit/credit totals as of a date.
	TrialBalance(ctx context.Context, userID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ReceiptsAndPayments summarizes cash movement over a period.
	ReceiptsAndPayments(ctx context.Context, userID string, from, to time.Time) (*domain.ReceiptsAndPaymentsReport, error)
}
