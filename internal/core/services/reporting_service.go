package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, userID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, userID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// ReceiptsAndPayments generates a receipts and payments summary for a period
func (s *reportingService) ReceiptsAndPayments(ctx context.Context, userID string, from, to time.Time) (*domain.ReceiptsAndPaymentsReport, error) {
	receipts, payments, err := s.reportingRepo.GetReceiptsAndPaymentsData(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve receipts and payments data",
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve receipts and payments data: %w", err)
	}

	totalReceipts := decimal.Zero
	for _, r := range receipts {
		totalReceipts = totalReceipts.Add(r.NetAmount)
	}

	totalPayments := decimal.Zero
	for _, p := range payments {
		totalPayments = totalPayments.Add(p.NetAmount)
	}

	report := &domain.ReceiptsAndPaymentsReport{
		Receipts:      receipts,
		Payments:      payments,
		TotalReceipts: totalReceipts,
		TotalPayments: totalPayments,
		NetMovement:   totalReceipts.Sub(totalPayments),
	}

	s.LogInfo(ctx, "Receipts and payments report generated",
		slog.Int("receipt_accounts", len(receipts)),
		slog.Int("payment_accounts", len(payments)))
	return report, nil
}
