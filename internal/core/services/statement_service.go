package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrStatementMatched = errors.New("bank statement is matched and cannot be deleted")
)

// statementDateFormats are the date layouts accepted on import, tried in order.
// Bank exports in the wild carry ISO dates and day-first variants.
var statementDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02-Jan-2006",
}

// statementService provides bank statement import and retrieval operations.
type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepositoryFacade
}

// NewStatementService creates a new StatementService.
func NewStatementService(statementRepo portsrepo.StatementRepositoryFacade) portssvc.StatementSvcFacade {
	return &statementService{
		statementRepo: statementRepo,
	}
}

// Ensure statementService implements the portssvc.StatementSvcFacade interface
var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// ImportBankStatements validates each row independently and persists the valid,
// non-duplicate ones with status UNMATCHED, in input order. The batch always
// prefers partial success: invalid rows and duplicates never abort the rest.
func (s *statementService) ImportBankStatements(ctx context.Context, userID string, rows []dto.BankStatementImportRow, sourceFileName string) (*dto.ImportResultResponse, error) {
	result := &dto.ImportResultResponse{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no statement rows to import")
		return result, nil
	}

	now := time.Now().UTC()
	// Tracks how often each synthesized natural key base has occurred within
	// this batch, so same-day same-amount rows stay distinct yet deterministic.
	occurrences := make(map[string]int)

	for i, row := range rows {
		rowNum := i + 1

		line, err := s.buildStatementLine(userID, row, sourceFileName, now, occurrences)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if err := s.statementRepo.SaveStatement(ctx, *line); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				result.SkippedCount++
				continue
			}
			s.LogError(ctx, err, "Failed to save bank statement row", slog.Int("row", rowNum))
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to save bank statement: %v", rowNum, err))
			continue
		}
		result.ImportedCount++
	}

	if result.SkippedCount > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d statements already exist and were skipped", result.SkippedCount))
	}
	if result.ImportedCount == 0 && result.SkippedCount == 0 {
		result.Errors = append(result.Errors, "no valid statement rows to import")
		return result, nil
	}

	result.Success = true
	s.LogInfo(ctx, "Bank statements imported",
		slog.Int("imported", result.ImportedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("errors", result.ErrorCount),
		slog.String("source_file", sourceFileName))
	return result, nil
}

// buildStatementLine validates a raw import row and converts it into a domain line.
func (s *statementService) buildStatementLine(userID string, row dto.BankStatementImportRow, sourceFileName string, now time.Time, occurrences map[string]int) (*domain.BankStatementLine, error) {
	if strings.TrimSpace(row.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(row.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	txnDate, err := parseStatementDate(row.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	debit, err := parseAmount(row.Debit)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid debit amount %q", apperrors.ErrValidation, row.Debit)
	}
	credit, err := parseAmount(row.Credit)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credit amount %q", apperrors.ErrValidation, row.Credit)
	}
	balance, err := parseAmount(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid balance amount %q", apperrors.ErrValidation, row.Balance)
	}

	if debit.IsNegative() || credit.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	}
	if !debit.IsZero() && !credit.IsZero() {
		return nil, fmt.Errorf("%w: debit and credit are mutually exclusive", apperrors.ErrValidation)
	}

	transactionID := strings.TrimSpace(row.TransactionID)
	if transactionID == "" {
		transactionID = synthesizeTransactionID(txnDate, debit, credit, occurrences)
	}

	return &domain.BankStatementLine{
		StatementID:     uuid.NewString(),
		UserID:          userID,
		TransactionID:   transactionID,
		TransactionDate: txnDate,
		Description:     strings.TrimSpace(row.Description),
		Debit:           debit,
		Credit:          credit,
		Balance:         balance,
		SourceFile:      sourceFileName,
		Status:          domain.Unmatched,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// GetBankStatement retrieves a single statement line scoped to the user.
func (s *statementService) GetBankStatement(ctx context.Context, userID, statementID string) (*domain.BankStatementLine, error) {
	line, err := s.statementRepo.FindStatementByID(ctx, userID, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch bank statement", slog.String("statement_id", statementID))
		}
		return nil, fmt.Errorf("failed to fetch bank statement %s: %w", statementID, err)
	}
	return line, nil
}

// ListBankStatements retrieves a paginated list of statement lines.
func (s *statementService) ListBankStatements(ctx context.Context, userID string, params dto.ListBankStatementsParams) (*dto.ListBankStatementsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	lines, nextToken, err := s.statementRepo.ListStatements(ctx, userID, params.Status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank statements")
		return nil, fmt.Errorf("failed to fetch bank statements: %w", err)
	}

	resp := &dto.ListBankStatementsResponse{
		Statements: dto.ToBankStatementResponses(lines),
		NextToken:  nextToken,
	}

	s.LogDebug(ctx, "Bank statements listed", slog.Int("count", len(lines)))
	return resp, nil
}

// DeleteBankStatement removes an unmatched statement line. Matched lines must
// be unmatched first so the reconciliation trail stays consistent.
func (s *statementService) DeleteBankStatement(ctx context.Context, userID, statementID string) error {
	line, err := s.statementRepo.FindStatementByID(ctx, userID, statementID)
	if err != nil {
		return fmt.Errorf("failed to fetch bank statement %s: %w", statementID, err)
	}

	if line.Status == domain.Matched {
		return fmt.Errorf("%w: unmatch statement %s first", ErrStatementMatched, statementID)
	}

	if err := s.statementRepo.DeleteStatement(ctx, userID, statementID); err != nil {
		s.LogError(ctx, err, "Failed to delete bank statement", slog.String("statement_id", statementID))
		return fmt.Errorf("failed to delete bank statement %s: %w", statementID, err)
	}

	s.LogInfo(ctx, "Bank statement deleted", slog.String("statement_id", statementID))
	return nil
}

// parseStatementDate tries each accepted layout in order.
func parseStatementDate(value string) (time.Time, error) {
	for _, layout := range statementDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseAmount parses a bank-formatted amount; empty means zero, thousands
// separators are tolerated.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}

// synthesizeTransactionID derives the natural key date-debit-credit, suffixed
// with the occurrence index when the same combination repeats in a batch, so
// re-importing the same source data stays idempotent.
func synthesizeTransactionID(date time.Time, debit, credit decimal.Decimal, occurrences map[string]int) string {
	base := fmt.Sprintf("%s-%s-%s", date.Format("20060102"), debit.String(), credit.String())
	n := occurrences[base]
	occurrences[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
