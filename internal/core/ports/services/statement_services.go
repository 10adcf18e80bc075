package services

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/dto"
)

// StatementSvcFacade exposes bank statement import and retrieval operations.
type StatementSvcFacade interface {
	// ImportBankStatements validates and persists a batch of raw statement rows.
	// Invalid rows are rejected individually and duplicates are skipped; the
	// batch is reported as a partial success rather than failing outright.
	ImportBankStatements(ctx context.Context, userID string, rows []dto.BankStatementImportRow, sourceFileName string) (*dto.ImportResultResponse, error)

	// GetBankStatement retrieves a single statement line.
	GetBankStatement(ctx context.Context, userID, statementID string) (*domain.BankStatementLine, error)

	// ListBankStatements retrieves a paginated list of statement lines.
	ListBankStatements(ctx context.Context, userID string, params dto.ListBankStatementsParams) (*dto.ListBankStatementsResponse, error)

	// DeleteBankStatement removes a statement line; matched lines are refused.
	DeleteBankStatement(ctx context.Context, userID, statementID string) error
}
