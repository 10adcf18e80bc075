package dto

import (
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankStatementImportRow is one raw statement row handed to the importer.
// Fields are kept as strings so per-row validation (empty date, non-numeric
// amounts) happens in the import service, not at parse time.
type BankStatementImportRow struct {
	Date          string `json:"date"`
	Description   string `json:"description"`
	Debit         string `json:"debit"`
	Credit        string `json:"credit"`
	Balance       string `json:"balance"`
	TransactionID string `json:"transactionId,omitempty"`
}

// ImportBankStatementsRequest is the batch import payload.
type ImportBankStatementsRequest struct {
	Rows           []BankStatementImportRow `json:"rows" binding:"required"`
	SourceFileName string                   `json:"sourceFileName"`
}

// ImportResultResponse summarizes a batch import.
type ImportResultResponse struct {
	Success       bool     `json:"success"`
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	Errors        []string `json:"errors,omitempty"`
}

// BankStatementResponse defines the data returned for a statement line.
type BankStatementResponse struct {
	StatementID     string          `json:"statementID"`
	TransactionID   string          `json:"transactionID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	SourceFile      string          `json:"sourceFile,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListBankStatementsParams holds filters for listing statement lines.
type ListBankStatementsParams struct {
	Status    *domain.MatchStatus `form:"status"`
	Limit     int                 `form:"limit"`
	NextToken *string             `form:"nextToken"`
}

// ListBankStatementsResponse is a paginated page of statement lines.
type ListBankStatementsResponse struct {
	Statements []BankStatementResponse `json:"statements"`
	NextToken  *string                 `json:"nextToken,omitempty"`
}

// ToBankStatementResponse converts a domain statement line to its response DTO.
func ToBankStatementResponse(s *domain.BankStatementLine) BankStatementResponse {
	return BankStatementResponse{
		StatementID:     s.StatementID,
		TransactionID:   s.TransactionID,
		TransactionDate: s.TransactionDate,
		Description:     s.Description,
		Debit:           s.Debit,
		Credit:          s.Credit,
		Balance:         s.Balance,
		SourceFile:      s.SourceFile,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
	}
}

// ToBankStatementResponses converts a slice of domain statement lines to DTOs.
func ToBankStatementResponses(lines []domain.BankStatementLine) []BankStatementResponse {
	responses := make([]BankStatementResponse, len(lines))
	for i := range lines {
		responses[i] = ToBankStatementResponse(&lines[i])
	}
	return responses
}
