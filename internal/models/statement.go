package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus indicates how far a bank statement line has been reconciled.
type MatchStatus string

const (
	Unmatched        MatchStatus = "UNMATCHED"
	PartiallyMatched MatchStatus = "PARTIALLY_MATCHED"
	Matched          MatchStatus = "MATCHED"
)

// BankStatementLine is the persistence model for an imported bank transaction.
type BankStatementLine struct {
	StatementID     string          `json:"statementID"`
	UserID          string          `json:"userID"`
	TransactionID   string          `json:"transactionID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	SourceFile      string          `json:"sourceFile"`
	Status          MatchStatus     `json:"status"`
	AuditFields
}
