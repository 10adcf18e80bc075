package domain

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

// BankStatementLine is one imported bank transaction awaiting reconciliation.
// Exactly one of Debit/Credit is non-zero. TransactionID is the natural key
// used for import dedupe; it is unique per user.
type BankStatementLine struct {
	StatementID     string          `json:"statementID"`   // Primary Key (UUID)
	UserID          string          `json:"userID"`        // Owning user (tenant scope)
	TransactionID   string          `json:"transactionID"` // Natural key, supplied or synthesized
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"` // Running balance as reported by the bank
	SourceFile      string          `json:"sourceFile"`
	Status          MatchStatus     `json:"status"`
	AuditFields
}

// Amount returns the single-sided value of the line, whichever side is set.
func (s BankStatementLine) Amount() decimal.Decimal {
	if s.Debit.IsZero() {
		return s.Credit
	}
	return s.Debit
}
