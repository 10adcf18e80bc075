package domain

import "github.com/shopspring/decimal"

// JournalLine is one leg of a journal, affecting one account.
// Exactly one of Debit/Credit is non-zero; a journal needs at least two lines
// whose debit sum equals the credit sum.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	JournalID   string          `json:"journalID"` // FK -> Journal.journalID
	AccountID   string          `json:"accountID"` // FK -> Account.accountID
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}
