package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// Journal is the persistence model for a balanced financial event.
type Journal struct {
	JournalID     string          `json:"journalID"`
	UserID        string          `json:"userID"`
	JournalNumber string          `json:"journalNumber"`
	JournalDate   time.Time       `json:"journalDate"`
	Narration     string          `json:"narration"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Status        JournalStatus   `json:"status"`
	AuditFields
}

// JournalLine is the persistence model for one leg of a journal.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}
