package domain

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

// Journal represents a single, balanced financial event composed of multiple lines.
// JournalNumber is the human-readable sequence (JE001, JE002, ...), strictly
// increasing per user. A posted journal is immutable except for voiding.
type Journal struct {
	JournalID     string          `json:"journalID"`     // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user (tenant scope)
	JournalNumber string          `json:"journalNumber"` // Sequential per user, e.g. JE001
	JournalDate   time.Time       `json:"journalDate"`
	Narration     string          `json:"narration"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Status        JournalStatus   `json:"status"`
	Lines         []JournalLine   `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}
