package models

// MatchType records how a reconciliation link was made.
type MatchType string

const (
	MatchAuto   MatchType = "AUTO"
	MatchManual MatchType = "MANUAL"
)

// ReconciliationLink is the persistence model tying a statement line to a journal.
type ReconciliationLink struct {
	LinkID      string    `json:"linkID"`
	UserID      string    `json:"userID"`
	StatementID string    `json:"statementID"`
	JournalID   string    `json:"journalID"`
	MatchType   MatchType `json:"matchType"`
	AuditFields
}
