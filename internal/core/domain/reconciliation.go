package domain

// MatchType records whether a reconciliation link was made by the auto-matcher
// or confirmed by the user.
type MatchType string

const (
	MatchAuto   MatchType = "AUTO"
	MatchManual MatchType = "MANUAL"
)

// ReconciliationLink ties a bank statement line to the journal that explains it.
// One active link per statement line.
type ReconciliationLink struct {
	LinkID      string    `json:"linkID"`      // Primary Key (UUID)
	UserID      string    `json:"userID"`      // Owning user (tenant scope)
	StatementID string    `json:"statementID"` // FK -> BankStatementLine, unique
	JournalID   string    `json:"journalID"`   // FK -> Journal
	MatchType   MatchType `json:"matchType"`
	AuditFields
}

// ReconciliationReport is the derived, non-persisted reconciliation summary.
// Percentage = round((matched + partially matched) / total statements * 100),
// zero when there are no statements.
type ReconciliationReport struct {
	TotalBankStatements      int `json:"totalBankStatements"`
	TotalJournals            int `json:"totalJournals"`
	MatchedCount             int `json:"matchedCount"`
	PartiallyMatchedCount    int `json:"partiallyMatchedCount"`
	UnmatchedCount           int `json:"unmatchedCount"`
	ReconciliationPercentage int `json:"reconciliationPercentage"`
}
