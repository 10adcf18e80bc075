package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	Equity    AccountType = "EQUITY"
)

// Account represents a chart-of-accounts entry. Account maintenance is owned
// by the ledger-setup flow; the reconciliation core only reads accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	UserID      string      `json:"userID"`      // Owning user (tenant scope)
	Code        string      `json:"code"`        // Chart code, e.g. "1001"
	Name        string      `json:"name"`        // User-visible name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	IsActive    bool        `json:"isActive"`
	AuditFields
}
