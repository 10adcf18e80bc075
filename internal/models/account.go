package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	Equity    AccountType = "EQUITY"
)

// Account is the persistence model for a chart-of-accounts entry.
type Account struct {
	AccountID   string      `json:"accountID"`
	UserID      string      `json:"userID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
