package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// ReceiptsAndPaymentsReport summarizes cash movement over a period: receipts
// are credits into the business, payments are debits out.
type ReceiptsAndPaymentsReport struct {
	Receipts      []AccountAmount `json:"receipts"`
	Payments      []AccountAmount `json:"payments"`
	TotalReceipts decimal.Decimal `json:"totalReceipts"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	NetMovement   decimal.Decimal `json:"netMovement"`
}
