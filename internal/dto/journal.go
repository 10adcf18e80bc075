package dto

import (
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalFromStatementRequest is the journal-poster payload: one side of
// the entry lands on AccountID, the mirror side on ContraAccountID.
type CreateJournalFromStatementRequest struct {
	BankStatementID string          `json:"bankStatementId" binding:"required"`
	JournalDate     time.Time       `json:"journalDate" binding:"required"`
	Narration       string          `json:"narration" binding:"required"`
	AccountID       string          `json:"accountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	IsDebit         bool            `json:"isDebit"`
	ContraAccountID string          `json:"contraAccountId" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID     string                `json:"journalID"`
	JournalNumber string                `json:"journalNumber"`
	Date          time.Time             `json:"date"`
	Narration     string                `json:"narration"`
	TotalDebit    decimal.Decimal       `json:"totalDebit"`
	TotalCredit   decimal.Decimal       `json:"totalCredit"`
	Status        string                `json:"status"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a paginated page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain journal line to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalResponse converts a domain journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:     j.JournalID,
		JournalNumber: j.JournalNumber,
		Date:          j.JournalDate,
		Narration:     j.Narration,
		TotalDebit:    j.TotalDebit,
		TotalCredit:   j.TotalCredit,
		Status:        string(j.Status),
		CreatedAt:     j.CreatedAt,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(&j.Lines[i])
		}
	}
	return resp
}
