package services

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/dto"
)

// JournalSvcFacade exposes journal posting and retrieval operations.
type JournalSvcFacade interface {
	// CreateJournalFromBankStatement posts a balanced two-line journal derived
	// from a statement line and returns the new journal ID. It does not mark
	// the statement line matched; callers chain ManualMatch for that.
	CreateJournalFromBankStatement(ctx context.Context, userID string, req dto.CreateJournalFromStatementRequest) (string, error)

	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals (headers only).
	ListJournals(ctx context.Context, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// VoidJournal marks a posted journal void. Void is the only mutation a
	// posted journal permits.
	VoidJournal(ctx context.Context, userID, journalID string) error
}
