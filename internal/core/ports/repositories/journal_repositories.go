package repositories

import (
	"context"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal scoped to its owning user.
	FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error)

	// FindJournalLines retrieves all lines of a journal.
	FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindLatestJournalNumber returns the highest journal number assigned to the
	// user, or the empty string when the user has no journals yet.
	FindLatestJournalNumber(ctx context.Context, userID string) (string, error)

	// ListJournals retrieves a paginated list of journals using token pagination.
	ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// CountJournals returns the total number of journals owned by the user.
	CountJournals(ctx context.Context, userID string) (int, error)
}

// JournalWriter defines write operations for journal data.
//
// Header, lines and approval record are separate writes on purpose: the
// journal poster compensates (deletes the header) when a later step fails
// rather than relying on a cross-table transaction.
type JournalWriter interface {
	// SaveJournalHeader persists the journal header. Returns apperrors.ErrDuplicate
	// when the (user, journal number) uniqueness constraint is violated.
	SaveJournalHeader(ctx context.Context, journal domain.Journal) error

	// SaveJournalLines persists all lines of a journal.
	SaveJournalLines(ctx context.Context, lines []domain.JournalLine) error

	// SaveJournalApproval records the approval-workflow entry for a new journal.
	SaveJournalApproval(ctx context.Context, approval domain.JournalApproval) error

	// DeleteJournalHeader removes a journal header; used as the compensating
	// action when line insertion fails after the header was written.
	DeleteJournalHeader(ctx context.Context, userID, journalID string) error

	// UpdateJournalStatus changes the status of a journal (e.g. POSTED -> VOID).
	UpdateJournalStatus(ctx context.Context, userID, journalID string, status domain.JournalStatus, updatedByUserID string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
