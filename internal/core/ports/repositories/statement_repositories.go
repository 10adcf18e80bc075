package repositories

import (
	"context"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// StatementReader defines read operations for bank statement lines.
type StatementReader interface {
	// FindStatementByID retrieves a statement line scoped to its owning user.
	FindStatementByID(ctx context.Context, userID, statementID string) (*domain.BankStatementLine, error)

	// ListStatements retrieves a paginated list of statement lines for a user,
	// optionally filtered by match status, using token-based pagination.
	ListStatements(ctx context.Context, userID string, status *domain.MatchStatus, limit int, nextToken *string) ([]domain.BankStatementLine, *string, error)

	// CountStatementsByStatus returns the number of statement lines per match status.
	CountStatementsByStatus(ctx context.Context, userID string) (map[domain.MatchStatus]int, error)
}

// StatementWriter defines write operations for bank statement lines.
type StatementWriter interface {
	// SaveStatement persists a single statement line. Returns apperrors.ErrDuplicate
	// when the (user, transaction identity) natural key already exists.
	SaveStatement(ctx context.Context, line domain.BankStatementLine) error

	// UpdateStatementStatus sets the match status of a statement line.
	// Returns apperrors.ErrNotFound when no row matches.
	UpdateStatementStatus(ctx context.Context, userID, statementID string, status domain.MatchStatus, updatedByUserID string, updatedAt time.Time) error

	// DeleteStatement removes a statement line owned by the user.
	DeleteStatement(ctx context.Context, userID, statementID string) error

	// AutoMatchStatements runs the set-based matching routine: unmatched lines are
	// paired against posted journals on exact amount within the date window, links
	// are recorded and statuses updated in one store-side operation. Returns the
	// number of lines newly matched and newly partially matched.
	AutoMatchStatements(ctx context.Context, userID string, dateWindowDays int, updatedByUserID string, updatedAt time.Time) (matched int, partiallyMatched int, err error)
}

// StatementRepositoryFacade combines all statement repository interfaces.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
