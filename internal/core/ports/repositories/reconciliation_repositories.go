package repositories

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation links.
type ReconciliationReader interface {
	// FindLinkByStatementID retrieves the active link for a statement line, if any.
	FindLinkByStatementID(ctx context.Context, userID, statementID string) (*domain.ReconciliationLink, error)
}

// ReconciliationWriter defines write operations for reconciliation links.
type ReconciliationWriter interface {
	// CreateLink persists a reconciliation link. Returns apperrors.ErrDuplicate
	// when the statement line already carries an active link.
	CreateLink(ctx context.Context, link domain.ReconciliationLink) error

	// DeleteLinkByStatementID removes the active link for a statement line.
	DeleteLinkByStatementID(ctx context.Context, userID, statementID string) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
