package services

import (
	"context"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	"github.com/ledgerly/bankrecon_app/internal/dto"
)

// ReconciliationSvcFacade exposes matching and reporting operations.
type ReconciliationSvcFacade interface {
	// AutoMatch runs the store-side matching routine and returns aggregate counts.
	// An empty reconciliation state yields zero counts, not an error.
	AutoMatch(ctx context.Context, userID string) (*dto.AutoMatchResponse, error)

	// ManualMatch records a user-confirmed pairing of a statement line and a
	// journal: the link is written first, then the line is marked matched.
	ManualMatch(ctx context.Context, userID, statementID, journalID string) error

	// Unmatch removes the active link and resets the line to unmatched.
	Unmatch(ctx context.Context, userID, statementID string) error

	// GetReconciliationReport aggregates match counts into a progress summary.
	GetReconciliationReport(ctx context.Context, userID string) (*domain.ReconciliationReport, error)
}
