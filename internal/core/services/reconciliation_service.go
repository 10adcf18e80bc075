package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
)

var (
	ErrMatchingFailed               = errors.New("auto-matching failed")
	ErrReconciliationCreationFailed = errors.New("failed to create reconciliation link")
	ErrStatementAlreadyMatched      = errors.New("bank statement is already matched")
	ErrStatementNotMatched          = errors.New("bank statement is not matched")
)

// Event names published to the broker after matching operations.
const (
	eventAutoMatched   = "reconciliation.auto_matched"
	eventManualMatched = "reconciliation.manual_matched"
	eventUnmatched     = "reconciliation.unmatched"
)

// reconciliationService pairs bank statement lines with journals and reports
// reconciliation progress.
type reconciliationService struct {
	BaseService
	statementRepo  portsrepo.StatementRepositoryFacade
	journalRepo    portsrepo.JournalRepositoryFacade
	reconRepo      portsrepo.ReconciliationRepositoryFacade
	publisher      portssvc.EventPublisher
	dateWindowDays int
}

// ReconciliationServiceOption is a functional option for configuring the service.
type ReconciliationServiceOption func(*reconciliationService)

// WithEventPublisher sets the broker publisher for reconciliation events.
func WithEventPublisher(publisher portssvc.EventPublisher) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.publisher = publisher
	}
}

// WithMatchDateWindowDays overrides the auto-match date window.
func WithMatchDateWindowDays(days int) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.dateWindowDays = days
	}
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(statementRepo portsrepo.StatementRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, reconRepo portsrepo.ReconciliationRepositoryFacade, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{
		statementRepo:  statementRepo,
		journalRepo:    journalRepo,
		reconRepo:      reconRepo,
		dateWindowDays: 3,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reconciliationService implements the facade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// AutoMatch delegates matching to the store's set-based routine and returns
// aggregate counts. An empty reconciliation state yields zero counts.
// Re-running after a successful run is a no-op: the routine only considers
// unmatched lines.
func (s *reconciliationService) AutoMatch(ctx context.Context, userID string) (*dto.AutoMatchResponse, error) {
	now := time.Now().UTC()

	matched, partiallyMatched, err := s.statementRepo.AutoMatchStatements(ctx, userID, s.dateWindowDays, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Auto-match routine failed")
		return nil, fmt.Errorf("%w: %v", ErrMatchingFailed, err)
	}

	s.LogInfo(ctx, "Auto-match completed",
		slog.Int("matched", matched),
		slog.Int("partially_matched", partiallyMatched))

	s.publishEvent(ctx, eventAutoMatched, map[string]any{
		"user_id":           userID,
		"matched_count":     matched,
		"partially_matched": partiallyMatched,
		"occurred_at":       now,
	})

	return &dto.AutoMatchResponse{
		MatchedCount:          matched,
		PartiallyMatchedCount: partiallyMatched,
	}, nil
}

// ManualMatch records a user-confirmed pairing. The link row is written first;
// the statement status flips to matched only after the link write succeeds, so
// a failed link leaves the line untouched.
func (s *reconciliationService) ManualMatch(ctx context.Context, userID, statementID, journalID string) error {
	statement, err := s.statementRepo.FindStatementByID(ctx, userID, statementID)
	if err != nil {
		return fmt.Errorf("failed to fetch bank statement %s: %w", statementID, err)
	}
	if statement.Status == domain.Matched {
		return fmt.Errorf("%w: statement %s", ErrStatementAlreadyMatched, statementID)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, userID, journalID)
	if err != nil {
		return fmt.Errorf("failed to fetch journal %s: %w", journalID, err)
	}
	if journal.Status != domain.Posted {
		return fmt.Errorf("%w: journal %s is %s", apperrors.ErrConflict, journalID, journal.Status)
	}

	now := time.Now().UTC()
	link := domain.ReconciliationLink{
		LinkID:      uuid.NewString(),
		UserID:      userID,
		StatementID: statementID,
		JournalID:   journalID,
		MatchType:   domain.MatchManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.CreateLink(ctx, link); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: statement %s", ErrStatementAlreadyMatched, statementID)
		}
		s.LogError(ctx, err, "Failed to create reconciliation link",
			slog.String("statement_id", statementID),
			slog.String("journal_id", journalID))
		return fmt.Errorf("%w: %v", ErrReconciliationCreationFailed, err)
	}

	if err := s.statementRepo.UpdateStatementStatus(ctx, userID, statementID, domain.Matched, userID, now); err != nil {
		// The link exists but the status flip failed. Surface it loudly; the
		// next unmatch/match cycle repairs the pair.
		s.LogError(ctx, err, "Reconciliation link created but statement status update failed",
			slog.String("statement_id", statementID),
			slog.String("link_id", link.LinkID))
		return fmt.Errorf("failed to update statement status after linking %s: %w", statementID, err)
	}

	s.LogInfo(ctx, "Statement manually matched",
		slog.String("statement_id", statementID),
		slog.String("journal_id", journalID))

	s.publishEvent(ctx, eventManualMatched, map[string]any{
		"user_id":      userID,
		"statement_id": statementID,
		"journal_id":   journalID,
		"occurred_at":  now,
	})

	return nil
}

// Unmatch removes the active link and resets the line to unmatched.
func (s *reconciliationService) Unmatch(ctx context.Context, userID, statementID string) error {
	statement, err := s.statementRepo.FindStatementByID(ctx, userID, statementID)
	if err != nil {
		return fmt.Errorf("failed to fetch bank statement %s: %w", statementID, err)
	}
	if statement.Status == domain.Unmatched {
		return fmt.Errorf("%w: statement %s", ErrStatementNotMatched, statementID)
	}

	if err := s.reconRepo.DeleteLinkByStatementID(ctx, userID, statementID); err != nil {
		s.LogError(ctx, err, "Failed to delete reconciliation link", slog.String("statement_id", statementID))
		return fmt.Errorf("failed to remove reconciliation link for statement %s: %w", statementID, err)
	}

	now := time.Now().UTC()
	if err := s.statementRepo.UpdateStatementStatus(ctx, userID, statementID, domain.Unmatched, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reset statement status after unlink", slog.String("statement_id", statementID))
		return fmt.Errorf("failed to update statement status after unlinking %s: %w", statementID, err)
	}

	s.LogInfo(ctx, "Statement unmatched", slog.String("statement_id", statementID))

	s.publishEvent(ctx, eventUnmatched, map[string]any{
		"user_id":      userID,
		"statement_id": statementID,
		"occurred_at":  now,
	})

	return nil
}

// GetReconciliationReport aggregates statement and journal counts into a
// progress summary. Statements and journals are counted independently; no
// join is needed.
func (s *reconciliationService) GetReconciliationReport(ctx context.Context, userID string) (*domain.ReconciliationReport, error) {
	statusCounts, err := s.statementRepo.CountStatementsByStatus(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count bank statements")
		return nil, fmt.Errorf("failed to fetch bank statements: %w", err)
	}

	journalCount, err := s.journalRepo.CountJournals(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count journals")
		return nil, fmt.Errorf("failed to fetch journals: %w", err)
	}

	report := &domain.ReconciliationReport{
		MatchedCount:          statusCounts[domain.Matched],
		PartiallyMatchedCount: statusCounts[domain.PartiallyMatched],
		UnmatchedCount:        statusCounts[domain.Unmatched],
		TotalJournals:         journalCount,
	}
	report.TotalBankStatements = report.MatchedCount + report.PartiallyMatchedCount + report.UnmatchedCount

	if report.TotalBankStatements > 0 {
		reconciled := report.MatchedCount + report.PartiallyMatchedCount
		report.ReconciliationPercentage = int(math.Round(float64(reconciled) / float64(report.TotalBankStatements) * 100))
	}

	s.LogDebug(ctx, "Reconciliation report generated",
		slog.Int("total_statements", report.TotalBankStatements),
		slog.Int("percentage", report.ReconciliationPercentage))
	return report, nil
}

// publishEvent sends a reconciliation event to the broker, fire-and-forget.
// A broker outage must never fail the primary operation.
func (s *reconciliationService) publishEvent(ctx context.Context, event string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event, payload); err != nil {
		s.LogWarn(ctx, "Failed to publish reconciliation event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}
