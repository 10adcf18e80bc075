package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
	"github.com/ledgerly/bankrecon_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalCreationFailed     = errors.New("failed to create journal")
	ErrJournalLineCreationFailed = errors.New("failed to create journal lines")
	ErrJournalNotPosted          = errors.New("journal must be posted to be voided")
	ErrAccountInactive           = errors.New("account is inactive")
	ErrSameAccount               = errors.New("account and contra account must differ")
)

// journalNumberAttempts bounds the read-increment-write retry loop. Two
// concurrent creations for the same user can observe the same highest number;
// the UNIQUE (created_by, journal_number) constraint makes the loser fail, and
// it retries with a freshly read number.
const journalNumberAttempts = 3

// journalService provides journal posting and retrieval operations.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryFacade
	statementRepo portsrepo.StatementRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, statementRepo portsrepo.StatementRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		statementRepo: statementRepo,
		accountSvc:    accountSvc,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalFromBankStatement posts a two-line journal derived from a bank
// statement line: the requested amount lands on accountId on the side given by
// isDebit, and the mirror entry lands on contraAccountId, so the journal
// balances by construction.
//
// Write order is header, lines, approval record. The store gives us atomic
// row writes but no cross-table transaction here, so a failed line insert is
// compensated by deleting the just-created header before surfacing the error.
func (s *journalService) CreateJournalFromBankStatement(ctx context.Context, userID string, req dto.CreateJournalFromStatementRequest) (string, error) {
	logger := s.GetLogger(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("%w: journal amount must be positive", apperrors.ErrValidation)
	}
	if req.AccountID == req.ContraAccountID {
		return "", ErrSameAccount
	}
	if req.Narration == "" {
		return "", fmt.Errorf("%w: narration is required", apperrors.ErrValidation)
	}

	// The source statement line must exist and belong to the caller.
	statement, err := s.statementRepo.FindStatementByID(ctx, userID, req.BankStatementID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch bank statement %s: %w", req.BankStatementID, err)
	}

	// Both legs must reference active accounts owned by the caller.
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, userID, []string{req.AccountID, req.ContraAccountID})
	if err != nil {
		return "", fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, accountID := range []string{req.AccountID, req.ContraAccountID} {
		account, found := accountsMap[accountID]
		if !found {
			return "", fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		if !account.IsActive {
			return "", fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
		}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := s.buildMirroredLines(journalID, userID, req, now)
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		// Unreachable for mirrored lines; kept as the posting invariant check.
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		UserID:      userID,
		JournalDate: req.JournalDate,
		Narration:   req.Narration,
		TotalDebit:  req.Amount,
		TotalCredit: req.Amount,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.saveWithSequentialNumber(ctx, &journal); err != nil {
		return "", err
	}

	if err := s.journalRepo.SaveJournalLines(ctx, lines); err != nil {
		s.compensateHeader(ctx, userID, journalID)
		return "", fmt.Errorf("%w: %v", ErrJournalLineCreationFailed, err)
	}

	approval := domain.JournalApproval{
		ApprovalID: uuid.NewString(),
		JournalID:  journalID,
		UserID:     userID,
		Status:     domain.ApprovalPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.journalRepo.SaveJournalApproval(ctx, approval); err != nil {
		s.compensateHeader(ctx, userID, journalID)
		return "", fmt.Errorf("%w: approval record: %v", ErrJournalCreationFailed, err)
	}

	logger.Info("Journal created from bank statement",
		slog.String("journal_id", journalID),
		slog.String("journal_number", journal.JournalNumber),
		slog.String("statement_id", statement.StatementID))
	return journalID, nil
}

// buildMirroredLines constructs the two balancing legs of the journal.
func (s *journalService) buildMirroredLines(journalID, userID string, req dto.CreateJournalFromStatementRequest, now time.Time) []domain.JournalLine {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	primary := domain.JournalLine{
		LineID:      uuid.NewString(),
		JournalID:   journalID,
		AccountID:   req.AccountID,
		Description: req.Narration,
		AuditFields: audit,
	}
	contra := domain.JournalLine{
		LineID:      uuid.NewString(),
		JournalID:   journalID,
		AccountID:   req.ContraAccountID,
		Description: req.Narration,
		AuditFields: audit,
	}

	if req.IsDebit {
		primary.Debit = req.Amount
		contra.Credit = req.Amount
	} else {
		primary.Credit = req.Amount
		contra.Debit = req.Amount
	}

	return []domain.JournalLine{primary, contra}
}

// saveWithSequentialNumber assigns the next per-user journal number and saves
// the header, retrying with a re-read number when a concurrent creation wins
// the same number.
func (s *journalService) saveWithSequentialNumber(ctx context.Context, journal *domain.Journal) error {
	for attempt := 0; attempt < journalNumberAttempts; attempt++ {
		lastNumber, err := s.journalRepo.FindLatestJournalNumber(ctx, journal.UserID)
		if err != nil {
			return fmt.Errorf("%w: reading latest journal number: %v", ErrJournalCreationFailed, err)
		}

		nextNumber, err := accounting.NextJournalNumber(lastNumber)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrJournalCreationFailed, err)
		}
		journal.JournalNumber = nextNumber

		err = s.journalRepo.SaveJournalHeader(ctx, *journal)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Journal number collision, retrying with re-read number",
				slog.String("journal_number", nextNumber),
				slog.Int("attempt", attempt+1))
			continue
		}
		return fmt.Errorf("%w: %v", ErrJournalCreationFailed, err)
	}
	return fmt.Errorf("%w: could not assign a unique journal number after %d attempts: %w",
		ErrJournalCreationFailed, journalNumberAttempts, apperrors.ErrConflict)
}

// compensateHeader best-effort deletes a journal header after a later write
// step failed. If the delete itself fails the orphan is logged loudly so an
// operator can clean it up; that inconsistency is surfaced, never swallowed.
func (s *journalService) compensateHeader(ctx context.Context, userID, journalID string) {
	if err := s.journalRepo.DeleteJournalHeader(ctx, userID, journalID); err != nil {
		s.LogError(ctx, err, "Compensating delete of journal header failed, orphan header left behind",
			slog.String("journal_id", journalID))
	}
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, userID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to fetch journal %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to fetch lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines

	return journal, nil
}

// ListJournals retrieves a paginated list of journal headers.
func (s *journalService) ListJournals(ctx context.Context, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, userID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to fetch journals: %w", err)
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		journalResponses[i] = dto.ToJournalResponse(&journals[i])
	}

	resp := &dto.ListJournalsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	}

	s.LogDebug(ctx, "Journals listed", slog.Int("count", len(journals)))
	return resp, nil
}

// VoidJournal marks a posted journal void. Posted journals are otherwise
// immutable.
func (s *journalService) VoidJournal(ctx context.Context, userID, journalID string) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, userID, journalID)
	if err != nil {
		return fmt.Errorf("failed to fetch journal %s: %w", journalID, err)
	}

	if journal.Status != domain.Posted {
		return fmt.Errorf("%w: journal %s status is %s", ErrJournalNotPosted, journalID, journal.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateJournalStatus(ctx, userID, journalID, domain.Void, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to void journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to void journal %s: %w", journalID, err)
	}

	s.LogInfo(ctx, "Journal voided", slog.String("journal_id", journalID))
	return nil
}
