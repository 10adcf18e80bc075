package services_test

import (
	"context"
	"time"

	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portsrepo "github.com/ledgerly/bankrecon_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

// Ensure MockStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, userID, statementID string) (*domain.BankStatementLine, error) {
	args := m.Called(ctx, userID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatementLine), args.Error(1)
}

func (m *MockStatementRepository) ListStatements(ctx context.Context, userID string, status *domain.MatchStatus, limit int, nextToken *string) ([]domain.BankStatementLine, *string, error) {
	args := m.Called(ctx, userID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.BankStatementLine), returnedNextToken, args.Error(2)
}

func (m *MockStatementRepository) CountStatementsByStatus(ctx context.Context, userID string) (map[domain.MatchStatus]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.MatchStatus]int), args.Error(1)
}

func (m *MockStatementRepository) SaveStatement(ctx context.Context, line domain.BankStatementLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStatementRepository) UpdateStatementStatus(ctx context.Context, userID, statementID string, status domain.MatchStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, statementID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockStatementRepository) DeleteStatement(ctx context.Context, userID, statementID string) error {
	args := m.Called(ctx, userID, statementID)
	return args.Error(0)
}

func (m *MockStatementRepository) AutoMatchStatements(ctx context.Context, userID string, dateWindowDays int, updatedByUserID string, updatedAt time.Time) (int, int, error) {
	args := m.Called(ctx, userID, dateWindowDays, updatedByUserID, updatedAt)
	return args.Int(0), args.Int(1), args.Error(2)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLatestJournalNumber(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CountJournals(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalHeader(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournalLines(ctx context.Context, lines []domain.JournalLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournalApproval(ctx context.Context, approval domain.JournalApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalHeader(ctx context.Context, userID, journalID string) error {
	args := m.Called(ctx, userID, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, userID, journalID string, status domain.JournalStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, journalID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

// Ensure MockReconciliationRepository implements the facade
var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindLinkByStatementID(ctx context.Context, userID, statementID string) (*domain.ReconciliationLink, error) {
	args := m.Called(ctx, userID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationLink), args.Error(1)
}

func (m *MockReconciliationRepository) CreateLink(ctx context.Context, link domain.ReconciliationLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockReconciliationRepository) DeleteLinkByStatementID(ctx context.Context, userID, statementID string) error {
	args := m.Called(ctx, userID, statementID)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, event string, payload any) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}
