package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockStatementRepo *MockStatementRepository
	mockJournalRepo   *MockJournalRepository
	mockReconRepo     *MockReconciliationRepository
	mockPublisher     *MockEventPublisher
	service           portssvc.ReconciliationSvcFacade
	userID            string
	statementID       string
	journalID         string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewReconciliationService(
		suite.mockStatementRepo,
		suite.mockJournalRepo,
		suite.mockReconRepo,
		services.WithEventPublisher(suite.mockPublisher),
		services.WithMatchDateWindowDays(3),
	)

	suite.userID = uuid.NewString()
	suite.statementID = uuid.NewString()
	suite.journalID = uuid.NewString()
}

func (suite *ReconciliationServiceTestSuite) unmatchedStatement() *domain.BankStatementLine {
	return &domain.BankStatementLine{
		StatementID: suite.statementID,
		UserID:      suite.userID,
		Status:      domain.Unmatched,
	}
}

func (suite *ReconciliationServiceTestSuite) postedJournal() *domain.Journal {
	return &domain.Journal{
		JournalID: suite.journalID,
		UserID:    suite.userID,
		Status:    domain.Posted,
	}
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_ReturnsCounts() {
	ctx := context.Background()

	suite.mockStatementRepo.On("AutoMatchStatements", ctx, suite.userID, 3, suite.userID, mock.AnythingOfType("time.Time")).
		Return(4, 1, nil).Once()
	suite.mockPublisher.On("Publish", ctx, "reconciliation.auto_matched", mock.Anything).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(4, resp.MatchedCount)
	suite.Equal(1, resp.PartiallyMatchedCount)
	suite.mockStatementRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_EmptyStateYieldsZeroCounts() {
	ctx := context.Background()

	suite.mockStatementRepo.On("AutoMatchStatements", ctx, suite.userID, 3, suite.userID, mock.AnythingOfType("time.Time")).
		Return(0, 0, nil).Once()
	suite.mockPublisher.On("Publish", ctx, "reconciliation.auto_matched", mock.Anything).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.MatchedCount)
	suite.Equal(0, resp.PartiallyMatchedCount)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_StoreFailure() {
	ctx := context.Background()

	suite.mockStatementRepo.On("AutoMatchStatements", ctx, suite.userID, 3, suite.userID, mock.AnythingOfType("time.Time")).
		Return(0, 0, assert.AnError).Once()

	_, err := suite.service.AutoMatch(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMatchingFailed)
	suite.Contains(err.Error(), assert.AnError.Error())
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_PublisherFailureDoesNotPropagate() {
	ctx := context.Background()

	suite.mockStatementRepo.On("AutoMatchStatements", ctx, suite.userID, 3, suite.userID, mock.AnythingOfType("time.Time")).
		Return(2, 0, nil).Once()
	suite.mockPublisher.On("Publish", ctx, "reconciliation.auto_matched", mock.Anything).Return(assert.AnError).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.MatchedCount)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_LinkThenStatus() {
	ctx := context.Background()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(suite.unmatchedStatement(), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, suite.journalID).Return(suite.postedJournal(), nil).Once()

	var createdLink domain.ReconciliationLink
	suite.mockReconRepo.On("CreateLink", ctx, mock.AnythingOfType("domain.ReconciliationLink")).
		Run(func(args mock.Arguments) { createdLink = args.Get(1).(domain.ReconciliationLink) }).
		Return(nil).Once()
	suite.mockStatementRepo.On("UpdateStatementStatus", ctx, suite.userID, suite.statementID, domain.Matched, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, "reconciliation.manual_matched", mock.Anything).Return(nil).Once()

	err := suite.service.ManualMatch(ctx, suite.userID, suite.statementID, suite.journalID)

	suite.Require().NoError(err)
	suite.Equal(suite.statementID, createdLink.StatementID)
	suite.Equal(suite.journalID, createdLink.JournalID)
	suite.Equal(domain.MatchManual, createdLink.MatchType)
	suite.mockStatementRepo.AssertExpectations(suite.T())
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_LinkFailureLeavesStatusUntouched() {
	ctx := context.Background()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(suite.unmatchedStatement(), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, suite.journalID).Return(suite.postedJournal(), nil).Once()
	suite.mockReconRepo.On("CreateLink", ctx, mock.AnythingOfType("domain.ReconciliationLink")).Return(assert.AnError).Once()

	err := suite.service.ManualMatch(ctx, suite.userID, suite.statementID, suite.journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReconciliationCreationFailed)
	// The status update must not happen when the link write fails.
	suite.mockStatementRepo.AssertNotCalled(suite.T(), "UpdateStatementStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_AlreadyMatchedRejected() {
	ctx := context.Background()
	matched := suite.unmatchedStatement()
	matched.Status = domain.Matched

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(matched, nil).Once()

	err := suite.service.ManualMatch(ctx, suite.userID, suite.statementID, suite.journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementAlreadyMatched)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_DuplicateLinkMapsToAlreadyMatched() {
	ctx := context.Background()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(suite.unmatchedStatement(), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, suite.journalID).Return(suite.postedJournal(), nil).Once()
	suite.mockReconRepo.On("CreateLink", ctx, mock.AnythingOfType("domain.ReconciliationLink")).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.ManualMatch(ctx, suite.userID, suite.statementID, suite.journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementAlreadyMatched)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_VoidJournalRejected() {
	ctx := context.Background()
	voided := suite.postedJournal()
	voided.Status = domain.Void

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(suite.unmatchedStatement(), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, suite.journalID).Return(voided, nil).Once()

	err := suite.service.ManualMatch(ctx, suite.userID, suite.statementID, suite.journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestUnmatch_Success() {
	ctx := context.Background()
	matched := suite.unmatchedStatement()
	matched.Status = domain.Matched

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(matched, nil).Once()
	suite.mockReconRepo.On("DeleteLinkByStatementID", ctx, suite.userID, suite.statementID).Return(nil).Once()
	suite.mockStatementRepo.On("UpdateStatementStatus", ctx, suite.userID, suite.statementID, domain.Unmatched, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, "reconciliation.unmatched", mock.Anything).Return(nil).Once()

	err := suite.service.Unmatch(ctx, suite.userID, suite.statementID)

	suite.Require().NoError(err)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestUnmatch_NotMatchedRejected() {
	ctx := context.Background()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statementID).Return(suite.unmatchedStatement(), nil).Once()

	err := suite.service.Unmatch(ctx, suite.userID, suite.statementID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementNotMatched)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "DeleteLinkByStatementID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReport_Percentage() {
	ctx := context.Background()

	tests := []struct {
		name           string
		counts         map[domain.MatchStatus]int
		journals       int
		wantTotal      int
		wantPercentage int
	}{
		{
			name:           "empty state",
			counts:         map[domain.MatchStatus]int{},
			journals:       0,
			wantTotal:      0,
			wantPercentage: 0,
		},
		{
			name:           "half matched",
			counts:         map[domain.MatchStatus]int{domain.Matched: 1, domain.Unmatched: 1},
			journals:       3,
			wantTotal:      2,
			wantPercentage: 50,
		},
		{
			name:           "partial counts toward percentage",
			counts:         map[domain.MatchStatus]int{domain.Matched: 1, domain.PartiallyMatched: 1, domain.Unmatched: 1},
			journals:       2,
			wantTotal:      3,
			wantPercentage: 67,
		},
		{
			name:           "all matched",
			counts:         map[domain.MatchStatus]int{domain.Matched: 5},
			journals:       5,
			wantTotal:      5,
			wantPercentage: 100,
		},
		{
			name:           "nothing matched",
			counts:         map[domain.MatchStatus]int{domain.Unmatched: 7},
			journals:       0,
			wantTotal:      7,
			wantPercentage: 0,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockStatementRepo.On("CountStatementsByStatus", ctx, suite.userID).Return(tt.counts, nil).Once()
			suite.mockJournalRepo.On("CountJournals", ctx, suite.userID).Return(tt.journals, nil).Once()

			report, err := suite.service.GetReconciliationReport(ctx, suite.userID)

			suite.Require().NoError(err)
			suite.Equal(tt.wantTotal, report.TotalBankStatements)
			suite.Equal(tt.journals, report.TotalJournals)
			suite.Equal(tt.wantPercentage, report.ReconciliationPercentage)
			suite.GreaterOrEqual(report.ReconciliationPercentage, 0)
			suite.LessOrEqual(report.ReconciliationPercentage, 100)
		})
	}
}

func (suite *ReconciliationServiceTestSuite) TestReport_CountFailure() {
	ctx := context.Background()

	suite.mockStatementRepo.On("CountStatementsByStatus", ctx, suite.userID).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetReconciliationReport(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to fetch bank statements")
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
