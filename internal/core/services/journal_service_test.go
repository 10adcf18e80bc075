package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	"github.com/ledgerly/bankrecon_app/internal/core/domain"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/core/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockStatementRepo *MockStatementRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.JournalSvcFacade
	userID            string
	statement         *domain.BankStatementLine
	bankAccount       domain.Account
	incomeAccount     domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockStatementRepo, accountSvc)

	suite.userID = uuid.NewString()
	suite.statement = &domain.BankStatementLine{
		StatementID: uuid.NewString(),
		UserID:      suite.userID,
		Credit:      decimal.NewFromInt(1000),
		Status:      domain.Unmatched,
	}
	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Code:        "1001",
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Code:        "4001",
		Name:        "Sales",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) validRequest() dto.CreateJournalFromStatementRequest {
	return dto.CreateJournalFromStatementRequest{
		BankStatementID: suite.statement.StatementID,
		JournalDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Narration:       "Payment from client",
		AccountID:       suite.bankAccount.AccountID,
		Amount:          decimal.NewFromInt(1000),
		IsDebit:         true,
		ContraAccountID: suite.incomeAccount.AccountID,
	}
}

func (suite *JournalServiceTestSuite) expectLookups(ctx context.Context) {
	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statement.StatementID).Return(suite.statement, nil).Once()
	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:   suite.bankAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, []string{suite.bankAccount.AccountID, suite.incomeAccount.AccountID}).Return(accountsMap, nil).Once()
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreate_BalancedByConstruction() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectLookups(ctx)

	var savedJournal domain.Journal
	var savedLines []domain.JournalLine

	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("", nil).Once()
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.AnythingOfType("domain.Journal")).
		Run(func(args mock.Arguments) { savedJournal = args.Get(1).(domain.Journal) }).
		Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) { savedLines = args.Get(1).([]domain.JournalLine) }).
		Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalApproval", ctx, mock.AnythingOfType("domain.JournalApproval")).Return(nil).Once()

	journalID, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(journalID)
	suite.Equal("JE001", savedJournal.JournalNumber)
	suite.Equal(domain.Posted, savedJournal.Status)
	suite.True(savedJournal.TotalDebit.Equal(savedJournal.TotalCredit))

	suite.Require().Len(savedLines, 2)
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range savedLines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	suite.True(debits.Equal(credits))
	suite.True(debits.Equal(req.Amount))
	// The side of the primary leg follows isDebit; the contra mirrors it.
	suite.Equal(suite.bankAccount.AccountID, savedLines[0].AccountID)
	suite.True(savedLines[0].Debit.Equal(req.Amount))
	suite.Equal(suite.incomeAccount.AccountID, savedLines[1].AccountID)
	suite.True(savedLines[1].Credit.Equal(req.Amount))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreate_BalancedForCreditSide() {
	ctx := context.Background()
	req := suite.validRequest()
	req.IsDebit = false
	suite.expectLookups(ctx)

	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("JE041", nil).Once()
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.AnythingOfType("domain.Journal")).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) { savedLines = args.Get(1).([]domain.JournalLine) }).
		Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalApproval", ctx, mock.AnythingOfType("domain.JournalApproval")).Return(nil).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].Credit.Equal(req.Amount))
	suite.True(savedLines[1].Debit.Equal(req.Amount))
}

func (suite *JournalServiceTestSuite) TestCreate_SequentialNumbering() {
	ctx := context.Background()

	// Creating N journals sequentially yields JE001..JE00N with no gaps.
	lastNumber := ""
	for i := 1; i <= 5; i++ {
		suite.SetupTest() // Fresh mocks per iteration
		req := suite.validRequest()
		suite.expectLookups(ctx)

		expectedNumber := fmt.Sprintf("JE%03d", i)
		suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return(lastNumber, nil).Once()
		suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.MatchedBy(func(j domain.Journal) bool {
			return j.JournalNumber == expectedNumber
		})).Return(nil).Once()
		suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
		suite.mockJournalRepo.On("SaveJournalApproval", ctx, mock.AnythingOfType("domain.JournalApproval")).Return(nil).Once()

		_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)
		suite.Require().NoError(err)
		suite.mockJournalRepo.AssertExpectations(suite.T())

		lastNumber = expectedNumber
	}
}

func (suite *JournalServiceTestSuite) TestCreate_NumberCollisionRetries() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectLookups(ctx)

	// A concurrent creation wins JE003; the loser re-reads and takes JE004.
	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("JE002", nil).Once()
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalNumber == "JE003"
	})).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("JE003", nil).Once()
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.JournalNumber == "JE004"
	})).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalApproval", ctx, mock.AnythingOfType("domain.JournalApproval")).Return(nil).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreate_ExhaustedRetriesSurfaceConflict() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectLookups(ctx)

	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("JE001", nil).Times(3)
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.AnythingOfType("domain.Journal")).Return(apperrors.ErrDuplicate).Times(3)

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalCreationFailed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalLines", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreate_LineFailureCompensatesHeader() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectLookups(ctx)

	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("", nil).Once()

	var createdJournalID string
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.AnythingOfType("domain.Journal")).
		Run(func(args mock.Arguments) { createdJournalID = args.Get(1).(domain.Journal).JournalID }).
		Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(assert.AnError).Once()
	suite.mockJournalRepo.On("DeleteJournalHeader", ctx, suite.userID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			suite.Equal(createdJournalID, args.Get(2).(string))
		}).
		Return(nil).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalLineCreationFailed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalApproval", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreate_ApprovalFailureCompensatesHeader() {
	ctx := context.Background()
	req := suite.validRequest()
	suite.expectLookups(ctx)

	suite.mockJournalRepo.On("FindLatestJournalNumber", ctx, suite.userID).Return("", nil).Once()
	suite.mockJournalRepo.On("SaveJournalHeader", ctx, mock.AnythingOfType("domain.Journal")).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalLines", ctx, mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalApproval", ctx, mock.AnythingOfType("domain.JournalApproval")).Return(assert.AnError).Once()
	suite.mockJournalRepo.On("DeleteJournalHeader", ctx, suite.userID, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalCreationFailed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreate_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.Zero

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalHeader", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreate_SameAccountRejected() {
	ctx := context.Background()
	req := suite.validRequest()
	req.ContraAccountID = req.AccountID

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSameAccount)
}

func (suite *JournalServiceTestSuite) TestCreate_UnknownStatement() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, req.BankStatementID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalHeader", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreate_InactiveAccountRejected() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.userID, suite.statement.StatementID).Return(suite.statement, nil).Once()
	inactive := suite.incomeAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:   suite.bankAccount,
		suite.incomeAccount.AccountID: inactive,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalFromBankStatement(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *JournalServiceTestSuite) TestVoid_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID: journalID,
		UserID:    suite.userID,
		Status:    domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatus", ctx, suite.userID, journalID, domain.Void, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.VoidJournal(ctx, suite.userID, journalID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoid_AlreadyVoidRejected() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID: journalID,
		UserID:    suite.userID,
		Status:    domain.Void,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, journalID).Return(journal, nil).Once()

	err := suite.service.VoidJournal(ctx, suite.userID, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournalStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WithLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID:     journalID,
		UserID:        suite.userID,
		JournalNumber: "JE007",
		Status:        domain.Posted,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: journalID, Credit: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("FindJournalLines", ctx, journalID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalByID(ctx, suite.userID, journalID)

	suite.Require().NoError(err)
	suite.Equal("JE007", got.JournalNumber)
	suite.Len(got.Lines, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
