package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/core/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockBankRepo    *MockBankRepository
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	events          *recordingPublisher
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.events = &recordingPublisher{}
	suite.service = services.NewReconciliationService(suite.mockBankRepo, suite.mockJournalRepo, suite.mockAccountRepo,
		services.WithEventPublisher(suite.events))
}

func (suite *ReconciliationServiceTestSuite) statement(matched bool, closing int64) *domain.BankStatement {
	entry := ""
	if matched {
		entry = "je-1"
	}
	return &domain.BankStatement{
		StatementID:    "st-1",
		BankAccountID:  "acc-bank",
		OpeningBalance: decimal.NewFromInt(1000),
		ClosingBalance: decimal.NewFromInt(closing),
		Transactions: []domain.BankTransaction{
			{TransactionID: "tx-1", StatementID: "st-1", Direction: domain.BankCredit, Amount: decimal.NewFromInt(500), MatchedEntryID: "je-0"},
			{TransactionID: "tx-2", StatementID: "st-1", Direction: domain.BankDebit, Amount: decimal.NewFromInt(200), MatchedEntryID: entry},
		},
	}
}

func (suite *ReconciliationServiceTestSuite) bankEntry(entryID, accountID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.EntryPosted,
		Lines: []domain.JournalLine{
			{EntryID: entryID, AccountID: "acc-expense", LineNumber: 1, Debit: decimal.NewFromInt(200)},
			{EntryID: entryID, AccountID: accountID, LineNumber: 2, Credit: decimal.NewFromInt(200)},
		},
	}
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_Success() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-bank").
		Return(&domain.Account{AccountID: "acc-bank", AccountType: domain.Asset}, nil).Once()
	suite.mockBankRepo.On("SaveStatement", ctx, mock.MatchedBy(func(s domain.BankStatement) bool {
		return len(s.Transactions) == 1 && s.Transactions[0].StatementID == s.StatementID
	})).Return(nil).Once()

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	stmt, err := suite.service.ImportStatement(ctx, dto.ImportStatementRequest{
		BankAccountID: "acc-bank",
		StatementDate: day,
		PeriodStart:   day,
		PeriodEnd:     day.AddDate(0, 1, -1),
		Transactions: []dto.ImportBankTransactionRequest{
			{TxnDate: day, Direction: domain.BankCredit, Amount: decimal.NewFromInt(75)},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(stmt.StatementID)
	suite.False(stmt.IsReconciled)
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_RejectsNonAssetAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-rev").
		Return(&domain.Account{AccountID: "acc-rev", AccountType: domain.Revenue}, nil).Once()

	_, err := suite.service.ImportStatement(ctx, dto.ImportStatementRequest{BankAccountID: "acc-rev"}, "user-1")

	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidAccount))
}

func (suite *ReconciliationServiceTestSuite) TestImportStatement_RejectsZeroAmountLine() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-bank").
		Return(&domain.Account{AccountID: "acc-bank", AccountType: domain.Asset}, nil).Once()

	_, err := suite.service.ImportStatement(ctx, dto.ImportStatementRequest{
		BankAccountID: "acc-bank",
		Transactions:  []dto.ImportBankTransactionRequest{{Direction: domain.BankDebit, Amount: decimal.Zero}},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveStatement", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestMatchTransaction_Success() {
	ctx := context.Background()
	stmt := suite.statement(false, 1300)
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-1").Return(suite.bankEntry("je-1", "acc-bank"), nil).Once()
	suite.mockBankRepo.On("MatchTransaction", ctx, "tx-2", "je-1", "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.NoError(suite.service.MatchTransaction(ctx, "tx-2", "je-1", "user-1"))
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMatchTransaction_DraftEntryRefused() {
	ctx := context.Background()
	stmt := suite.statement(false, 1300)
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-9").
		Return(&domain.JournalEntry{EntryID: "je-9", Status: domain.EntryDraft}, nil).Once()

	err := suite.service.MatchTransaction(ctx, "tx-2", "je-9", "user-1")

	suite.True(apperrors.HasCode(err, apperrors.CodeReferenceIntegrity))
}

func (suite *ReconciliationServiceTestSuite) TestMatchTransaction_EntryOnOtherAccountRefused() {
	ctx := context.Background()
	stmt := suite.statement(false, 1300)
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "je-7").Return(suite.bankEntry("je-7", "acc-petty-cash"), nil).Once()

	err := suite.service.MatchTransaction(ctx, "tx-2", "je-7", "user-1")

	suite.True(apperrors.HasCode(err, apperrors.CodeReferenceIntegrity))
	suite.mockBankRepo.AssertNotCalled(suite.T(), "MatchTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestUnmatchTransaction_ReconciledStatementFrozen() {
	ctx := context.Background()
	stmt := suite.statement(true, 1300)
	stmt.IsReconciled = true
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()

	err := suite.service.UnmatchTransaction(ctx, "tx-2", "user-1")

	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidTransition))
	suite.mockBankRepo.AssertNotCalled(suite.T(), "UnmatchTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileStatement_UnmatchedBeforeCommit() {
	ctx := context.Background()
	stmt := suite.statement(true, 1300)
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()
	suite.mockBankRepo.On("MarkReconciled", ctx, "st-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(apperrors.UnmatchedTransactionsError("st-1", []string{"tx-2"})).Once()

	result, err := suite.service.ReconcileStatement(ctx, "st-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.True(apperrors.HasCode(err, apperrors.CodeUnmatchedTransactions))
	suite.Require().NotNil(result)
	suite.False(result.Reconciled)
	suite.Empty(suite.events.topics())
}

func (suite *ReconciliationServiceTestSuite) TestMatchTransaction_AlreadyMatched() {
	ctx := context.Background()
	stmt := suite.statement(true, 1300)
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()

	err := suite.service.MatchTransaction(ctx, "tx-2", "je-2", "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReconciliationServiceTestSuite) TestMatchTransaction_ReconciledStatementFrozen() {
	ctx := context.Background()
	stmt := suite.statement(false, 1300)
	stmt.IsReconciled = true
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()

	err := suite.service.MatchTransaction(ctx, "tx-2", "je-1", "user-1")

	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidTransition))
}

func (suite *ReconciliationServiceTestSuite) TestUnmatchTransaction() {
	ctx := context.Background()
	stmt := suite.statement(true, 1300)
	suite.mockBankRepo.On("FindTransactionByID", ctx, "tx-2").Return(&stmt.Transactions[1], nil).Once()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()
	suite.mockBankRepo.On("UnmatchTransaction", ctx, "tx-2", "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.NoError(suite.service.UnmatchTransaction(ctx, "tx-2", "user-1"))
}

func (suite *ReconciliationServiceTestSuite) TestReconcileStatement_Balanced() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(suite.statement(true, 1300), nil).Once()
	suite.mockBankRepo.On("MarkReconciled", ctx, "st-1", "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	res, err := suite.service.ReconcileStatement(ctx, "st-1", "user-1")

	suite.Require().NoError(err)
	suite.True(res.Reconciled)
	suite.Nil(res.Discrepancy)
	suite.Equal([]domain.EventTopic{domain.TopicBankStatementReconciled}, suite.events.topics())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileStatement_Discrepancy() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(suite.statement(true, 1250), nil).Once()

	res, err := suite.service.ReconcileStatement(ctx, "st-1", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.False(res.Reconciled)
	suite.True(res.Discrepancy.Equal(decimal.NewFromInt(-50)))
	suite.mockBankRepo.AssertNotCalled(suite.T(), "MarkReconciled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileStatement_UnmatchedReportedFirst() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(suite.statement(false, 1250), nil).Once()

	_, err := suite.service.ReconcileStatement(ctx, "st-1", "user-1")

	suite.Require().Error(err)
	appErr, _ := apperrors.AsAppError(err)
	suite.Equal(apperrors.CodeUnmatchedTransactions, appErr.Code)
	suite.Equal([]string{"tx-2"}, appErr.Details)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileStatement_AlreadyReconciled() {
	ctx := context.Background()
	stmt := suite.statement(true, 1300)
	stmt.IsReconciled = true
	suite.mockBankRepo.On("FindStatementByID", ctx, "st-1").Return(stmt, nil).Once()

	res, err := suite.service.ReconcileStatement(ctx, "st-1", "user-1")

	suite.Require().NoError(err)
	suite.True(res.Reconciled)
	suite.Empty(suite.events.topics())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
