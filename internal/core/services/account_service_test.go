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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedger      *MockJournalRepository
	service         portssvc.AccountSvcFacade
	assets          domain.Account
	cash            domain.Account
	bank            domain.Account
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedger = new(MockJournalRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedger)
	suite.userID = uuid.NewString()

	suite.assets = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1",
		Name:        "Assets",
		AccountType: domain.Asset,
		Nature:      domain.DebitNature,
		IsHeader:    true,
		Archival:    domain.Active(),
	}
	suite.cash = domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1.1",
		Name:            "Cash",
		AccountType:     domain.Asset,
		Nature:          domain.DebitNature,
		ParentAccountID: suite.assets.AccountID,
		Archival:        domain.Active(),
	}
	suite.bank = domain.Account{
		AccountID:       uuid.NewString(),
		Code:            "1.2",
		Name:            "Bank",
		AccountType:     domain.Asset,
		Nature:          domain.DebitNature,
		ParentAccountID: suite.assets.AccountID,
		Archival:        domain.Active(),
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildOfHeader() {
	ctx := context.Background()
	parentID := suite.assets.AccountID
	req := dto.CreateAccountRequest{
		Code:            "1.3",
		Name:            " Petty cash ",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(&suite.assets, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1.3" && a.ParentAccountID == parentID && a.Nature == domain.DebitNature
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Petty cash", acc.Name)
	suite.True(acc.Archival.IsActive())
	suite.Equal(suite.userID, acc.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NatureDefaultsFromType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "4", Name: "Revenues", AccountType: domain.Revenue, IsHeader: true}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNature, acc.Nature)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeMustExtendParent() {
	ctx := context.Background()
	parentID := suite.assets.AccountID
	req := dto.CreateAccountRequest{Code: "2.1", Name: "Wrong", AccountType: domain.Asset, ParentAccountID: &parentID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(&suite.assets, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentMustBeHeader() {
	ctx := context.Background()
	parentID := suite.cash.AccountID
	req := dto.CreateAccountRequest{Code: "1.1.1", Name: "Till", AccountType: domain.Asset, ParentAccountID: &parentID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(&suite.cash, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidAccount))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := suite.assets.AccountID
	req := dto.CreateAccountRequest{Code: "1.9", Name: "Loan", AccountType: domain.Liability, ParentAccountID: &parentID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(&suite.assets, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidAccount))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1", Name: "Assets again", AccountType: domain.Asset, IsHeader: true}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{Code: "9", Name: "X", AccountType: "CONTRA"}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) chartTotals() map[string]domain.PostedTotals {
	return map[string]domain.PostedTotals{
		suite.cash.AccountID: {Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		suite.bank.AccountID: {Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(20)},
	}
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_HeaderSumsChildren() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assets.AccountID).Return(&suite.assets, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, true).Return([]domain.Account{suite.assets, suite.cash, suite.bank}, nil).Once()
	suite.mockLedger.On("SumPostedByAccount", ctx, "", (*domain.DateWindow)(nil)).Return(suite.chartTotals(), nil).Once()

	bal, err := suite.service.GetAccountBalance(ctx, suite.assets.AccountID)

	suite.Require().NoError(err)
	suite.True(bal.IsHeader)
	suite.True(bal.Balance.Equal(decimal.NewFromInt(130)), bal.Balance.String())
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_Leaf() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, true).Return([]domain.Account{suite.assets, suite.cash, suite.bank}, nil).Once()
	suite.mockLedger.On("SumPostedByAccount", ctx, "", (*domain.DateWindow)(nil)).Return(suite.chartTotals(), nil).Once()

	bal, err := suite.service.GetAccountBalance(ctx, suite.bank.AccountID)

	suite.Require().NoError(err)
	suite.True(bal.Balance.Equal(decimal.NewFromInt(30)))
}

func (suite *AccountServiceTestSuite) TestArchiveAccount_RefusesNonZeroBalance() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cash.AccountID).Return(&suite.cash, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx, true).Return([]domain.Account{suite.assets, suite.cash, suite.bank}, nil).Once()
	suite.mockLedger.On("SumPostedByAccount", ctx, "", (*domain.DateWindow)(nil)).Return(suite.chartTotals(), nil).Once()

	err := suite.service.ArchiveAccount(ctx, suite.cash.AccountID, "closed till", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ArchiveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestArchiveAccount_HeaderWithActiveChildren() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assets.AccountID).Return(&suite.assets, nil).Once()
	suite.mockAccountRepo.On("ListChildren", ctx, suite.assets.AccountID).Return([]domain.Account{suite.cash}, nil).Once()

	err := suite.service.ArchiveAccount(ctx, suite.assets.AccountID, "restructure", suite.userID)

	suite.Require().Error(err)
	suite.True(apperrors.HasCode(err, apperrors.CodeInvalidTransition))
}

func (suite *AccountServiceTestSuite) TestArchiveAccount_ZeroBalanceLeaf() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.bank.AccountID).Return(&suite.bank, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx, true).Return([]domain.Account{suite.assets, suite.cash, suite.bank}, nil).Once()
	suite.mockLedger.On("SumPostedByAccount", ctx, "", (*domain.DateWindow)(nil)).Return(map[string]domain.PostedTotals{
		suite.bank.AccountID: {Debit: decimal.NewFromInt(20), Credit: decimal.NewFromInt(20)},
	}, nil).Once()
	suite.mockAccountRepo.On("ArchiveAccount", ctx, suite.bank.AccountID, mock.MatchedBy(func(st domain.ArchivalState) bool {
		return st.Status == domain.ArchivalArchived && st.Reason == "bank closed" && st.ArchivedBy == suite.userID
	})).Return(nil).Once()

	err := suite.service.ArchiveAccount(ctx, suite.bank.AccountID, "bank closed", suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ArchivedRefused() {
	ctx := context.Background()
	archived := suite.cash
	archived.Archival = domain.Archived("old", time.Now(), suite.userID)
	name := "Renamed"
	suite.mockAccountRepo.On("FindAccountByID", ctx, archived.AccountID).Return(&archived, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, archived.AccountID, dto.UpdateAccountRequest{Name: &name}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
}

func (suite *AccountServiceTestSuite) TestGetTrialBalance_Balanced() {
	ctx := context.Background()
	revenue := domain.Account{AccountID: uuid.NewString(), Code: "4.1", AccountType: domain.Revenue, Nature: domain.CreditNature, Archival: domain.Active()}
	suite.mockAccountRepo.On("ListAccounts", ctx, true).Return([]domain.Account{suite.assets, suite.cash, revenue}, nil).Once()
	suite.mockLedger.On("SumPostedByAccount", ctx, "fy-1", (*domain.DateWindow)(nil)).Return(map[string]domain.PostedTotals{
		suite.cash.AccountID: {Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		revenue.AccountID:    {Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}, nil).Once()

	tb, err := suite.service.GetTrialBalance(ctx, "fy-1")

	suite.Require().NoError(err)
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
