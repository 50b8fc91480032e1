package handlers_test

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ArchiveAccount(ctx context.Context, accountID string, reason string, userID string) error {
	return m.Called(ctx, accountID, reason, userID).Error(0)
}
func (m *MockAccountService) GetAccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}
func (m *MockAccountService) GetTrialBalance(ctx context.Context, fiscalYearID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID))
}
func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, userID))
}
func (m *MockJournalService) PostDraft(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}
func (m *MockJournalService) PostJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, userID))
}
func (m *MockJournalService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, reason, userID))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) SetBudget(ctx context.Context, req dto.SetBudgetRequest, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) GetBudgetReport(ctx context.Context, fiscalYearID string) ([]domain.BudgetVariance, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetVariance), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) GetStatement(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}
func (m *MockReconciliationService) ImportStatement(ctx context.Context, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}
func (m *MockReconciliationService) MatchTransaction(ctx context.Context, transactionID string, entryID string, userID string) error {
	return m.Called(ctx, transactionID, entryID, userID).Error(0)
}
func (m *MockReconciliationService) UnmatchTransaction(ctx context.Context, transactionID string, userID string) error {
	return m.Called(ctx, transactionID, userID).Error(0)
}
func (m *MockReconciliationService) ReconcileStatement(ctx context.Context, statementID string, userID string) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, statementID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock FiscalYearService ---
type MockFiscalYearService struct {
	mock.Mock
}

func (m *MockFiscalYearService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) GetClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosureSummary), args.Error(1)
}
func (m *MockFiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}
func (m *MockFiscalYearService) ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string) error {
	return m.Called(ctx, fiscalYearID, userID).Error(0)
}
func (m *MockFiscalYearService) PreviewClose(ctx context.Context, fiscalYearID string) (*domain.ClosePreview, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosePreview), args.Error(1)
}
func (m *MockFiscalYearService) Close(ctx context.Context, fiscalYearID string, previewOnly bool, userID string) (*domain.CloseResult, error) {
	args := m.Called(ctx, fiscalYearID, previewOnly, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseResult), args.Error(1)
}
func (m *MockFiscalYearService) Publish(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

var _ portssvc.FiscalYearSvcFacade = (*MockFiscalYearService)(nil)

// --- Mock BeneficiaryService ---
type MockBeneficiaryService struct {
	mock.Mock
}

func (m *MockBeneficiaryService) beneficiary(args mock.Arguments) (*domain.Beneficiary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}
func (m *MockBeneficiaryService) CreateBeneficiary(ctx context.Context, req dto.CreateBeneficiaryRequest, userID string) (*domain.Beneficiary, error) {
	return m.beneficiary(m.Called(ctx, req, userID))
}
func (m *MockBeneficiaryService) GetBeneficiary(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	return m.beneficiary(m.Called(ctx, beneficiaryID))
}
func (m *MockBeneficiaryService) ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}
func (m *MockBeneficiaryService) UpdateBeneficiaryShare(ctx context.Context, beneficiaryID string, req dto.UpdateBeneficiaryShareRequest, userID string) (*domain.Beneficiary, error) {
	return m.beneficiary(m.Called(ctx, beneficiaryID, req, userID))
}
func (m *MockBeneficiaryService) ArchiveBeneficiary(ctx context.Context, beneficiaryID string, reason string, userID string) error {
	return m.Called(ctx, beneficiaryID, reason, userID).Error(0)
}

var _ portssvc.BeneficiarySvcFacade = (*MockBeneficiaryService)(nil)

// --- Mock DistributionService ---
type MockDistributionService struct {
	mock.Mock
}

func (m *MockDistributionService) distribution(args mock.Arguments) (*domain.Distribution, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}
func (m *MockDistributionService) detail(args mock.Arguments) (*domain.DistributionDetail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DistributionDetail), args.Error(1)
}
func (m *MockDistributionService) GetDistribution(ctx context.Context, distributionID string) (*domain.Distribution, error) {
	return m.distribution(m.Called(ctx, distributionID))
}
func (m *MockDistributionService) ListDistributions(ctx context.Context, fiscalYearID string) ([]domain.Distribution, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}
func (m *MockDistributionService) ListPublishedDistributions(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoricalAllocation), args.Error(1)
}
func (m *MockDistributionService) ComputeDistribution(ctx context.Context, req dto.ComputeDistributionRequest, userID string) (*domain.Distribution, error) {
	return m.distribution(m.Called(ctx, req, userID))
}
func (m *MockDistributionService) Recompute(ctx context.Context, distributionID string, refreshSplit bool, userID string) (*domain.Distribution, error) {
	return m.distribution(m.Called(ctx, distributionID, refreshSplit, userID))
}
func (m *MockDistributionService) GeneratePaymentVouchers(ctx context.Context, distributionID string, userID string) (*domain.Distribution, error) {
	return m.distribution(m.Called(ctx, distributionID, userID))
}
func (m *MockDistributionService) MarkDetailPaid(ctx context.Context, detailID string, paidAt time.Time, userID string) (*domain.DistributionDetail, error) {
	return m.detail(m.Called(ctx, detailID, paidAt, userID))
}
func (m *MockDistributionService) CancelDetail(ctx context.Context, detailID string, reason string, userID string) (*domain.DistributionDetail, error) {
	return m.detail(m.Called(ctx, detailID, reason, userID))
}

var _ portssvc.DistributionSvcFacade = (*MockDistributionService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) SubmitApproval(ctx context.Context, distributionID string, req dto.SubmitApprovalRequest, actor domain.Actor) (*domain.Distribution, error) {
	args := m.Called(ctx, distributionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}
func (m *MockApprovalService) ListApprovals(ctx context.Context, distributionID string) ([]domain.Approval, error) {
	args := m.Called(ctx, distributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)
