package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildren(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) ArchiveAccount(ctx context.Context, accountID string, state domain.ArchivalState) error {
	return m.Called(ctx, accountID, state).Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tok := args.Get(1).(string)
		next = &tok
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalRepository) CountEntriesByStatus(ctx context.Context, fiscalYearID string, status domain.EntryStatus) (int64, error) {
	args := m.Called(ctx, fiscalYearID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) FindUnbalancedEntries(ctx context.Context, fiscalYearID string) ([]string, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CancelEntry(ctx context.Context, originalID string, reversal domain.JournalEntry, reason string, userID string, at time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalID, reversal, reason, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SumPostedByAccount(ctx context.Context, fiscalYearID string, window *domain.DateWindow) (map[string]domain.PostedTotals, error) {
	args := m.Called(ctx, fiscalYearID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PostedTotals), args.Error(1)
}

func (m *MockJournalRepository) LedgerSnapshot(ctx context.Context, fiscalYearID string, window domain.DateWindow) (domain.LedgerSnapshot, error) {
	args := m.Called(ctx, fiscalYearID, window)
	return args.Get(0).(domain.LedgerSnapshot), args.Error(1)
}

// --- Mock FiscalYearRepository ---
type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryFacade = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosureSummary), args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	return m.Called(ctx, fy).Error(0)
}

func (m *MockFiscalYearRepository) ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string, at time.Time) error {
	return m.Called(ctx, fiscalYearID, userID, at).Error(0)
}

func (m *MockFiscalYearRepository) CommitClose(ctx context.Context, fiscalYearID string, expectedVersion int64, summary domain.ClosureSummary, userID string, at time.Time) error {
	return m.Called(ctx, fiscalYearID, expectedVersion, summary, userID, at).Error(0)
}

func (m *MockFiscalYearRepository) Publish(ctx context.Context, fiscalYearID string, userID string, at time.Time) error {
	return m.Called(ctx, fiscalYearID, userID, at).Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) (*domain.Budget, error) {
	args := m.Called(ctx, budget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, fiscalYearID string) ([]domain.Budget, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

// --- Mock BankRepository ---
type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}

func (m *MockBankRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankRepository) SaveStatement(ctx context.Context, statement domain.BankStatement) error {
	return m.Called(ctx, statement).Error(0)
}

func (m *MockBankRepository) MatchTransaction(ctx context.Context, transactionID, entryID, userID string, at time.Time) error {
	return m.Called(ctx, transactionID, entryID, userID, at).Error(0)
}

func (m *MockBankRepository) UnmatchTransaction(ctx context.Context, transactionID, userID string, at time.Time) error {
	return m.Called(ctx, transactionID, userID, at).Error(0)
}

func (m *MockBankRepository) MarkReconciled(ctx context.Context, statementID, userID string, at time.Time) error {
	return m.Called(ctx, statementID, userID, at).Error(0)
}

// --- Mock BeneficiaryRepository ---
type MockBeneficiaryRepository struct {
	mock.Mock
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*MockBeneficiaryRepository)(nil)

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ArchiveBeneficiary(ctx context.Context, beneficiaryID string, state domain.ArchivalState) error {
	return m.Called(ctx, beneficiaryID, state).Error(0)
}

// --- Mock DistributionRepository ---
type MockDistributionRepository struct {
	mock.Mock
}

var _ portsrepo.DistributionRepositoryFacade = (*MockDistributionRepository)(nil)

func (m *MockDistributionRepository) FindDistributionByID(ctx context.Context, distributionID string) (*domain.Distribution, error) {
	args := m.Called(ctx, distributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) FindDistributionByPeriod(ctx context.Context, period domain.DistributionPeriod) (*domain.Distribution, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) ListDistributions(ctx context.Context, filter portsrepo.DistributionFilter) ([]domain.Distribution, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepository) FindDetailByID(ctx context.Context, detailID string) (*domain.DistributionDetail, error) {
	args := m.Called(ctx, detailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DistributionDetail), args.Error(1)
}

func (m *MockDistributionRepository) ListPublishedHistory(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoricalAllocation), args.Error(1)
}

func (m *MockDistributionRepository) CreateDistribution(ctx context.Context, d domain.Distribution) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistributionRepository) SaveRevision(ctx context.Context, d domain.Distribution, expectedVersion int64) error {
	return m.Called(ctx, d, expectedVersion).Error(0)
}

func (m *MockDistributionRepository) RecordDecision(ctx context.Context, decided domain.Approval, status domain.DistributionStatus, expectedVersion int64) error {
	return m.Called(ctx, decided, status, expectedVersion).Error(0)
}

func (m *MockDistributionRepository) UpdateDetailPayment(ctx context.Context, detailID string, from, to domain.PaymentStatus, paymentDate *time.Time, reason string) error {
	return m.Called(ctx, detailID, from, to, paymentDate, reason).Error(0)
}

func (m *MockDistributionRepository) IssueVouchers(ctx context.Context, distributionID string, vouchers map[string]string, userID string, at time.Time) error {
	return m.Called(ctx, distributionID, vouchers, userID, at).Error(0)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

var _ portssvc.EventPublisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(_ context.Context, evt domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) topics() []domain.EventTopic {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventTopic, len(p.events))
	for i, e := range p.events {
		out[i] = e.Topic
	}
	return out
}
