package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	BaseService
	budgetRepo     portsrepo.BudgetRepositoryFacade
	accountRepo    portsrepo.AccountReader
	fiscalYearRepo portsrepo.FiscalYearReader
	ledger         portsrepo.LedgerReader
}

func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	fiscalYearRepo portsrepo.FiscalYearReader,
	ledger portsrepo.LedgerReader,
	opts ...Option,
) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		budgetRepo:     budgetRepo,
		accountRepo:    accountRepo,
		fiscalYearRepo: fiscalYearRepo,
		ledger:         ledger,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) SetBudget(ctx context.Context, req dto.SetBudgetRequest, userID string) (*domain.Budget, error) {
	if !req.PeriodType.Valid() {
		return nil, apperrors.InvalidInputError("unknown period type %q", req.PeriodType)
	}
	if req.BudgetedAmount.IsNegative() {
		return nil, apperrors.InvalidInputError("budgeted amount cannot be negative")
	}
	if !req.BudgetedAmount.Equal(domain.RoundMoney(req.BudgetedAmount)) {
		return nil, apperrors.InvalidInputError("budgeted amount is finer than the smallest currency unit")
	}

	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.PeriodWindow(*fy, req.PeriodType, req.PeriodNumber); err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidAccountError(req.AccountID, "account does not exist")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !acc.Archival.IsActive() {
		return nil, apperrors.InvalidAccountError(acc.AccountID, "account is archived")
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		AccountID:      acc.AccountID,
		FiscalYearID:   fy.FiscalYearID,
		PeriodType:     req.PeriodType,
		PeriodNumber:   req.PeriodNumber,
		BudgetedAmount: req.BudgetedAmount,
		Notes:          req.Notes,
		AuditFields:    newAudit(userID, now),
	}
	saved, err := s.budgetRepo.UpsertBudget(ctx, budget)
	if err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("account_id", acc.AccountID))
		return nil, err
	}
	s.LogInfo(ctx, "Budget set",
		slog.String("budget_id", saved.BudgetID),
		slog.String("account_id", acc.AccountID),
		slog.String("period", fmt.Sprintf("%s/%d", req.PeriodType, req.PeriodNumber)))
	return saved, nil
}

// GetBudgetReport is read-only on the ledger. Actuals use the account's
// nature-signed movement; header accounts aggregate their subtree.
func (s *budgetService) GetBudgetReport(ctx context.Context, fiscalYearID string) ([]domain.BudgetVariance, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return []domain.BudgetVariance{}, nil
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	// Budget lines share windows, so sum each window once.
	balancesByWindow := make(map[domain.DateWindow]map[string]decimal.Decimal)
	out := make([]domain.BudgetVariance, 0, len(budgets))
	for _, b := range budgets {
		w, err := domain.PeriodWindow(*fy, b.PeriodType, b.PeriodNumber)
		if err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.BudgetID, err)
		}
		balances, ok := balancesByWindow[w]
		if !ok {
			totals, err := s.ledger.SumPostedByAccount(ctx, fiscalYearID, &w)
			if err != nil {
				return nil, fmt.Errorf("failed to sum posted lines: %w", err)
			}
			balances, err = domain.ComputeBalances(accounts, totals)
			if err != nil {
				return nil, apperrors.NewAppError(apperrors.KindIntegrity, apperrors.CodeInvalidAccount, "chart of accounts is inconsistent", err)
			}
			balancesByWindow[w] = balances
		}
		acc, ok := byID[b.AccountID]
		if !ok {
			return nil, apperrors.ReferenceIntegrityError(b.BudgetID, "budget references a missing account")
		}
		out = append(out, domain.NewBudgetVariance(b, acc, w, balances[acc.AccountID]))
	}
	return out, nil
}
