package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledger      portsrepo.LedgerReader
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledger portsrepo.LedgerReader, opts ...Option) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: accountRepo, ledger: ledger}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	accType := req.AccountType
	if !accType.Valid() {
		return nil, apperrors.InvalidInputError("unknown account type %q", req.AccountType)
	}
	nature := req.Nature
	if nature == "" {
		n, err := accType.DefaultNature()
		if err != nil {
			return nil, apperrors.InvalidInputError("%v", err)
		}
		nature = n
	}
	if !nature.Valid() {
		return nil, apperrors.InvalidInputError("unknown account nature %q", req.Nature)
	}

	code := strings.TrimSpace(req.Code)
	parentID := ""
	parentCode := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.InvalidAccountError(*req.ParentAccountID, "parent account does not exist")
			}
			s.LogError(ctx, err, "Failed to load parent account", slog.String("parent_id", *req.ParentAccountID))
			return nil, fmt.Errorf("failed to load parent account: %w", err)
		}
		switch {
		case !parent.IsHeader:
			return nil, apperrors.InvalidAccountError(parent.AccountID, "parent account must be a header account")
		case !parent.Archival.IsActive():
			return nil, apperrors.InvalidAccountError(parent.AccountID, "parent account is archived")
		case parent.AccountType != accType:
			return nil, apperrors.InvalidAccountError(parent.AccountID, fmt.Sprintf("parent account type %s differs from %s", parent.AccountType, accType))
		}
		parentID = parent.AccountID
		parentCode = parent.Code
	}
	if err := domain.ValidateChildCode(parentCode, code); err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		AccountType:     accType,
		Nature:          nature,
		ParentAccountID: parentID,
		IsHeader:        req.IsHeader,
		Description:     req.Description,
		Archival:        domain.Active(),
		AuditFields:     newAudit(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, includeArchived bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Archival.IsActive() {
		return nil, apperrors.InvalidTransitionError(accountID, string(account.Archival.Status), "UPDATED")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.InvalidInputError("account name cannot be empty")
		}
		account.Name = name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// ArchiveAccount refuses leaves with a non-zero balance and headers with active children.
func (s *accountService) ArchiveAccount(ctx context.Context, accountID string, reason string, userID string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.InvalidInputError("archive reason is required")
	}
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account.IsHeader {
		children, err := s.accountRepo.ListChildren(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to list child accounts: %w", err)
		}
		for _, ch := range children {
			if ch.Archival.IsActive() {
				return apperrors.InvalidTransitionError(accountID, string(account.Archival.Status), string(domain.ArchivalArchived)).
					WithDetails(fmt.Sprintf("child account %s is active", ch.Code))
			}
		}
	} else {
		bal, err := s.GetAccountBalance(ctx, accountID)
		if err != nil {
			return err
		}
		if !bal.Balance.IsZero() {
			return apperrors.InvalidTransitionError(accountID, string(account.Archival.Status), string(domain.ArchivalArchived)).
				WithDelta(bal.Balance).WithDetails("account balance is not zero")
		}
	}

	now := time.Now().UTC()
	next, err := account.Archival.Archive(reason, now, userID)
	if err != nil {
		return apperrors.InvalidTransitionError(accountID, string(account.Archival.Status), string(domain.ArchivalArchived))
	}
	if err := s.accountRepo.ArchiveAccount(ctx, accountID, next); err != nil {
		s.LogError(ctx, err, "Failed to archive account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account archived", slog.String("account_id", accountID))
	return nil
}

// GetAccountBalance derives the balance from posted lines across all years.
func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	totals, err := s.ledger.SumPostedByAccount(ctx, "", nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum posted lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to sum posted lines: %w", err)
	}
	balances, err := domain.ComputeBalances(accounts, totals)
	if err != nil {
		s.LogError(ctx, err, "Chart of accounts is inconsistent")
		return nil, apperrors.NewAppError(apperrors.KindIntegrity, apperrors.CodeInvalidAccount, "chart of accounts is inconsistent", err)
	}
	return &domain.AccountBalance{
		AccountID: account.AccountID,
		Code:      account.Code,
		Balance:   balances[account.AccountID],
		IsHeader:  account.IsHeader,
	}, nil
}

func (s *accountService) GetTrialBalance(ctx context.Context, fiscalYearID string) (*domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	totals, err := s.ledger.SumPostedByAccount(ctx, fiscalYearID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum posted lines: %w", err)
	}
	tb, err := accounting.TrialBalance(fiscalYearID, accounts, totals)
	if err != nil && tb == nil {
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	if err != nil {
		s.LogError(ctx, err, "Trial balance does not balance", slog.String("fiscal_year_id", fiscalYearID))
		return nil, apperrors.RoundingLeakageError(fiscalYearID, tb.TotalDebit.Sub(tb.TotalCredit))
	}
	return tb, nil
}
