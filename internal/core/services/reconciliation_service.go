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
	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

type reconciliationService struct {
	BaseService
	bankRepo    portsrepo.BankRepositoryFacade
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
}

func NewReconciliationService(
	bankRepo portsrepo.BankRepositoryFacade,
	journalRepo portsrepo.JournalReader,
	accountRepo portsrepo.AccountReader,
	opts ...Option,
) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{bankRepo: bankRepo, journalRepo: journalRepo, accountRepo: accountRepo}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) ImportStatement(ctx context.Context, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error) {
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, apperrors.InvalidInputError("statement period end is before its start")
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, req.BankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidAccountError(req.BankAccountID, "bank account does not exist")
		}
		return nil, fmt.Errorf("failed to load bank account: %w", err)
	}
	if acc.AccountType != domain.Asset || acc.IsHeader {
		return nil, apperrors.InvalidAccountError(acc.AccountID, "bank account must be an asset leaf account")
	}

	now := time.Now().UTC()
	stmt := domain.BankStatement{
		StatementID:    uuid.NewString(),
		BankAccountID:  acc.AccountID,
		StatementDate:  req.StatementDate,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		OpeningBalance: req.OpeningBalance,
		ClosingBalance: req.ClosingBalance,
		Transactions:   make([]domain.BankTransaction, len(req.Transactions)),
		AuditFields:    newAudit(userID, now),
	}
	for i, t := range req.Transactions {
		txn := domain.BankTransaction{
			TransactionID: uuid.NewString(),
			StatementID:   stmt.StatementID,
			TxnDate:       t.TxnDate,
			Description:   t.Description,
			Reference:     t.Reference,
			Direction:     t.Direction,
			Amount:        t.Amount,
		}
		if err := txn.Validate(); err != nil {
			return nil, apperrors.InvalidInputError("transaction %d: %v", i+1, err)
		}
		stmt.Transactions[i] = txn
	}

	if err := s.bankRepo.SaveStatement(ctx, stmt); err != nil {
		s.LogError(ctx, err, "Failed to save bank statement")
		return nil, err
	}
	s.LogInfo(ctx, "Bank statement imported",
		slog.String("statement_id", stmt.StatementID),
		slog.Int("transactions", len(stmt.Transactions)))
	return &stmt, nil
}

func (s *reconciliationService) GetStatement(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	stmt, err := s.bankRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find statement", slog.String("statement_id", statementID))
		}
		return nil, err
	}
	return stmt, nil
}

func (s *reconciliationService) loadForChange(ctx context.Context, transactionID string) (*domain.BankTransaction, *domain.BankStatement, error) {
	txn, err := s.bankRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	stmt, err := s.bankRepo.FindStatementByID(ctx, txn.StatementID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load statement: %w", err)
	}
	if stmt.IsReconciled {
		return nil, nil, apperrors.InvalidTransitionError(stmt.StatementID, "RECONCILED", "MODIFIED")
	}
	return txn, stmt, nil
}

func (s *reconciliationService) MatchTransaction(ctx context.Context, transactionID string, entryID string, userID string) error {
	txn, stmt, err := s.loadForChange(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.IsMatched() {
		return apperrors.ConflictError(transactionID, fmt.Sprintf("transaction already matched to entry %s", txn.MatchedEntryID))
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ReferenceIntegrityError(entryID, "entry does not exist")
		}
		return fmt.Errorf("failed to load entry: %w", err)
	}
	if entry.Status != domain.EntryPosted {
		return apperrors.ReferenceIntegrityError(entryID, fmt.Sprintf("entry is %s, only posted entries can be matched", entry.Status))
	}
	if !entry.TouchesAccount(stmt.BankAccountID) {
		return apperrors.ReferenceIntegrityError(entryID, "entry has no line on bank account "+stmt.BankAccountID)
	}

	if err := s.bankRepo.MatchTransaction(ctx, transactionID, entryID, userID, time.Now().UTC()); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to match transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Bank transaction matched",
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", entryID))
	return nil
}

func (s *reconciliationService) UnmatchTransaction(ctx context.Context, transactionID string, userID string) error {
	txn, _, err := s.loadForChange(ctx, transactionID)
	if err != nil {
		return err
	}
	if !txn.IsMatched() {
		return apperrors.InvalidTransitionError(transactionID, "UNMATCHED", "UNMATCHED")
	}
	if err := s.bankRepo.UnmatchTransaction(ctx, transactionID, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Bank transaction unmatched", slog.String("transaction_id", transactionID))
	return nil
}

// ReconcileStatement reports unmatched lines before any balance discrepancy.
func (s *reconciliationService) ReconcileStatement(ctx context.Context, statementID string, userID string) (*domain.ReconcileResult, error) {
	stmt, err := s.GetStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if stmt.IsReconciled {
		return &domain.ReconcileResult{Reconciled: true}, nil
	}

	check, err := stmt.CheckReconciliation()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindIntegrity, apperrors.CodeReconciliationDiscrepancy, "statement data is invalid", err).WithEntity(statementID)
	}
	if !check.OK() {
		discrepancy := check.Discrepancy
		result := &domain.ReconcileResult{Reconciled: false, Discrepancy: &discrepancy}
		metrics.Reconciliations.WithLabelValues("failed").Inc()
		if len(check.UnmatchedTxnIDs) > 0 {
			return result, apperrors.UnmatchedTransactionsError(statementID, check.UnmatchedTxnIDs)
		}
		return result, apperrors.ReconciliationDiscrepancyError(statementID, discrepancy)
	}

	if err := s.bankRepo.MarkReconciled(ctx, statementID, userID, time.Now().UTC()); err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnmatchedTransactions) {
			metrics.Reconciliations.WithLabelValues("failed").Inc()
			return &domain.ReconcileResult{Reconciled: false}, err
		}
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to mark statement reconciled", slog.String("statement_id", statementID))
		}
		return nil, err
	}
	metrics.Reconciliations.WithLabelValues("reconciled").Inc()
	s.LogInfo(ctx, "Bank statement reconciled", slog.String("statement_id", statementID))
	s.Publish(ctx, domain.TopicBankStatementReconciled, statementID, userID, map[string]any{
		"bankAccountID":  stmt.BankAccountID,
		"closingBalance": stmt.ClosingBalance.String(),
	})
	return &domain.ReconcileResult{Reconciled: true}, nil
}
