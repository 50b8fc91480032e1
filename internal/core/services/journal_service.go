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
	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

type journalService struct {
	BaseService
	journalRepo    portsrepo.JournalRepositoryFacade
	accountRepo    portsrepo.AccountReader
	fiscalYearRepo portsrepo.FiscalYearReader
}

// NewJournalService creates the journal engine.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	fiscalYearRepo portsrepo.FiscalYearReader,
	opts ...Option,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:    journalRepo,
		accountRepo:    accountRepo,
		fiscalYearRepo: fiscalYearRepo,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) buildEntry(req dto.CreateJournalEntryRequest, userID string, now time.Time) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   req.EntryDate,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.EntryDraft,
		Reference:   req.Reference,
		Lines:       make([]domain.JournalLine, len(req.Lines)),
		AuditFields: newAudit(userID, now),
	}
	for i, l := range req.Lines {
		entry.Lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   l.AccountID,
			LineNumber:  i + 1,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return entry
}

// checkShape validates each line in isolation.
func checkShape(entry domain.JournalEntry) error {
	if len(entry.Lines) == 0 {
		return apperrors.InvalidLineError(0, "entry has no lines")
	}
	for _, l := range entry.Lines {
		if err := l.ValidateShape(); err != nil {
			var shapeErr *domain.LineShapeError
			if errors.As(err, &shapeErr) {
				return apperrors.InvalidLineError(shapeErr.LineNumber, shapeErr.Reason)
			}
			return apperrors.InvalidLineError(l.LineNumber, err.Error())
		}
	}
	return nil
}

// resolveFiscalYear finds the open year containing the entry date.
func (s *journalService) resolveFiscalYear(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(apperrors.KindValidation, apperrors.CodeClosedPeriod,
				fmt.Sprintf("no fiscal year covers %s", date.Format(time.DateOnly)), nil)
		}
		return nil, fmt.Errorf("failed to resolve fiscal year: %w", err)
	}
	if !fy.Status.AcceptsPostings() {
		return nil, apperrors.ClosedPeriodError(fy.FiscalYearID, string(fy.Status))
	}
	return fy, nil
}

// validateForPosting runs every check an entry must pass before it is posted,
// in order: line shape, balance, accounts, fiscal year.
func (s *journalService) validateForPosting(ctx context.Context, entry *domain.JournalEntry) error {
	if err := checkShape(*entry); err != nil {
		return err
	}
	if len(entry.Lines) < 2 {
		return apperrors.InvalidLineError(1, "a balanced entry needs at least two lines")
	}
	if delta := entry.Imbalance(); !delta.IsZero() {
		return apperrors.UnbalancedEntryError(entry.EntryID, delta)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.AccountIDs())
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range entry.AccountIDs() {
		acc, ok := accounts[id]
		switch {
		case !ok:
			return apperrors.InvalidAccountError(id, "account does not exist")
		case acc.IsHeader:
			return apperrors.InvalidAccountError(id, "header accounts cannot receive postings")
		case !acc.Archival.IsActive():
			return apperrors.InvalidAccountError(id, "account is archived")
		}
	}

	fy, err := s.resolveFiscalYear(ctx, entry.EntryDate)
	if err != nil {
		return err
	}
	entry.FiscalYearID = fy.FiscalYearID
	return nil
}

func (s *journalService) post(ctx context.Context, entry domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	if err := s.validateForPosting(ctx, &entry); err != nil {
		s.recordRejection(ctx, err, entry.EntryID)
		return nil, err
	}
	posted, err := s.journalRepo.PostEntry(ctx, entry)
	if err != nil {
		s.recordRejection(ctx, err, entry.EntryID)
		return nil, err
	}
	metrics.JournalEntriesPosted.Inc()
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.Int64("entry_number", posted.EntryNumber),
		slog.String("fiscal_year_id", posted.FiscalYearID))
	s.Publish(ctx, domain.TopicJournalPosted, posted.EntryID, userID, map[string]any{
		"fiscalYearID": posted.FiscalYearID,
		"entryNumber":  posted.EntryNumber,
	})
	return posted, nil
}

func (s *journalService) recordRejection(ctx context.Context, err error, entryID string) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		metrics.JournalRejections.WithLabelValues(string(appErr.Code)).Inc()
		s.LogWarn(ctx, err, "Journal entry rejected", slog.String("entry_id", entryID))
		return
	}
	s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
}

func (s *journalService) PostJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return s.post(ctx, s.buildEntry(req, userID, time.Now().UTC()), userID)
}

func (s *journalService) CreateDraft(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry := s.buildEntry(req, userID, time.Now().UTC())
	if err := checkShape(entry); err != nil {
		return nil, err
	}
	fy, err := s.resolveFiscalYear(ctx, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	entry.FiscalYearID = fy.FiscalYearID

	if err := s.journalRepo.SaveDraft(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save draft", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// PostDraft leaves the stored draft untouched when validation fails.
func (s *journalService) PostDraft(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanTransitionTo(domain.EntryPosted) {
		return nil, apperrors.InvalidTransitionError(entryID, string(entry.Status), string(domain.EntryPosted))
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID
	return s.post(ctx, *entry, userID)
}

// CancelEntry never edits the original lines; it posts a reversal dated on
// the original entry date so both land in the same fiscal year.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.InvalidInputError("cancellation reason is required")
	}
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ReferenceIntegrityError(entryID, "entry does not exist")
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if !original.Status.CanTransitionTo(domain.EntryCancelled) {
		return nil, apperrors.ReferenceIntegrityError(entryID, fmt.Sprintf("entry is %s, only posted entries can be cancelled", original.Status))
	}
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, original.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fiscal year: %w", err)
	}
	if !fy.Status.AcceptsPostings() {
		return nil, apperrors.ClosedPeriodError(fy.FiscalYearID, string(fy.Status))
	}

	now := time.Now().UTC()
	reversal := original.BuildReversal(uuid.NewString(), original.EntryDate, uuid.NewString)
	reversal.AuditFields = newAudit(userID, now)

	posted, err := s.journalRepo.CancelEntry(ctx, entryID, reversal, reason, userID, now)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to cancel entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	metrics.JournalEntriesPosted.Inc()
	s.LogInfo(ctx, "Journal entry cancelled",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", posted.EntryID))
	s.Publish(ctx, domain.TopicJournalCancelled, entryID, userID, map[string]any{
		"reversalID":   posted.EntryID,
		"fiscalYearID": posted.FiscalYearID,
	})
	return posted, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := portsrepo.ListEntriesFilter{
		FiscalYearID: params.FiscalYearID,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Status != "" {
		st, err := domain.ParseEntryStatus(params.Status)
		if err != nil {
			return nil, apperrors.InvalidInputError("%v", err)
		}
		filter.Status = &st
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list entries", slog.String("fiscal_year_id", params.FiscalYearID))
		}
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: next,
	}, nil
}
