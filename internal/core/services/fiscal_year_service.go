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
	"github.com/shopspring/decimal"
)

type fiscalYearService struct {
	BaseService
	fiscalYearRepo   portsrepo.FiscalYearRepositoryFacade
	journalRepo      portsrepo.JournalRepositoryFacade
	distributionRepo portsrepo.DistributionReader
	zakatRate        decimal.Decimal
	closeTimeout     time.Duration
}

func NewFiscalYearService(
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	distributionRepo portsrepo.DistributionReader,
	zakatRate decimal.Decimal,
	closeTimeout time.Duration,
	opts ...Option,
) portssvc.FiscalYearSvcFacade {
	svc := &fiscalYearService{
		fiscalYearRepo:   fiscalYearRepo,
		journalRepo:      journalRepo,
		distributionRepo: distributionRepo,
		zakatRate:        zakatRate,
		closeTimeout:     closeTimeout,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	if err := domain.ValidateFiscalYearRange(req.StartDate, req.EndDate); err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}
	existing, err := s.fiscalYearRepo.ListFiscalYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	for _, fy := range existing {
		if fy.Contains(req.StartDate) || fy.Contains(req.EndDate) ||
			(!req.StartDate.After(fy.StartDate) && !req.EndDate.Before(fy.EndDate)) {
			return nil, apperrors.InvalidInputError("dates overlap fiscal year %s", fy.Name).WithEntity(fy.FiscalYearID)
		}
	}

	now := time.Now().UTC()
	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.FiscalYearOpen,
		IsActive:     len(existing) == 0,
		AuditFields:  newAudit(userID, now),
	}
	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, fy); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save fiscal year")
		}
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("name", fy.Name))
	return &fy, nil
}

func (s *fiscalYearService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	years, err := s.fiscalYearRepo.ListFiscalYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	if years == nil {
		return []domain.FiscalYear{}, nil
	}
	return years, nil
}

func (s *fiscalYearService) ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string) error {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	if fy.Status != domain.FiscalYearOpen {
		return apperrors.InvalidTransitionError(fiscalYearID, string(fy.Status), "ACTIVE")
	}
	if err := s.fiscalYearRepo.ActivateFiscalYear(ctx, fiscalYearID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to activate fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return err
	}
	s.LogInfo(ctx, "Fiscal year activated", slog.String("fiscal_year_id", fiscalYearID))
	return nil
}

// PreviewClose is read-only and safe to call repeatedly.
func (s *fiscalYearService) PreviewClose(ctx context.Context, fiscalYearID string) (*domain.ClosePreview, error) {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	preview := &domain.ClosePreview{
		FiscalYearID:    fy.FiscalYearID,
		Status:          fy.Status,
		Version:         fy.Version,
		BlockingReasons: []domain.BlockingReason{},
	}
	if fy.Status != domain.FiscalYearOpen {
		preview.BlockingReasons = append(preview.BlockingReasons, domain.BlockingReason{
			Kind:     domain.BlockNotOpen,
			EntityID: fy.FiscalYearID,
			Message:  fmt.Sprintf("fiscal year is %s", fy.Status),
		})
	}

	window := domain.DateWindow{Start: fy.StartDate, End: fy.EndDate}
	snap, err := s.journalRepo.LedgerSnapshot(ctx, fy.FiscalYearID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger totals: %w", err)
	}
	summary := domain.NewClosureSummary(fy.FiscalYearID, snap.TotalRevenues, snap.TotalExpenses, s.zakatRate)
	summary.PostedEntries = snap.PostedEntries
	summary.ComputedAt = time.Now().UTC()

	dists, err := s.distributionRepo.ListDistributions(ctx, portsrepo.DistributionFilter{FiscalYearID: fy.FiscalYearID})
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	for _, d := range dists {
		switch d.Status {
		case domain.DistributionPending:
			preview.BlockingReasons = append(preview.BlockingReasons, domain.BlockingReason{
				Kind:     domain.BlockPendingDistribution,
				EntityID: d.DistributionID,
				Message:  "distribution awaits approval",
			})
		case domain.DistributionApproved:
			summary.AddApprovedDistribution(d)
		case domain.DistributionRejected:
		}
	}

	drafts, err := s.journalRepo.CountEntriesByStatus(ctx, fy.FiscalYearID, domain.EntryDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to count draft entries: %w", err)
	}
	if drafts > 0 {
		preview.BlockingReasons = append(preview.BlockingReasons, domain.BlockingReason{
			Kind:    domain.BlockDraftEntries,
			Message: fmt.Sprintf("%d draft entries must be posted or discarded", drafts),
		})
	}

	unbalanced, err := s.journalRepo.FindUnbalancedEntries(ctx, fy.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to check entry balance: %w", err)
	}
	for _, id := range unbalanced {
		preview.BlockingReasons = append(preview.BlockingReasons, domain.BlockingReason{
			Kind:     domain.BlockUnbalancedEntry,
			EntityID: id,
			Message:  "posted entry does not balance",
		})
	}

	preview.Summary = summary
	preview.CanClose = len(preview.BlockingReasons) == 0
	return preview, nil
}

// Close commits only if the fiscal year version observed by the preview is
// unchanged. Any failure, including the timeout, leaves the year untouched.
func (s *fiscalYearService) Close(ctx context.Context, fiscalYearID string, previewOnly bool, userID string) (*domain.CloseResult, error) {
	if s.closeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.closeTimeout)
		defer cancel()
	}

	preview, err := s.PreviewClose(ctx, fiscalYearID)
	if err != nil {
		if s.timedOut(ctx, err) {
			s.LogError(ctx, err, "Close preview timed out", slog.String("fiscal_year_id", fiscalYearID))
			return nil, apperrors.CloseTimeoutError(fiscalYearID, s.closeTimeout, err)
		}
		return nil, err
	}
	result := &domain.CloseResult{Closed: false, Preview: *preview}
	if previewOnly {
		s.LogInfo(ctx, "Close previewed", slog.String("fiscal_year_id", fiscalYearID), slog.Bool("can_close", preview.CanClose))
		return result, nil
	}
	if preview.Status != domain.FiscalYearOpen {
		return result, apperrors.InvalidTransitionError(fiscalYearID, string(preview.Status), string(domain.FiscalYearClosed))
	}
	if !preview.CanClose {
		reasons := make([]string, len(preview.BlockingReasons))
		for i, r := range preview.BlockingReasons {
			reasons[i] = r.String()
		}
		return result, apperrors.CloseBlockedError(fiscalYearID, reasons)
	}

	now := time.Now().UTC()
	err = s.fiscalYearRepo.CommitClose(ctx, fiscalYearID, preview.Version, preview.Summary, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.CloseConflicts.Inc()
			s.LogWarn(ctx, err, "Close lost to a concurrent change", slog.String("fiscal_year_id", fiscalYearID))
			return nil, err
		}
		if s.timedOut(ctx, err) {
			s.LogError(ctx, err, "Close timed out", slog.String("fiscal_year_id", fiscalYearID))
			return nil, apperrors.CloseTimeoutError(fiscalYearID, s.closeTimeout, err)
		}
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to commit close", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}

	result.Closed = true
	result.Preview.Status = domain.FiscalYearClosed
	metrics.FiscalYearTransitions.WithLabelValues(string(domain.FiscalYearClosed)).Inc()
	s.LogInfo(ctx, "Fiscal year closed",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("net_income", preview.Summary.NetIncome.String()),
		slog.String("zakat_due", preview.Summary.ZakatDue.String()))
	s.BaseService.Publish(ctx, domain.TopicFiscalYearClosed, fiscalYearID, userID, map[string]any{
		"netIncome":            preview.Summary.NetIncome.String(),
		"corpusCarriedForward": preview.Summary.CorpusCarriedForward.String(),
	})
	return result, nil
}

// timedOut covers drivers that report a cancelled query without wrapping the
// context error.
func (s *fiscalYearService) timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func (s *fiscalYearService) Publish(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if !fy.Status.CanTransitionTo(domain.FiscalYearPublished) {
		return nil, apperrors.InvalidTransitionError(fiscalYearID, string(fy.Status), string(domain.FiscalYearPublished))
	}
	now := time.Now().UTC()
	if err := s.fiscalYearRepo.Publish(ctx, fiscalYearID, userID, now); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to publish fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	fy.Status = domain.FiscalYearPublished
	fy.PublishedAt = &now
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = userID

	metrics.FiscalYearTransitions.WithLabelValues(string(domain.FiscalYearPublished)).Inc()
	s.LogInfo(ctx, "Fiscal year published", slog.String("fiscal_year_id", fiscalYearID))
	s.BaseService.Publish(ctx, domain.TopicFiscalYearPublished, fiscalYearID, userID, nil)
	return fy, nil
}

func (s *fiscalYearService) GetClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error) {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if !fy.IsClosed() {
		return nil, apperrors.InvalidTransitionError(fiscalYearID, string(fy.Status), "SUMMARISED").
			WithDetails("closure summary exists only for closed years")
	}
	return s.fiscalYearRepo.FindClosureSummary(ctx, fiscalYearID)
}
