package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqaf-platform/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
)

type approvalService struct {
	BaseService
	distributionRepo portsrepo.DistributionRepositoryFacade
	fiscalYearRepo   portsrepo.FiscalYearReader
	ledger           portsrepo.LedgerReader
	policy           domain.ApprovalPolicy
}

func NewApprovalService(
	distributionRepo portsrepo.DistributionRepositoryFacade,
	fiscalYearRepo portsrepo.FiscalYearReader,
	ledger portsrepo.LedgerReader,
	policy domain.ApprovalPolicy,
	opts ...Option,
) portssvc.ApprovalSvcFacade {
	svc := &approvalService{
		distributionRepo: distributionRepo,
		fiscalYearRepo:   fiscalYearRepo,
		ledger:           ledger,
		policy:           policy,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func (s *approvalService) SubmitApproval(ctx context.Context, distributionID string, req dto.SubmitApprovalRequest, actor domain.Actor) (*domain.Distribution, error) {
	role, err := domain.ParseApproverRole(string(req.Role))
	if err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}
	decision, err := domain.ParseApprovalDecision(string(req.Decision))
	if err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}

	d, err := s.distributionRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find distribution", slog.String("distribution_id", distributionID))
		}
		return nil, err
	}
	if d.Status != domain.DistributionPending {
		return nil, apperrors.ApprovalDecidedError(distributionID, string(d.Status))
	}
	if !actor.HasRole(role) {
		return nil, apperrors.ForbiddenError("caller does not hold role " + string(role)).WithEntity(distributionID)
	}

	current := d.CurrentApprovals()
	idx := -1
	for i, a := range current {
		if a.Role == role {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.InvalidInputError("role %s is not a required approval level", role).WithEntity(distributionID)
	}
	target := current[idx]
	if target.Status.IsDecided() {
		return nil, apperrors.ApprovalDecidedError(target.ApprovalID, string(target.Status))
	}
	if err := s.policy.CheckOrder(current, target); err != nil {
		return nil, apperrors.NewAppError(apperrors.KindState, apperrors.CodeApprovalOutOfOrder, err.Error(), nil).
			WithEntity(distributionID)
	}

	// A closed year is final; its distributions can no longer be decided.
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, d.Period.FiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find fiscal year", slog.String("fiscal_year_id", d.Period.FiscalYearID))
		return nil, err
	}
	if fy.IsClosed() {
		return nil, apperrors.PeriodLockedError(fy.FiscalYearID, string(fy.Status))
	}

	if decision == domain.DecisionApprove {
		window := domain.DateWindow{Start: d.Period.PeriodStart, End: d.Period.PeriodEnd}
		snap, err := s.ledger.LedgerSnapshot(ctx, d.Period.FiscalYearID, window)
		if err != nil {
			s.LogError(ctx, err, "Failed to read ledger totals", slog.String("distribution_id", distributionID))
			return nil, err
		}
		if !snap.Equal(d.Snapshot) {
			stale := apperrors.StaleDistributionError(distributionID, snap.NetRevenues().Sub(d.Snapshot.NetRevenues()))
			s.LogWarn(ctx, stale, "Approval refused on stale distribution")
			return nil, stale
		}
	}

	status, err := decision.ResultingStatus()
	if err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}
	now := time.Now().UTC()
	target.Status = status
	target.DecidedBy = actor.UserID
	target.DecidedAt = &now
	target.Note = strings.TrimSpace(req.Note)
	current[idx] = target
	outcome := domain.Outcome(current)

	if err := s.distributionRepo.RecordDecision(ctx, target, outcome, d.Version); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to record approval", slog.String("distribution_id", distributionID))
		}
		return nil, err
	}

	for i := range d.Approvals {
		if d.Approvals[i].ApprovalID == target.ApprovalID {
			d.Approvals[i] = target
		}
	}
	d.Status = outcome
	d.Version++
	if outcome.IsTerminal() {
		d.DecidedAt = &now
	}

	metrics.ApprovalDecisions.WithLabelValues(string(role), string(decision)).Inc()
	s.LogInfo(ctx, "Approval recorded",
		slog.String("distribution_id", distributionID),
		slog.String("role", string(role)),
		slog.String("decision", string(decision)),
		slog.String("status", string(outcome)))
	s.Publish(ctx, domain.TopicDistributionDecided, distributionID, actor.UserID, map[string]any{
		"role":     string(role),
		"decision": string(decision),
		"status":   string(outcome),
		"revision": d.Revision,
	})
	return d, nil
}

func (s *approvalService) ListApprovals(ctx context.Context, distributionID string) ([]domain.Approval, error) {
	d, err := s.distributionRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if d.Approvals == nil {
		return []domain.Approval{}, nil
	}
	return d.Approvals, nil
}
