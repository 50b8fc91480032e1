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

type distributionService struct {
	BaseService
	distributionRepo portsrepo.DistributionRepositoryFacade
	beneficiaryRepo  portsrepo.BeneficiaryRepositoryFacade
	fiscalYearRepo   portsrepo.FiscalYearReader
	ledger           portsrepo.LedgerReader
	split            domain.SplitConfig
	policy           domain.ApprovalPolicy
}

// NewDistributionService creates a distribution engine using the organisation's
// configured split and approval policy for new computations.
func NewDistributionService(
	distributionRepo portsrepo.DistributionRepositoryFacade,
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade,
	fiscalYearRepo portsrepo.FiscalYearReader,
	ledger portsrepo.LedgerReader,
	split domain.SplitConfig,
	policy domain.ApprovalPolicy,
	opts ...Option,
) portssvc.DistributionSvcFacade {
	svc := &distributionService{
		distributionRepo: distributionRepo,
		beneficiaryRepo:  beneficiaryRepo,
		fiscalYearRepo:   fiscalYearRepo,
		ledger:           ledger,
		split:            split,
		policy:           policy,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

func (s *distributionService) GetDistribution(ctx context.Context, distributionID string) (*domain.Distribution, error) {
	d, err := s.distributionRepo.FindDistributionByID(ctx, distributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find distribution", slog.String("distribution_id", distributionID))
		}
		return nil, err
	}
	return d, nil
}

func (s *distributionService) ListDistributions(ctx context.Context, fiscalYearID string) ([]domain.Distribution, error) {
	list, err := s.distributionRepo.ListDistributions(ctx, portsrepo.DistributionFilter{FiscalYearID: fiscalYearID})
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	if list == nil {
		return []domain.Distribution{}, nil
	}
	return list, nil
}

func (s *distributionService) ListPublishedDistributions(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error) {
	if _, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID); err != nil {
		return nil, err
	}
	rows, err := s.distributionRepo.ListPublishedHistory(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list published history: %w", err)
	}
	if rows == nil {
		return []domain.HistoricalAllocation{}, nil
	}
	return rows, nil
}

// openYear returns the fiscal year if it still accepts distributions.
func (s *distributionService) openYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.IsClosed() {
		return nil, apperrors.PeriodLockedError(fy.FiscalYearID, string(fy.Status))
	}
	return fy, nil
}

func resolvePeriod(fy *domain.FiscalYear, req dto.ComputeDistributionRequest) (domain.DistributionPeriod, error) {
	p := domain.DistributionPeriod{
		FiscalYearID: fy.FiscalYearID,
		PeriodStart:  fy.StartDate,
		PeriodEnd:    fy.EndDate,
	}
	if req.PeriodStart != nil {
		p.PeriodStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		p.PeriodEnd = *req.PeriodEnd
	}
	if !fy.Contains(p.PeriodStart) || !fy.Contains(p.PeriodEnd) {
		return p, apperrors.InvalidInputError("period must lie within fiscal year %s", fy.Name).WithEntity(fy.FiscalYearID)
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return p, apperrors.InvalidInputError("period end precedes period start")
	}
	return p, nil
}

func (s *distributionService) ComputeDistribution(ctx context.Context, req dto.ComputeDistributionRequest, userID string) (*domain.Distribution, error) {
	fy, err := s.openYear(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}
	period, err := resolvePeriod(fy, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.distributionRepo.FindDistributionByPeriod(ctx, period)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		existing = nil
	case err != nil:
		s.LogError(ctx, err, "Failed to look up distribution period", slog.String("fiscal_year_id", fy.FiscalYearID))
		return nil, err
	default:
		if err := checkRevisable(*existing); err != nil {
			return nil, err
		}
	}

	snapshot, err := s.ledger.LedgerSnapshot(ctx, fy.FiscalYearID, domain.DateWindow{Start: period.PeriodStart, End: period.PeriodEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger totals: %w", err)
	}

	if existing == nil {
		return s.create(ctx, period, snapshot, userID)
	}
	if existing.Status == domain.DistributionPending && existing.Snapshot.Equal(snapshot) {
		metrics.DistributionsComputed.WithLabelValues("unchanged").Inc()
		s.LogDebug(ctx, "Distribution unchanged", slog.String("distribution_id", existing.DistributionID))
		return existing, nil
	}
	return s.revise(ctx, *existing, existing.Split, snapshot, userID)
}

func (s *distributionService) Recompute(ctx context.Context, distributionID string, refreshSplit bool, userID string) (*domain.Distribution, error) {
	d, err := s.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if err := checkRevisable(*d); err != nil {
		return nil, err
	}
	if _, err := s.openYear(ctx, d.Period.FiscalYearID); err != nil {
		return nil, err
	}
	snapshot, err := s.ledger.LedgerSnapshot(ctx, d.Period.FiscalYearID, domain.DateWindow{Start: d.Period.PeriodStart, End: d.Period.PeriodEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger totals: %w", err)
	}
	split := d.Split
	if refreshSplit {
		split = s.split
	}
	if d.Status == domain.DistributionPending && d.Snapshot.Equal(snapshot) && splitEqual(d.Split, split) {
		metrics.DistributionsComputed.WithLabelValues("unchanged").Inc()
		return d, nil
	}
	return s.revise(ctx, *d, split, snapshot, userID)
}

// checkRevisable allows a new revision for a rejected distribution or a
// pending one nobody has approved yet.
func checkRevisable(d domain.Distribution) error {
	switch d.Status {
	case domain.DistributionRejected:
		return nil
	case domain.DistributionPending:
		if d.HasGrantedApproval() {
			return apperrors.InvalidTransitionError(d.DistributionID, string(d.Status), "REVISED").
				WithDetails("an approval has already been granted on this revision")
		}
		return nil
	case domain.DistributionApproved:
		return apperrors.InvalidTransitionError(d.DistributionID, string(d.Status), "REVISED")
	}
	return apperrors.InvalidTransitionError(d.DistributionID, string(d.Status), "REVISED")
}

func splitEqual(a, b domain.SplitConfig) bool {
	return a.NazerPercent.Equal(b.NazerPercent) &&
		a.CharityPercent.Equal(b.CharityPercent) &&
		a.CorpusPercent.Equal(b.CorpusPercent)
}

func (s *distributionService) create(ctx context.Context, period domain.DistributionPeriod, snapshot domain.LedgerSnapshot, userID string) (*domain.Distribution, error) {
	now := time.Now().UTC()
	d := domain.Distribution{
		DistributionID: uuid.NewString(),
		Period:         period,
		Revision:       1,
		Status:         domain.DistributionPending,
		AuditFields:    newAudit(userID, now),
	}
	if err := s.fill(ctx, &d, s.split, snapshot, now); err != nil {
		s.recordFailure(ctx, err)
		return nil, err
	}
	if err := s.distributionRepo.CreateDistribution(ctx, d); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to save distribution")
		}
		return nil, err
	}
	s.computed(ctx, d, "created", userID)
	return &d, nil
}

func (s *distributionService) revise(ctx context.Context, prev domain.Distribution, split domain.SplitConfig, snapshot domain.LedgerSnapshot, userID string) (*domain.Distribution, error) {
	now := time.Now().UTC()
	d := domain.Distribution{
		DistributionID: prev.DistributionID,
		Period:         prev.Period,
		Revision:       prev.Revision + 1,
		Status:         domain.DistributionPending,
		AuditFields:    prev.AuditFields,
	}
	d.LastUpdatedAt = now
	d.LastUpdatedBy = userID
	if err := s.fill(ctx, &d, split, snapshot, now); err != nil {
		s.recordFailure(ctx, err)
		return nil, err
	}
	if err := s.distributionRepo.SaveRevision(ctx, d, prev.Version); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to save distribution revision", slog.String("distribution_id", d.DistributionID))
		}
		return nil, err
	}
	d.Version = prev.Version + 1
	// Earlier approvals stay on record for the audit trail.
	d.Approvals = append(append([]domain.Approval{}, prev.Approvals...), d.Approvals...)
	s.computed(ctx, d, "revised", userID)
	return &d, nil
}

// fill computes figures, details and fresh approvals for d's revision.
func (s *distributionService) fill(ctx context.Context, d *domain.Distribution, split domain.SplitConfig, snapshot domain.LedgerSnapshot, now time.Time) error {
	net := snapshot.NetRevenues()
	if net.IsNegative() {
		return apperrors.NegativeDistributableAmountError(d.Period.FiscalYearID, net)
	}
	res := domain.ApplySplit(net, split)

	all, err := s.beneficiaryRepo.ListBeneficiaries(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	eligible := make([]domain.Beneficiary, 0, len(all))
	for _, b := range all {
		if b.IsEligible() {
			eligible = append(eligible, b)
		}
	}
	if len(eligible) == 0 {
		return apperrors.NoEligibleBeneficiariesError()
	}

	allocs, err := domain.Allocate(res.DistributableAmount, eligible)
	if err != nil {
		var leak *domain.ResidualLeakageError
		if errors.As(err, &leak) {
			return apperrors.RoundingLeakageError(d.DistributionID, leak.Residual)
		}
		return fmt.Errorf("failed to allocate distributable amount: %w", err)
	}

	d.TotalRevenues = snapshot.TotalRevenues
	d.TotalExpenses = snapshot.TotalExpenses
	d.NetRevenues = res.NetRevenues
	d.NazerShare = res.NazerShare
	d.WaqifCharity = res.WaqifCharity
	d.WaqfCorpus = res.WaqfCorpus
	d.DistributableAmount = res.DistributableAmount
	d.BeneficiariesCount = len(allocs)
	d.Split = split
	d.Snapshot = snapshot
	d.Details = make([]domain.DistributionDetail, len(allocs))
	for i, a := range allocs {
		d.Details[i] = domain.DistributionDetail{
			DetailID:        uuid.NewString(),
			DistributionID:  d.DistributionID,
			Revision:        d.Revision,
			BeneficiaryID:   a.BeneficiaryID,
			BeneficiaryType: a.BeneficiaryType,
			SharePercentage: a.SharePercentage,
			AllocatedAmount: a.Amount,
			ResidualApplied: a.Residual,
			PaymentStatus:   domain.PaymentPending,
		}
	}
	d.Approvals = s.policy.NewApprovals(d.DistributionID, d.Revision, now, uuid.NewString)

	if err := d.CheckConservation(); err != nil {
		return apperrors.NewAppError(apperrors.KindIntegrity, apperrors.CodeRoundingLeakage, err.Error(), nil).
			WithEntity(d.DistributionID)
	}
	return nil
}

func (s *distributionService) recordFailure(ctx context.Context, err error) {
	label := "error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		label = strings.ToLower(string(appErr.Code))
		s.LogWarn(ctx, err, "Distribution not computed")
	} else {
		s.LogError(ctx, err, "Failed to compute distribution")
	}
	metrics.DistributionsComputed.WithLabelValues(label).Inc()
}

func (s *distributionService) computed(ctx context.Context, d domain.Distribution, outcome, userID string) {
	metrics.DistributionsComputed.WithLabelValues(outcome).Inc()
	s.LogInfo(ctx, "Distribution computed",
		slog.String("distribution_id", d.DistributionID),
		slog.Int("revision", d.Revision),
		slog.String("net_revenues", d.NetRevenues.String()),
		slog.String("distributable", d.DistributableAmount.String()),
		slog.Int("beneficiaries", d.BeneficiariesCount))
	s.Publish(ctx, domain.TopicDistributionComputed, d.DistributionID, userID, map[string]any{
		"fiscalYearID": d.Period.FiscalYearID,
		"revision":     d.Revision,
		"outcome":      outcome,
	})
}

func (s *distributionService) GeneratePaymentVouchers(ctx context.Context, distributionID string, userID string) (*domain.Distribution, error) {
	d, err := s.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if d.Status != domain.DistributionApproved {
		return nil, apperrors.NotPayableError(distributionID, string(d.Status))
	}
	if d.VouchersIssued {
		return d, nil
	}

	short := strings.ToUpper(strings.ReplaceAll(distributionID, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	prefix := fmt.Sprintf("PV-%s-%s", d.Period.PeriodEnd.Format("2006"), short)
	vouchers := make(map[string]string)
	seq := 0
	for _, det := range d.Details {
		if det.Revision != d.Revision || det.PaymentStatus != domain.PaymentPending {
			continue
		}
		seq++
		vouchers[det.DetailID] = fmt.Sprintf("%s-%03d", prefix, seq)
	}
	if err := s.distributionRepo.IssueVouchers(ctx, distributionID, vouchers, userID, time.Now().UTC()); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to issue vouchers", slog.String("distribution_id", distributionID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Payment vouchers issued", slog.String("distribution_id", distributionID), slog.Int("count", len(vouchers)))
	return s.GetDistribution(ctx, distributionID)
}

// payableDetail loads a detail of the current revision of an approved distribution.
func (s *distributionService) payableDetail(ctx context.Context, detailID string, to domain.PaymentStatus) (*domain.DistributionDetail, error) {
	det, err := s.distributionRepo.FindDetailByID(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if !det.PaymentStatus.CanTransitionTo(to) {
		return nil, apperrors.InvalidTransitionError(detailID, string(det.PaymentStatus), string(to))
	}
	if to == domain.PaymentCancelled {
		return det, nil
	}
	d, err := s.GetDistribution(ctx, det.DistributionID)
	if err != nil {
		return nil, err
	}
	if d.Status != domain.DistributionApproved {
		return nil, apperrors.NotPayableError(d.DistributionID, string(d.Status))
	}
	if det.Revision != d.Revision {
		return nil, apperrors.InvalidTransitionError(detailID, "SUPERSEDED", string(to))
	}
	return det, nil
}

func (s *distributionService) MarkDetailPaid(ctx context.Context, detailID string, paidAt time.Time, userID string) (*domain.DistributionDetail, error) {
	if paidAt.IsZero() {
		return nil, apperrors.InvalidInputError("payment date is required")
	}
	det, err := s.payableDetail(ctx, detailID, domain.PaymentPaid)
	if err != nil {
		return nil, err
	}
	paid := paidAt.UTC()
	if err := s.distributionRepo.UpdateDetailPayment(ctx, detailID, domain.PaymentPending, domain.PaymentPaid, &paid, ""); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to mark detail paid", slog.String("detail_id", detailID))
		}
		return nil, err
	}
	det.PaymentStatus = domain.PaymentPaid
	det.PaymentDate = &paid
	s.LogInfo(ctx, "Distribution detail paid",
		slog.String("detail_id", detailID),
		slog.String("distribution_id", det.DistributionID),
		slog.String("user_id", userID))
	return det, nil
}

func (s *distributionService) CancelDetail(ctx context.Context, detailID string, reason string, userID string) (*domain.DistributionDetail, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.InvalidInputError("cancellation reason is required")
	}
	det, err := s.payableDetail(ctx, detailID, domain.PaymentCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.distributionRepo.UpdateDetailPayment(ctx, detailID, domain.PaymentPending, domain.PaymentCancelled, nil, reason); err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			s.LogError(ctx, err, "Failed to cancel detail", slog.String("detail_id", detailID))
		}
		return nil, err
	}
	det.PaymentStatus = domain.PaymentCancelled
	det.CancelReason = reason
	s.LogInfo(ctx, "Distribution detail cancelled",
		slog.String("detail_id", detailID),
		slog.String("user_id", userID))
	return det, nil
}
