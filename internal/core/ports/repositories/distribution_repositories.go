package repositories

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

// BeneficiaryRepositoryFacade persists the beneficiary registry.
type BeneficiaryRepositoryFacade interface {
	SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error
	UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error)
	ArchiveBeneficiary(ctx context.Context, beneficiaryID string, state domain.ArchivalState) error
}

// DistributionFilter narrows a distribution listing.
type DistributionFilter struct {
	FiscalYearID string
	Status       *domain.DistributionStatus
}

type DistributionReader interface {
	// FindDistributionByID loads the distribution with all details and approvals.
	FindDistributionByID(ctx context.Context, distributionID string) (*domain.Distribution, error)

	// FindDistributionByPeriod returns the row for the period, or ErrNotFound.
	FindDistributionByPeriod(ctx context.Context, period domain.DistributionPeriod) (*domain.Distribution, error)

	// ListDistributions returns headers only, ordered by period start.
	ListDistributions(ctx context.Context, filter DistributionFilter) ([]domain.Distribution, error)

	FindDetailByID(ctx context.Context, detailID string) (*domain.DistributionDetail, error)

	// ListPublishedHistory returns a beneficiary's allocations from published years.
	ListPublishedHistory(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error)
}

type DistributionWriter interface {
	// CreateDistribution inserts the header, details and approvals atomically.
	// A concurrent insert for the same period yields a conflict error.
	CreateDistribution(ctx context.Context, d domain.Distribution) error

	// SaveRevision replaces the figures of an existing distribution with a new
	// revision if its version still equals expectedVersion. Pending details of
	// earlier revisions are soft-cancelled; earlier approvals are kept.
	SaveRevision(ctx context.Context, d domain.Distribution, expectedVersion int64) error

	// RecordDecision writes one approval decision and the resulting
	// distribution status if the version is unchanged and the approval is still pending.
	RecordDecision(ctx context.Context, decided domain.Approval, status domain.DistributionStatus, expectedVersion int64) error

	// UpdateDetailPayment moves a detail from one payment status to another.
	UpdateDetailPayment(ctx context.Context, detailID string, from, to domain.PaymentStatus, paymentDate *time.Time, reason string) error

	// IssueVouchers assigns voucher numbers to the current revision's pending details.
	IssueVouchers(ctx context.Context, distributionID string, vouchers map[string]string, userID string, at time.Time) error
}

type DistributionRepositoryFacade interface {
	DistributionReader
	DistributionWriter
}
