package services

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// DistributionReaderSvc defines read operations for distributions
type DistributionReaderSvc interface {
	GetDistribution(ctx context.Context, distributionID string) (*domain.Distribution, error)
	ListDistributions(ctx context.Context, fiscalYearID string) ([]domain.Distribution, error)

	// ListPublishedDistributions returns a beneficiary's allocations from published years only.
	ListPublishedDistributions(ctx context.Context, beneficiaryID string) ([]domain.HistoricalAllocation, error)
}

// DistributionWriterSvc computes distributions and tracks their payment
type DistributionWriterSvc interface {
	// ComputeDistribution creates or revises the distribution of a period.
	ComputeDistribution(ctx context.Context, req dto.ComputeDistributionRequest, userID string) (*domain.Distribution, error)

	// Recompute revises a pending or rejected distribution from the current ledger.
	Recompute(ctx context.Context, distributionID string, refreshSplit bool, userID string) (*domain.Distribution, error)

	// GeneratePaymentVouchers numbers the pending details of an approved distribution.
	GeneratePaymentVouchers(ctx context.Context, distributionID string, userID string) (*domain.Distribution, error)

	MarkDetailPaid(ctx context.Context, detailID string, paidAt time.Time, userID string) (*domain.DistributionDetail, error)
	CancelDetail(ctx context.Context, detailID string, reason string, userID string) (*domain.DistributionDetail, error)
}

// DistributionSvcFacade combines all distribution-related service interfaces
type DistributionSvcFacade interface {
	DistributionReaderSvc
	DistributionWriterSvc
}

// BeneficiarySvcFacade manages the beneficiary registry.
type BeneficiarySvcFacade interface {
	CreateBeneficiary(ctx context.Context, req dto.CreateBeneficiaryRequest, userID string) (*domain.Beneficiary, error)
	GetBeneficiary(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error)

	// UpdateBeneficiaryShare affects future computations only.
	UpdateBeneficiaryShare(ctx context.Context, beneficiaryID string, req dto.UpdateBeneficiaryShareRequest, userID string) (*domain.Beneficiary, error)

	ArchiveBeneficiary(ctx context.Context, beneficiaryID string, reason string, userID string) error
}
