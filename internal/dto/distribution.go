package dto

import (
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeDistributionRequest identifies the period to distribute. Missing
// dates default to the fiscal year bounds.
type ComputeDistributionRequest struct {
	FiscalYearID string     `json:"fiscalYearID" binding:"required"`
	PeriodStart  *time.Time `json:"periodStart"`
	PeriodEnd    *time.Time `json:"periodEnd"`
}

// RecomputeDistributionRequest controls whether the latest configured split is used.
type RecomputeDistributionRequest struct {
	RefreshSplit bool `json:"refreshSplit"`
}

// SubmitApprovalRequest is an approver's decision.
type SubmitApprovalRequest struct {
	Role     domain.ApproverRole     `json:"role" binding:"required"`
	Decision domain.ApprovalDecision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Note     string                  `json:"note"`
}

// MarkPaidRequest records a payout.
type MarkPaidRequest struct {
	PaidAt time.Time `json:"paidAt" binding:"required"`
}

// CancelDetailRequest soft-cancels a detail line.
type CancelDetailRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateBeneficiaryRequest registers a beneficiary.
type CreateBeneficiaryRequest struct {
	Name            string                 `json:"name" binding:"required"`
	BeneficiaryType domain.BeneficiaryType `json:"beneficiaryType" binding:"required,oneof=FAMILY CHARITY INSTITUTION INDIVIDUAL"`
	SharePercentage decimal.Decimal        `json:"sharePercentage"`
}

// UpdateBeneficiaryShareRequest changes a beneficiary's share for future distributions.
type UpdateBeneficiaryShareRequest struct {
	SharePercentage decimal.Decimal `json:"sharePercentage"`
}
