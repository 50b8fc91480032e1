package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// ApprovalSvcFacade drives the multi-level approval of distributions.
type ApprovalSvcFacade interface {
	// SubmitApproval records one role's decision on the current revision and
	// returns the distribution with its resulting status.
	SubmitApproval(ctx context.Context, distributionID string, req dto.SubmitApprovalRequest, actor domain.Actor) (*domain.Distribution, error)

	// ListApprovals returns the approval records of every revision.
	ListApprovals(ctx context.Context, distributionID string) ([]domain.Approval, error)
}
