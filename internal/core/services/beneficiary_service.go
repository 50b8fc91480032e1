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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type beneficiaryService struct {
	BaseService
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
}

func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade, opts ...Option) portssvc.BeneficiarySvcFacade {
	svc := &beneficiaryService{beneficiaryRepo: beneficiaryRepo}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

func validateShare(share decimal.Decimal) error {
	if share.IsNegative() {
		return apperrors.InvalidInputError("share percentage must not be negative")
	}
	if share.GreaterThan(decimal.NewFromInt(100)) {
		return apperrors.InvalidInputError("share percentage must not exceed 100")
	}
	return nil
}

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, req dto.CreateBeneficiaryRequest, userID string) (*domain.Beneficiary, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.InvalidInputError("beneficiary name is required")
	}
	bType, err := domain.ParseBeneficiaryType(string(req.BeneficiaryType))
	if err != nil {
		return nil, apperrors.InvalidInputError("%v", err)
	}
	if err := validateShare(req.SharePercentage); err != nil {
		return nil, err
	}

	b := domain.Beneficiary{
		BeneficiaryID:   uuid.NewString(),
		Name:            name,
		BeneficiaryType: bType,
		SharePercentage: req.SharePercentage,
		Archival:        domain.Active(),
		AuditFields:     newAudit(userID, time.Now().UTC()),
	}
	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, b); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save beneficiary")
		}
		return nil, err
	}
	s.LogInfo(ctx, "Beneficiary created", slog.String("beneficiary_id", b.BeneficiaryID))
	return &b, nil
}

func (s *beneficiaryService) GetBeneficiary(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	b, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find beneficiary", slog.String("beneficiary_id", beneficiaryID))
		}
		return nil, err
	}
	return b, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, includeArchived bool) ([]domain.Beneficiary, error) {
	list, err := s.beneficiaryRepo.ListBeneficiaries(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	if list == nil {
		return []domain.Beneficiary{}, nil
	}
	return list, nil
}

func (s *beneficiaryService) UpdateBeneficiaryShare(ctx context.Context, beneficiaryID string, req dto.UpdateBeneficiaryShareRequest, userID string) (*domain.Beneficiary, error) {
	if err := validateShare(req.SharePercentage); err != nil {
		return nil, err
	}
	b, err := s.GetBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if !b.Archival.IsActive() {
		return nil, apperrors.InvalidTransitionError(beneficiaryID, string(b.Archival.Status), "UPDATED")
	}
	b.SharePercentage = req.SharePercentage
	b.LastUpdatedAt = time.Now().UTC()
	b.LastUpdatedBy = userID
	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, *b); err != nil {
		s.LogError(ctx, err, "Failed to update beneficiary", slog.String("beneficiary_id", beneficiaryID))
		return nil, err
	}
	s.LogInfo(ctx, "Beneficiary share updated",
		slog.String("beneficiary_id", beneficiaryID),
		slog.String("share", b.SharePercentage.String()))
	return b, nil
}

func (s *beneficiaryService) ArchiveBeneficiary(ctx context.Context, beneficiaryID string, reason string, userID string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.InvalidInputError("archive reason is required")
	}
	b, err := s.GetBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return err
	}
	state, err := b.Archival.Archive(reason, time.Now().UTC(), userID)
	if err != nil {
		return apperrors.InvalidTransitionError(beneficiaryID, string(b.Archival.Status), string(domain.ArchivalArchived)).
			WithDetails(err.Error())
	}
	if err := s.beneficiaryRepo.ArchiveBeneficiary(ctx, beneficiaryID, state); err != nil {
		s.LogError(ctx, err, "Failed to archive beneficiary", slog.String("beneficiary_id", beneficiaryID))
		return err
	}
	s.LogInfo(ctx, "Beneficiary archived", slog.String("beneficiary_id", beneficiaryID))
	return nil
}
