package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal years
type FiscalYearReaderSvc interface {
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// GetClosureSummary returns the summary committed when the year closed.
	GetClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error)
}

// FiscalYearWriterSvc defines the fiscal year lifecycle
type FiscalYearWriterSvc interface {
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	// ActivateFiscalYear makes the year the single active one.
	ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string) error

	// PreviewClose validates the year and computes its summary without mutation.
	PreviewClose(ctx context.Context, fiscalYearID string) (*domain.ClosePreview, error)

	// Close runs the preview and, unless previewOnly is set, commits the close
	// if the year is unchanged since the preview.
	Close(ctx context.Context, fiscalYearID string, previewOnly bool, userID string) (*domain.CloseResult, error)

	// Publish makes a closed year visible to beneficiaries.
	Publish(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}

// FiscalYearSvcFacade combines all fiscal-year-related service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
