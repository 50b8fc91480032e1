package repositories

import (
	"context"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

type FiscalYearReader interface {
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearByDate returns the year whose range contains date.
	FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// ListFiscalYears returns all years ordered by start date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	FindClosureSummary(ctx context.Context, fiscalYearID string) (*domain.ClosureSummary, error)
}

type FiscalYearWriter interface {
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error

	// ActivateFiscalYear makes the year the single active one.
	ActivateFiscalYear(ctx context.Context, fiscalYearID string, userID string, at time.Time) error

	// CommitClose flips an open year to closed only if its version still equals
	// expectedVersion, and stores the summary in the same transaction. A lost
	// race yields a conflict error; a pending distribution yields a state error.
	CommitClose(ctx context.Context, fiscalYearID string, expectedVersion int64, summary domain.ClosureSummary, userID string, at time.Time) error

	// Publish flips a closed year to published.
	Publish(ctx context.Context, fiscalYearID string, userID string, at time.Time) error
}

type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
