package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/apperrors"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
)

// AutoCloseActor is recorded as the closing user of scheduled closes.
const AutoCloseActor = "system:autoclose"

// AutoCloser closes open fiscal years whose end date has passed.
type AutoCloser struct {
	fiscalYears portssvc.FiscalYearSvcFacade
	previewOnly bool
	now         func() time.Time
}

// AutoCloseSummary counts the outcome of one run.
type AutoCloseSummary struct {
	Due     int
	Closed  int
	Blocked int
	Failed  int
}

func NewAutoCloser(fiscalYears portssvc.FiscalYearSvcFacade, previewOnly bool) *AutoCloser {
	return &AutoCloser{fiscalYears: fiscalYears, previewOnly: previewOnly, now: time.Now}
}

// Run checks every open year once. A failure on one year does not stop the others.
func (a *AutoCloser) Run(ctx context.Context) (AutoCloseSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var summary AutoCloseSummary

	years, err := a.fiscalYears.ListFiscalYears(ctx)
	if err != nil {
		return summary, err
	}

	now := a.now()
	for _, fy := range years {
		if fy.Status != domain.FiscalYearOpen || !fy.HasEnded(now) {
			continue
		}
		summary.Due++
		yearLogger := logger.With(slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("name", fy.Name))

		result, err := a.fiscalYears.Close(ctx, fy.FiscalYearID, a.previewOnly, AutoCloseActor)
		switch {
		case err == nil && result.Closed:
			summary.Closed++
			yearLogger.Info("Fiscal year closed by schedule")
		case err == nil:
			if !result.Preview.CanClose {
				summary.Blocked++
			}
			yearLogger.Info("Fiscal year close previewed",
				slog.Bool("can_close", result.Preview.CanClose),
				slog.Any("blocking_reasons", reasonStrings(result.Preview.BlockingReasons)))
		case apperrors.HasCode(err, apperrors.CodeCloseBlocked):
			summary.Blocked++
			details := []string(nil)
			if appErr, ok := apperrors.AsAppError(err); ok {
				details = appErr.Details
			}
			yearLogger.Warn("Fiscal year due for close is blocked", slog.Any("blocking_reasons", details))
		default:
			summary.Failed++
			yearLogger.Error("Scheduled close failed", slog.String("error", err.Error()))
		}
	}
	return summary, nil
}

func reasonStrings(reasons []domain.BlockingReason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.String()
	}
	return out
}
