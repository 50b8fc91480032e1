package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/adapters/database/pgsql"
	"github.com/awqaf-platform/waqf_ledger/internal/adapters/events"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/core/services"
	"github.com/awqaf-platform/waqf_ledger/internal/jobs"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/config"
	"github.com/awqaf-platform/waqf_ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// waqf_autoclose closes fiscal years whose end date has passed on a cron
// schedule. With AUTOCLOSE_PREVIEW_ONLY set it only reports what blocks them.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("component", "autoclose"))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := domain.SetMoneyScale(cfg.CurrencyScale); err != nil {
		logger.Error("Invalid currency scale", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: 4, ConnectTimeout: 10 * time.Second})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	hub := events.NewHub()
	defer hub.Close()
	if cfg.RedisURL != "" {
		if rdb, err := events.NewRedisClient(ctx, cfg.RedisURL); err != nil {
			logger.Warn("Redis unavailable, close notifications stay in-process", slog.String("error", err.Error()))
		} else {
			detach := events.NewRedisForwarder(rdb).Attach(hub)
			defer func() {
				detach()
				_ = rdb.Close()
			}()
		}
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), hub)
	closer := jobs.NewAutoCloser(serviceContainer.FiscalYear, cfg.AutoClosePreviewOnly)

	scheduler := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = scheduler.AddFunc(cfg.AutoCloseSchedule, func() {
		runLogger := logger.With(slog.String("run_id", uuid.NewString()))
		runCtx := middleware.WithLogger(ctx, runLogger)
		summary, err := closer.Run(runCtx)
		if err != nil {
			runLogger.Error("Auto-close run failed", slog.String("error", err.Error()))
			return
		}
		runLogger.Info("Auto-close run finished",
			slog.Bool("preview_only", cfg.AutoClosePreviewOnly),
			slog.Int("due", summary.Due),
			slog.Int("closed", summary.Closed),
			slog.Int("blocked", summary.Blocked),
			slog.Int("failed", summary.Failed))
	})
	if err != nil {
		logger.Error("Invalid auto-close schedule", slog.String("schedule", cfg.AutoCloseSchedule), slog.String("error", err.Error()))
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("Auto-close scheduler started", slog.String("schedule", cfg.AutoCloseSchedule))

	<-ctx.Done()
	logger.Info("Stopping auto-close scheduler")
	<-scheduler.Stop().Done()
}
