package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/adapters/database/pgsql"
	"github.com/awqaf-platform/waqf_ledger/internal/adapters/events"
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/core/services"
	"github.com/awqaf-platform/waqf_ledger/internal/handlers"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/config"
	"github.com/awqaf-platform/waqf_ledger/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Waqf Ledger API
// @version 1.0
// @description Double-entry ledger, fiscal year lifecycle and beneficiary distributions for a waqf.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
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

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{ConnectTimeout: 10 * time.Second})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hub := events.NewHub()
	defer hub.Close()
	if cfg.RedisURL != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// Notifications are best effort; the ledger keeps serving without them.
			logger.Warn("Redis unavailable, change notifications stay in-process", slog.String("error", err.Error()))
		} else {
			detach := events.NewRedisForwarder(rdb).Attach(hub)
			defer func() {
				detach()
				_ = rdb.Close()
			}()
			logger.Info("Forwarding change notifications to Redis")
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, hub)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	readiness := map[string]handlers.ReadinessCheck{}
	if cfg.EnableDBCheck {
		readiness["database"] = dbPool.Ping
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, readiness)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.CloseTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
