package handlers

import (
	"log/slog"

	"github.com/awqaf-platform/waqf_ledger/cmd/docs"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	readiness map[string]ReadinessCheck,
) {
	r.Use(middleware.PrometheusMiddleware())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}

	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/ready", readyHandler(readiness))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	handlers := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)}
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			// Config validation rejects bad rates; this only guards direct callers.
			slog.Error("Rate limiting disabled", slog.String("error", err.Error()))
		} else {
			handlers = append(handlers, middleware.RateLimit(limiter))
		}
	}
	v1 := r.Group("/api/v1", handlers...)

	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal)
	registerBudgetRoutes(v1, service.Budget)
	registerReconciliationRoutes(v1, service.Reconciliation)
	registerFiscalYearRoutes(v1, service.FiscalYear, service.Account)
	registerBeneficiaryRoutes(v1, service.Beneficiary, service.Distribution)
	registerDistributionRoutes(v1, service.Distribution, service.Approval)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
