package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// DistributionConfig holds the organisation's revenue split percentages.
type DistributionConfig struct {
	NazerPercent   string `validate:"required,percent"`
	CharityPercent string `validate:"required,percent"`
	CorpusPercent  string `validate:"required,percent"`
}

// ApprovalConfig lists the required approval roles in level order.
type ApprovalConfig struct {
	Roles []string `validate:"min=1,unique,dive,oneof=ACCOUNTANT NAZER AUDITOR BOARD"`
	Mode  string   `validate:"oneof=SEQUENTIAL PARALLEL"`
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string `validate:"required"`
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string `validate:"required"`
	JWTIssuer          string
	MigrationsPath     string `validate:"required"`
	RedisURL           string // forwarding of change notifications is disabled when empty
	RateLimit          string `validate:"required,ratelimit"` // ulule formatted, e.g. "100-M"
	CORSAllowedOrigins []string

	Distribution     DistributionConfig
	ZakatRatePercent string `validate:"required,percent"`
	Approval         ApprovalConfig
	CurrencyScale    int `validate:"min=0,max=4"`

	CloseTimeout         time.Duration `validate:"gt=0"`
	AutoCloseSchedule    string        `validate:"required,cronspec"`
	AutoClosePreviewOnly bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "waqf-ledger")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DISTRIBUTION_NAZER_PERCENT", "10")
	viper.SetDefault("DISTRIBUTION_CHARITY_PERCENT", "20")
	viper.SetDefault("DISTRIBUTION_CORPUS_PERCENT", "10")
	viper.SetDefault("ZAKAT_RATE_PERCENT", "2.5")
	viper.SetDefault("APPROVAL_ROLES", "accountant,nazer")
	viper.SetDefault("APPROVAL_MODE", "sequential")
	viper.SetDefault("CURRENCY_SCALE", 2)
	viper.SetDefault("CLOSE_TIMEOUT", "30s")
	viper.SetDefault("AUTOCLOSE_SCHEDULE", "0 2 * * *")
	viper.SetDefault("AUTOCLOSE_PREVIEW_ONLY", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		RedisURL:           viper.GetString("REDIS_URL"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS"), false),
		Distribution: DistributionConfig{
			NazerPercent:   viper.GetString("DISTRIBUTION_NAZER_PERCENT"),
			CharityPercent: viper.GetString("DISTRIBUTION_CHARITY_PERCENT"),
			CorpusPercent:  viper.GetString("DISTRIBUTION_CORPUS_PERCENT"),
		},
		ZakatRatePercent: viper.GetString("ZAKAT_RATE_PERCENT"),
		Approval: ApprovalConfig{
			Roles: splitList(viper.GetString("APPROVAL_ROLES"), true),
			Mode:  strings.ToUpper(strings.TrimSpace(viper.GetString("APPROVAL_MODE"))),
		},
		CurrencyScale:        viper.GetInt("CURRENCY_SCALE"),
		AutoCloseSchedule:    viper.GetString("AUTOCLOSE_SCHEDULE"),
		AutoClosePreviewOnly: viper.GetBool("AUTOCLOSE_PREVIEW_ONLY"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Change notifications stay in-process.")
	}

	closeTimeoutStr := viper.GetString("CLOSE_TIMEOUT")
	closeTimeout, err := time.ParseDuration(closeTimeoutStr)
	if err != nil {
		closeTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for CLOSE_TIMEOUT ('%s'). Defaulting to %s.\n", closeTimeoutStr, closeTimeout)
	}
	cfg.CloseTimeout = closeTimeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field rules and the cross-field split total.
func (c *Config) Validate() error {
	vld, err := newValidator()
	if err != nil {
		return err
	}
	if err := vld.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.SplitConfig().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func newValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())
	if err := vld.RegisterValidation("percent", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(100))
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'percent': %w", err)
	}
	if err := vld.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'cronspec': %w", err)
	}
	if err := vld.RegisterValidation("ratelimit", func(fl validator.FieldLevel) bool {
		_, err := limiter.NewRateFromFormatted(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'ratelimit': %w", err)
	}
	return vld, nil
}

// SplitConfig returns the configured split. Values were validated on load.
func (c *Config) SplitConfig() domain.SplitConfig {
	return domain.SplitConfig{
		NazerPercent:   decimal.RequireFromString(c.Distribution.NazerPercent),
		CharityPercent: decimal.RequireFromString(c.Distribution.CharityPercent),
		CorpusPercent:  decimal.RequireFromString(c.Distribution.CorpusPercent),
	}
}

func (c *Config) ZakatRate() decimal.Decimal {
	return decimal.RequireFromString(c.ZakatRatePercent)
}

// ApprovalPolicy returns the ordered role list and mode.
func (c *Config) ApprovalPolicy() domain.ApprovalPolicy {
	roles := make([]domain.ApproverRole, len(c.Approval.Roles))
	for i, r := range c.Approval.Roles {
		roles[i] = domain.ApproverRole(r)
	}
	return domain.ApprovalPolicy{Roles: roles, Mode: domain.ApprovalMode(c.Approval.Mode)}
}

func splitList(raw string, upper bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if upper {
			part = strings.ToUpper(part)
		}
		out = append(out, part)
	}
	return out
}
