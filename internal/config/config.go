package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Database (optional: the literal fixture is used when empty)
	DatabaseURL string

	// BusinessLocation is the zone the register's day and sales hours are counted in
	BusinessLocation *time.Location

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Dashboard
	ExchangeBaseRate decimal.Decimal
	ChartTheme       domain.ChartTheme
	RefreshRateLimit int
	RefreshBurst     int

	// S3 Storage for avatars
	S3 S3Config
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether avatar storage is configured
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	baseRate, err := decimal.NewFromString(getEnv("EXCHANGE_BASE_RATE", domain.DefaultExchangeRate.String()))
	if err != nil {
		return nil, fmt.Errorf("EXCHANGE_BASE_RATE is not a number: %w", err)
	}

	location, err := time.LoadLocation(getEnv("BUSINESS_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE is not a known time zone: %w", err)
	}

	refreshLimit, err := getEnvInt("REFRESH_RATE_LIMIT", 30)
	if err != nil {
		return nil, err
	}
	refreshBurst, err := getEnvInt("REFRESH_BURST", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		BusinessLocation: location,
		Auth0Domain:      getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:    getEnv("AUTH0_AUDIENCE", ""),
		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "http://localhost:9000"), ","),
		Env:              getEnv("ENV", "development"),
		ExchangeBaseRate: baseRate,
		ChartTheme: domain.ChartTheme{
			TextColor:          getEnv("CHART_TEXT_COLOR", "#495057"),
			TextColorSecondary: getEnv("CHART_TEXT_COLOR_SECONDARY", "#6c757d"),
			SurfaceBorder:      getEnv("CHART_SURFACE_BORDER", "#dfe7ef"),
			Primary:            getEnv("CHART_PRIMARY", "#3b82f6"),
		},
		RefreshRateLimit: refreshLimit,
		RefreshBurst:     refreshBurst,
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if !c.ExchangeBaseRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("EXCHANGE_BASE_RATE must be greater than 1")
	}
	if c.RefreshRateLimit <= 0 || c.RefreshBurst <= 0 {
		return fmt.Errorf("REFRESH_RATE_LIMIT and REFRESH_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
