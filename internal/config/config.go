package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Catalog sources
const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port            string
	LogLevel        string
	CatalogSource   string
	DBConn          string
	RegulationsFile string

	RateLimitCapacity      int
	RateLimitWindow        time.Duration
	RedisAddr              string
	LimiterCleanupSchedule string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	PseudonymKey string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	capacity, err := getEnvInt("RATE_LIMIT_CAPACITY", 60)
	if err != nil {
		return nil, err
	}
	window, err := getEnvDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "INFO"),
		CatalogSource:          getEnv("CATALOG_SOURCE", CatalogSourceStatic),
		DBConn:                 getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=bank sslmode=disable"),
		RegulationsFile:        getEnv("REGULATIONS_FILE", ""),
		RateLimitCapacity:      capacity,
		RateLimitWindow:        window,
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		LimiterCleanupSchedule: getEnv("LIMITER_CLEANUP_SCHEDULE", "@every 30m"),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		SenderEmail:            getEnv("SENDER_EMAIL", "no-reply@loan-score.local"),
		PseudonymKey:           getEnv("PSEUDONYM_KEY", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
	}

	switch cfg.CatalogSource {
	case CatalogSourceStatic:
	case CatalogSourcePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required when CATALOG_SOURCE is %s", CatalogSourcePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}
	if cfg.RateLimitCapacity <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if n := len(cfg.PseudonymKey); n == 0 || n > 64 {
		return nil, fmt.Errorf("PSEUDONYM_KEY must be 1 to 64 bytes, got %d", n)
	}
	if cfg.SMTPHost != "" && cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is required when SMTP_HOST is set")
	}

	return cfg, nil
}

// NotificationsEnabled reports whether decision emails can be sent
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
