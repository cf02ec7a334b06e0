package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "CATALOG_SOURCE", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW",
		"LIMITER_CLEANUP_SCHEDULE", "SMTP_HOST", "PSEUDONYM_KEY", "SENDER_EMAIL")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CatalogSourceStatic, cfg.CatalogSource)
	assert.Equal(t, 60, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "@every 30m", cfg.LimiterCleanupSchedule)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_SOURCE", CatalogSourcePostgres)
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("REGULATIONS_FILE", "/etc/loan/regulations.yaml")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, CatalogSourcePostgres, cfg.CatalogSource)
	assert.Equal(t, 5, cfg.RateLimitCapacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, "/etc/loan/regulations.yaml", cfg.RegulationsFile)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown catalog source", "CATALOG_SOURCE", "mongo"},
		{"non numeric capacity", "RATE_LIMIT_CAPACITY", "lots"},
		{"zero capacity", "RATE_LIMIT_CAPACITY", "0"},
		{"bad window", "RATE_LIMIT_WINDOW", "soon"},
		{"empty pseudonym key", "PSEUDONYM_KEY", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", CatalogSourcePostgres)
	t.Setenv("DB_CONN", "")

	_, err := NewConfig()
	assert.Error(t, err)
}
