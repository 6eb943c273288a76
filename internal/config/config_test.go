package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "ledger_entry_events", cfg.KafkaTopic)
	assert.False(t, cfg.Production())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":        "s3cret",
		"JWT_EXPIRES_IN":    "90m",
		"APP_ENV":           "Production",
		"STORE_DRIVER":      "MEMORY",
		"DB_MAX_OPEN_CONNS": "4",
		"KAFKA_BROKERS":     "kafka-1:9092, kafka-2:9092,",
		"AUTH_RATE_LIMIT":   "0",
	}))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.JWTExpiresIn)
	assert.True(t, cfg.Production())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Zero(t, cfg.AuthRateLimit)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET is not set"},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "JWT_EXPIRES_IN": "tomorrow"}, `JWT_EXPIRES_IN: invalid duration "tomorrow"`},
		{"bad integer", map[string]string{"JWT_SECRET": "s", "DB_MAX_OPEN_CONNS": "many"}, `DB_MAX_OPEN_CONNS: invalid integer "many"`},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"}, `STORE_DRIVER "sqlite"`},
		{"bcrypt cost too low", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "3"}, "BCRYPT_COST must be between 4 and 31"},
		{"bcrypt cost too high", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "32"}, "BCRYPT_COST must be between 4 and 31"},
		{"empty pool", map[string]string{"JWT_SECRET": "s", "DB_MAX_OPEN_CONNS": "0"}, "DB_MAX_OPEN_CONNS must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.env))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
