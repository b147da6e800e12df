package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var envKeys = []string{
	"APP_HOST", "APP_PORT", "STORAGE_DRIVER", "STORAGE_PREFIX", "DATABASE_DSN",
	"REDIS_HOST", "REDIS_PORT", "POSTGRES_DSN", "RATE_LIMIT_PER_MINUTE",
	"SHUTDOWN_TIMEOUT_SECONDS", "LOG_LEVEL", "SEED_SAMPLE_DATA", "CURRENT_USER_ID",
	"OPENROUTER_API_KEY", "OPENROUTER_MODEL", "AI_TEMPERATURE", "AI_MAX_TOKENS",
}

// clearEnv blanks every variable Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "ai-notebook-", cfg.StoragePrefix)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 20, cfg.ShutdownTimeoutSeconds)
	assert.Equal(t, "current-user", cfg.CurrentUser.ID)
	assert.Equal(t, "deepseek/deepseek-chat-v3.1", cfg.AI.Model)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 1000, cfg.AI.MaxTokens)
	assert.False(t, cfg.SeedSampleData)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("AI_MAX_TOKENS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.AppURL)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 250, cfg.AI.MaxTokens)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "non-numeric rate limit", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "lots"}, wantErr: "RATE_LIMIT_PER_MINUTE"},
		{name: "zero rate limit", env: map[string]string{"RATE_LIMIT_PER_MINUTE": "0"}, wantErr: "RATE_LIMIT_PER_MINUTE"},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "-1"}, wantErr: "SHUTDOWN_TIMEOUT_SECONDS"},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}, wantErr: "STORAGE_DRIVER"},
		{name: "postgres without dsn", env: map[string]string{"STORAGE_DRIVER": "postgres"}, wantErr: "POSTGRES_DSN"},
		{name: "bad boolean", env: map[string]string{"SEED_SAMPLE_DATA": "sometimes"}, wantErr: "SEED_SAMPLE_DATA"},
		{name: "temperature out of range", env: map[string]string{"AI_TEMPERATURE": "3"}, wantErr: "AI_TEMPERATURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("loud")
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{DriverMemory, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := Config{
				StorageDriver: driver,
				StoragePrefix: "test-",
				DatabaseDSN:   filepath.Join(t.TempDir(), "notebook.db"),
			}

			storage, err := OpenStorage(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = storage.Close() })

			require.NoError(t, storage.Store.Set(ctx, "todos", "[]"))
			value, found, err := storage.Store.Get(ctx, "todos")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "[]", value)

			value, found, err = storage.Raw.Get(ctx, "test-todos")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "[]", value)

			require.NoError(t, storage.Raw.Set(ctx, "ai-chat-history-gpt", "[]"))
			_, found, err = storage.Store.Get(ctx, "ai-chat-history-gpt")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStorage(ctx, Config{StorageDriver: "tape"}, zap.NewNop())
		assert.Error(t, err)
	})
}
