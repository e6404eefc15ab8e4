package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "test-key", cfg.APIKey)
		assert.Equal(t, 15*time.Minute, cfg.SupplyCooldown)
		assert.Equal(t, 512, cfg.ItemCacheSize)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("STORAGE", "MEMORY")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("SUPPLY_COOLDOWN", "20m")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "customdb", cfg.DBName)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 20*time.Minute, cfg.SupplyCooldown)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	})

	t.Run("fails on invalid port", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "k")
		t.Setenv("PORT", "not-a-port")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("requires api key outside dev", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENVIRONMENT", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API_KEY")
	})

	t.Run("rejects unknown storage", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "k")
		t.Setenv("STORAGE", "mongo")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORAGE")
	})
}

func TestGetDBConnString(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "k")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/hunter?sslmode=disable", cfg.GetDBConnString())
}

func TestLoad_PoolAndRetention(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "k")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("DB_MAX_CONN_LIFETIME", "1h")
	t.Setenv("EVENT_RETENTION_DAYS", "7")
	t.Setenv("CLEANUP_INTERVAL", "bad")
	t.Setenv("LOG_ADD_SOURCE", "TRUE")
	t.Setenv("GAME_CONTENT_PATH", "/etc/hunter/game.json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 20, cfg.DBMaxConns, "invalid ints fall back to the default")
	assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
	assert.Equal(t, 7, cfg.EventRetentionDays)
	assert.Equal(t, time.Hour, cfg.CleanupInterval, "invalid durations fall back to the default")
	assert.True(t, cfg.LogSource)
	assert.Equal(t, "/etc/hunter/game.json", cfg.ContentPath)
}

func TestEnvHelpers(t *testing.T) {
	intCases := []struct {
		raw  string
		want int
	}{
		{"100", 100},
		{"-10", -10},
		{"0", 0},
		{"42.5", 7},
		{"", 7},
		{"seven", 7},
	}
	for _, tc := range intCases {
		t.Run("int "+tc.raw, func(t *testing.T) {
			t.Setenv("HUNTER_TEST_INT", tc.raw)
			assert.Equal(t, tc.want, getEnvAsInt("HUNTER_TEST_INT", 7))
		})
	}

	durationCases := []struct {
		raw  string
		want time.Duration
	}{
		{"10m", 10 * time.Minute},
		{"1h30m45s", time.Hour + 30*time.Minute + 45*time.Second},
		{"500ms", 500 * time.Millisecond},
		{"100", time.Minute},
		{"", time.Minute},
	}
	for _, tc := range durationCases {
		t.Run("duration "+tc.raw, func(t *testing.T) {
			t.Setenv("HUNTER_TEST_DURATION", tc.raw)
			assert.Equal(t, tc.want, getEnvAsDuration("HUNTER_TEST_DURATION", time.Minute))
		})
	}

	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
}

// clearEnvVars unsets every variable Load reads environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "LOG_ADD_SOURCE", "TRUSTED_PROXIES",
		"SERVICE_NAME", "APP_VERSION", "ENVIRONMENT", "STORAGE",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"ITEM_CACHE_SIZE", "ITEM_CACHE_TTL", "GAME_CONTENT_PATH",
		"WORDLE_TTL", "SUPPLY_COOLDOWN", "MISSION_RETRY_MAX",
		"EVENT_RETENTION_DAYS", "CLEANUP_INTERVAL",
	}

	for _, key := range envVars {
		// t.Setenv registers the restore; Unsetenv then clears it for this test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
