package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	LogSource   bool
	ServiceName string
	Version     string
	Environment string

	Storage string // "postgres" or "memory"

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ItemCacheSize int
	ItemCacheTTL  time.Duration

	ContentPath string // game content JSON; empty uses the embedded default

	WordleTTL       time.Duration
	SupplyCooldown  time.Duration
	MissionRetryMax int

	EventRetentionDays int
	CleanupInterval    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogSource:   strings.EqualFold(getEnv("LOG_ADD_SOURCE", ""), "true"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("APP_VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", EnvDev),

		Storage: strings.ToLower(getEnv("STORAGE", StoragePostgres)),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "hunter"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		ItemCacheSize: getEnvAsInt("ITEM_CACHE_SIZE", 512),
		ItemCacheTTL:  getEnvAsDuration("ITEM_CACHE_TTL", 10*time.Minute),

		ContentPath: getEnv("GAME_CONTENT_PATH", ""),

		WordleTTL:       getEnvAsDuration("WORDLE_TTL", 24*time.Hour),
		SupplyCooldown:  getEnvAsDuration("SUPPLY_COOLDOWN", 15*time.Minute),
		MissionRetryMax: getEnvAsInt("MISSION_RETRY_MAX", 5),

		EventRetentionDays: getEnvAsInt("EVENT_RETENTION_DAYS", 30),
		CleanupInterval:    getEnvAsDuration("CLEANUP_INTERVAL", time.Hour),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values for consistency
func (c *Config) Validate() error {
	if c.APIKey == "" && c.Environment != EnvDev {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("invalid STORAGE value %q: expected %s or %s", c.Storage, StoragePostgres, StorageMemory)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if c.ItemCacheSize <= 0 {
		return fmt.Errorf("ITEM_CACHE_SIZE must be positive, got %d", c.ItemCacheSize)
	}
	if c.MissionRetryMax < 0 {
		return fmt.Errorf("MISSION_RETRY_MAX must not be negative, got %d", c.MissionRetryMax)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
