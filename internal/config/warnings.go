package config

import "fmt"

// Placeholder values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Warnings reports settings that are valid but unsafe or surprising for the
// configured environment. Startup logs each one.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == exampleDBPassword && c.Storage == StoragePostgres {
		warnings = append(warnings, "DB_PASSWORD is the example value; set a real password")
	}
	if c.APIKey == exampleAPIKey {
		warnings = append(warnings, "API_KEY is the example value; generate one with: openssl rand -hex 32")
	}
	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is empty; authentication is disabled")
	}
	if c.Storage == StorageMemory {
		warnings = append(warnings, "STORAGE=memory keeps all player data in process memory and loses it on restart")
	}
	if c.RedisAddr == "" && c.Environment != EnvDev {
		warnings = append(warnings, "REDIS_ADDR is empty; word games are kept in process memory")
	}
	if c.EventRetentionDays <= 0 {
		warnings = append(warnings, fmt.Sprintf("EVENT_RETENTION_DAYS=%d disables event log cleanup", c.EventRetentionDays))
	}

	return warnings
}
