package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Warnings(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIKey:             "k",
			Environment:        EnvDev,
			Storage:            StoragePostgres,
			DBPassword:         "secret",
			EventRetentionDays: 30,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"example db password", func(c *Config) { c.DBPassword = exampleDBPassword }, "DB_PASSWORD"},
		{"example api key", func(c *Config) { c.APIKey = exampleAPIKey }, "openssl rand"},
		{"auth disabled", func(c *Config) { c.APIKey = "" }, "authentication is disabled"},
		{"memory storage", func(c *Config) { c.Storage = StorageMemory }, "STORAGE=memory"},
		{"no redis outside dev", func(c *Config) { c.Environment = EnvProduction }, "REDIS_ADDR"},
		{"cleanup disabled", func(c *Config) { c.EventRetentionDays = 0 }, "EVENT_RETENTION_DAYS=0"},
	}

	assert.Empty(t, base().Warnings())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			warnings := c.Warnings()
			if assert.Len(t, warnings, 1) {
				assert.Contains(t, warnings[0], tt.want)
			}
		})
	}

	t.Run("example password ignored for memory storage", func(t *testing.T) {
		c := base()
		c.Storage = StorageMemory
		c.DBPassword = exampleDBPassword
		assert.Len(t, c.Warnings(), 1)
	})
}
