package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		Env:               "development",
		StorageDriver:     DriverSQLite,
		StoragePath:       "test.db",
		StorageKeyPrefix:  "startup_connect_",
		SeedFallback:      FallbackPerKey,
		StrictConnections: true,
		RedisURL:          "localhost:6379",
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabase:     "startup_connect",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(*Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Unknown driver", func(c *Config) { c.StorageDriver = "etcd" }, true},
		{"Unknown fallback", func(c *Config) { c.SeedFallback = "sometimes" }, true},
		{"All-or-nothing fallback", func(c *Config) { c.SeedFallback = FallbackAllOrNothing }, false},
		{"SQLite without path", func(c *Config) { c.StoragePath = "" }, true},
		{"Redis without URL", func(c *Config) { c.StorageDriver = DriverRedis; c.RedisURL = "" }, true},
		{"Mongo without database", func(c *Config) { c.StorageDriver = DriverMongo; c.MongoDatabase = "" }, true},
		{"Missing key prefix", func(c *Config) { c.StorageKeyPrefix = "" }, true},
		{"Memory driver in production", func(c *Config) { c.Env = "production"; c.StorageDriver = DriverMemory }, true},
		{"SQLite driver in production", func(c *Config) { c.Env = "production" }, false},
		{"Postgres with default password in prod", func(c *Config) {
			c.Env = "prod"
			c.StorageDriver = DriverPostgres
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"Postgres without SSL in production", func(c *Config) {
			c.Env = "production"
			c.StorageDriver = DriverPostgres
			c.DBPassword = "a-strong-password"
			c.DBSSLMode = "disable"
		}, true},
		{"Postgres hardened in production", func(c *Config) {
			c.Env = "production"
			c.StorageDriver = DriverPostgres
			c.DBPassword = "a-strong-password"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, "startup_connect_", c.StorageKeyPrefix)
	assert.Equal(t, FallbackPerKey, c.SeedFallback)
	assert.True(t, c.StrictConnections)
}

func TestLoadConfig_EnvNormalization(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORAGE_DRIVER", "  MEMORY ")
	t.Setenv("SEED_FALLBACK", "ALL_OR_NOTHING")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, c.StorageDriver)
	assert.Equal(t, FallbackAllOrNothing, c.SeedFallback)
}
