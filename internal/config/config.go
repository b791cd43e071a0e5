// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers understood by storage.Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

// Seed fallback modes applied when stored state cannot be parsed.
const (
	FallbackPerKey       = "per_key"
	FallbackAllOrNothing = "all_or_nothing"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port              string  `mapstructure:"PORT"`
	Env               string  `mapstructure:"APP_ENV"`
	AllowedOrigins    string  `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags      string  `mapstructure:"FEATURE_FLAGS"`
	StorageDriver     string  `mapstructure:"STORAGE_DRIVER"`
	StoragePath       string  `mapstructure:"STORAGE_PATH"`
	StorageKeyPrefix  string  `mapstructure:"STORAGE_KEY_PREFIX"`
	SeedFallback      string  `mapstructure:"SEED_FALLBACK"`
	StrictConnections bool    `mapstructure:"STRICT_CONNECTIONS"`
	RedisURL          string  `mapstructure:"REDIS_URL"`
	DBHost            string  `mapstructure:"DB_HOST"`
	DBPort            string  `mapstructure:"DB_PORT"`
	DBUser            string  `mapstructure:"DB_USER"`
	DBPassword        string  `mapstructure:"DB_PASSWORD"`
	DBName            string  `mapstructure:"DB_NAME"`
	DBSSLMode         string  `mapstructure:"DB_SSLMODE"`
	MongoURI          string  `mapstructure:"MONGO_URI"`
	MongoDatabase     string  `mapstructure:"MONGO_DATABASE"`
	MongoCollection   string  `mapstructure:"MONGO_COLLECTION"`
	TracingEnabled    bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter   string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint      string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRate float64 `mapstructure:"TRACING_SAMPLE_RATE"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("PORT", "8375")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("FEATURE_FLAGS", "live_events=on,notification_fanout=on")
	viper.SetDefault("STORAGE_DRIVER", DriverSQLite)
	viper.SetDefault("STORAGE_PATH", "startup_connect.db")
	viper.SetDefault("STORAGE_KEY_PREFIX", "startup_connect_")
	viper.SetDefault("SEED_FALLBACK", FallbackPerKey)
	viper.SetDefault("STRICT_CONNECTIONS", true)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "startup_connect")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "startup_connect")
	viper.SetDefault("MONGO_COLLECTION", "kv_entries")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATE", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.SeedFallback = strings.ToLower(strings.TrimSpace(c.SeedFallback))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
}

// IsProduction reports whether the config targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis, DriverMongo:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.SeedFallback {
	case FallbackPerKey, FallbackAllOrNothing:
	default:
		return fmt.Errorf("unsupported SEED_FALLBACK %q", c.SeedFallback)
	}

	if c.StorageDriver == DriverSQLite && c.StoragePath == "" {
		return errors.New("STORAGE_PATH is required for the sqlite driver")
	}
	if c.StorageDriver == DriverRedis && c.RedisURL == "" {
		return errors.New("REDIS_URL is required for the redis driver")
	}
	if c.StorageDriver == DriverMongo && (c.MongoURI == "" || c.MongoDatabase == "") {
		return errors.New("MONGO_URI and MONGO_DATABASE are required for the mongo driver")
	}
	if c.StorageKeyPrefix == "" {
		return errors.New("STORAGE_KEY_PREFIX is required")
	}

	if c.IsProduction() {
		if c.StorageDriver == DriverMemory {
			return errors.New("the memory storage driver is not durable and cannot be used in production")
		}
		if c.StorageDriver == DriverPostgres {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				return errors.New("DB_SSLMODE must not be 'disable' in production")
			}
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}
