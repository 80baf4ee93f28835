// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Database drivers supported by the store.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Ledger   LedgerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds the store configuration.
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. An empty URL disables the aggregate cache.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	CacheTTL time.Duration
}

// LedgerConfig holds ledger behaviour settings.
type LedgerConfig struct {
	SeedFile        string
	RateLimit       int
	RateWindow      time.Duration
	DefaultPageSize int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			URL:             getEnv("DATABASE_URL", "file:ledger.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", 10*time.Minute),
		},
		Ledger: LedgerConfig{
			SeedFile:        getEnv("LEDGER_SEED_FILE", ""),
			RateLimit:       getEnvAsInt("LEDGER_RATE_LIMIT", 60),
			RateWindow:      getEnvAsDuration("LEDGER_RATE_WINDOW", time.Minute),
			DefaultPageSize: getEnvAsInt("LEDGER_DEFAULT_PAGE_SIZE", 20),
		},
	}
}

// Validate checks the loaded configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Ledger.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("LEDGER_RATE_LIMIT must be positive, got %d", c.Ledger.RateLimit))
	}
	if c.Ledger.DefaultPageSize <= 0 {
		errs = append(errs, fmt.Errorf("LEDGER_DEFAULT_PAGE_SIZE must be positive, got %d", c.Ledger.DefaultPageSize))
	}

	return errors.Join(errs...)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
