package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// API key generation modes for new users.
const (
	KeyModeRandom  = "random"
	KeyModeDerived = "derived"
)

type Config struct {
	Server struct {
		Host            string
		Port            string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		IdleTimeout     time.Duration
		ShutdownTimeout time.Duration
		AllowedOrigins  []string
	}
	Database struct {
		Driver       string
		Path         string
		DSN          string
		MaxOpenConns int
		MaxIdleConns int
		SlowQuery    time.Duration
	}
	Redis struct {
		URL         string
		KeyCacheTTL time.Duration
	}
	Keys struct {
		Mode   string
		Secret string
	}
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server configuration
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("SERVER_PORT", "8000")
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", "10s")
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", "10s")
	cfg.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s")
	cfg.Server.ShutdownTimeout = getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "30s")
	cfg.Server.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", "*")

	// Database configuration
	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	cfg.Database.Path = getEnv("DB_PATH", "./data/habituate.db")
	cfg.Database.DSN = getEnv("DB_DSN", "")
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	cfg.Database.SlowQuery = getEnvAsDuration("DB_SLOW_QUERY", "200ms")

	// Redis key cache, disabled when no URL is set
	cfg.Redis.URL = getEnv("REDIS_URL", "")
	cfg.Redis.KeyCacheTTL = getEnvAsDuration("KEY_CACHE_TTL", "30s")

	// API keys
	cfg.Keys.Mode = strings.ToLower(getEnv("API_KEY_MODE", KeyModeRandom))
	cfg.Keys.Secret = getEnv("API_KEY_SECRET", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Validate reports configuration combinations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" && c.Database.DSN == "" {
			errs = append(errs, errors.New("DB_PATH or DB_DSN is required for sqlite"))
		}
	case DriverMySQL, DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("DB_DSN is required for %s", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Keys.Mode {
	case KeyModeRandom:
	case KeyModeDerived:
		if c.Keys.Secret == "" {
			errs = append(errs, errors.New("API_KEY_SECRET is required when API_KEY_MODE=derived"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported API_KEY_MODE %q", c.Keys.Mode))
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive durations"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	val := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0)
	}
	return duration
}

func getEnvAsInt(key string, defaultValue int) int {
	val := getEnv(key, strconv.Itoa(defaultValue))
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
