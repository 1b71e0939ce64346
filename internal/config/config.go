// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest JWT_SECRET accepted.
const MinJWTSecretLength = 32

// Config is the full runtime configuration of the API server.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Hits     HitsConfig
	Log      LogConfig
	Tracing  TracingConfig

	// Version is reported by /health and attached to spans.
	Version string `env:"VERSION" envDefault:"dev"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":2022"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"30m"`
	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool          `env:"DB_MIGRATE" envDefault:"true"`
	StatsInterval  time.Duration `env:"DB_STATS_INTERVAL" envDefault:"15s"`
}

// AuthConfig enables admin tokens when JWTSecret is set.
type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"`
	AdminUsername     string        `env:"ADMIN_USERNAME"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
}

// Enabled reports whether mutating routes require a token.
func (a AuthConfig) Enabled() bool { return a.JWTSecret != "" }

type HitsConfig struct {
	RatePerSecond float64       `env:"HITS_RATE_PER_SECOND" envDefault:"1"`
	Burst         int           `env:"HITS_BURST" envDefault:"5"`
	IdleTTL       time.Duration `env:"HITS_LIMITER_IDLE_TTL" envDefault:"10m"`
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

type TracingConfig struct {
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"dinas-portal"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the given .env files (".env" when none are named), then parses
// and validates the environment. Variables already set in the process win
// over .env entries. Missing .env files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var drivers = map[string]bool{"postgres": true, "sqlite": true, "mysql": true}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		add("HTTP_ADDR is required")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		add("HTTP_MAX_BODY_BYTES must be positive")
	}

	if !drivers[c.Database.Driver] {
		add("DB_DRIVER %q is not supported (postgres, sqlite, mysql)", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		add("DATABASE_URL is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		add("DB pool sizes must not be negative")
	}

	if c.Auth.Enabled() {
		if len(c.Auth.JWTSecret) < MinJWTSecretLength {
			add("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
		}
		if c.Auth.AdminUsername == "" || c.Auth.AdminPasswordHash == "" {
			add("ADMIN_USERNAME and ADMIN_PASSWORD_HASH are required when JWT_SECRET is set")
		} else if !strings.HasPrefix(c.Auth.AdminPasswordHash, "$2") {
			add("ADMIN_PASSWORD_HASH must be a bcrypt hash")
		}
		if c.Auth.TokenTTL <= 0 {
			add("TOKEN_TTL must be positive")
		}
	}

	if c.Hits.RatePerSecond <= 0 {
		add("HITS_RATE_PER_SECOND must be positive")
	}
	if c.Hits.Burst < 1 {
		add("HITS_BURST must be at least 1")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}
