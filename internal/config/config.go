// Package config builds the process configuration once at startup.
//
// Values are applied in order: defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables. Validate runs last and reports
// every invalid key at once.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Database drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultSpannerDatabase points at the local emulator instance.
const DefaultSpannerDatabase = "projects/test-project/instances/dev-instance/databases/decant-store-db"

// Config holds application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Email     EmailConfig     `yaml:"email"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AppConfig covers the HTTP process itself.
type AppConfig struct {
	Env      string `yaml:"env"`
	URL      string `yaml:"url"`
	HTTPPort string `yaml:"http_port"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig selects and addresses the catalog store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	URL             string        `yaml:"url"`
	SpannerDatabase string        `yaml:"spanner_database"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
}

// RedisConfig enables the brand cache when URL is set.
type RedisConfig struct {
	URL      string        `yaml:"url"`
	BrandTTL time.Duration `yaml:"brand_ttl"`
}

// AuthConfig holds the session signing settings.
type AuthConfig struct {
	Secret string `yaml:"secret"`
	URL    string `yaml:"url"`
}

// StripeConfig holds payment provider keys.
type StripeConfig struct {
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
	PublishableKey string `yaml:"publishable_key"`
}

// EmailConfig holds the SMTP settings for order mail.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// AnalyticsConfig holds site verification and analytics ids rendered into pages.
type AnalyticsConfig struct {
	GoogleSiteVerification string `yaml:"google_site_verification"`
	GAID                   string `yaml:"ga_id"`
}

// TelemetryConfig enables trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration used for local development.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      EnvDevelopment,
			HTTPPort: "8080",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Driver:          DriverSpanner,
			SpannerDatabase: DefaultSpannerDatabase,
			QueryTimeout:    10 * time.Second,
		},
		Redis: RedisConfig{
			BrandTTL: 10 * time.Minute,
		},
		Email: EmailConfig{
			Port: 587,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "decant-store",
		},
	}
}

// Load builds the configuration from the process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(getenv); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile overlays the YAML file at path.
func (c *Config) LoadFromFile(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %q", ext)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overlays every variable that is set. Malformed numbers and
// durations are reported as errors.
func (c *Config) LoadFromEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.App.Env, "APP_ENV")
	set(&c.App.URL, "APP_URL")
	set(&c.App.HTTPPort, "HTTP_PORT")
	set(&c.App.LogLevel, "LOG_LEVEL")

	set(&c.Database.Driver, "DATABASE_DRIVER")
	set(&c.Database.URL, "DATABASE_URL")
	set(&c.Database.SpannerDatabase, "SPANNER_DATABASE")

	set(&c.Redis.URL, "REDIS_URL")

	set(&c.Auth.Secret, "NEXTAUTH_SECRET")
	set(&c.Auth.URL, "NEXTAUTH_URL")

	set(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	set(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	set(&c.Stripe.PublishableKey, "STRIPE_PUBLISHABLE_KEY")

	set(&c.Email.Host, "EMAIL_SERVER_HOST")
	set(&c.Email.User, "EMAIL_SERVER_USER")
	set(&c.Email.Password, "EMAIL_SERVER_PASSWORD")
	set(&c.Email.From, "EMAIL_FROM")

	set(&c.Analytics.GoogleSiteVerification, "GOOGLE_SITE_VERIFICATION")
	set(&c.Analytics.GAID, "GA_ID")

	set(&c.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	set(&c.Telemetry.ServiceName, "OTEL_SERVICE_NAME")

	if v := getenv("EMAIL_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EMAIL_SERVER_PORT: %w", err)
		}
		c.Email.Port = port
	}
	if v := getenv("DB_QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DB_QUERY_TIMEOUT: %w", err)
		}
		c.Database.QueryTimeout = d
	}
	if v := getenv("REDIS_BRAND_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REDIS_BRAND_TTL: %w", err)
		}
		c.Redis.BrandTTL = d
	}
	return nil
}

// IsProduction reports whether the process runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// SlogLevel parses LogLevel, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.App.HTTPPort
}
