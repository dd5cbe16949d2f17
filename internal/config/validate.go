package config

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation problem.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError lists every invalid key found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// required reports a missing value when must is set and value is empty.
// It returns whether the value should be checked further.
func (v *validator) required(key, value string, must bool) bool {
	if value != "" {
		return true
	}
	if must {
		v.addf("%s is required", key)
	}
	return false
}

func (v *validator) url(key, value string, must bool, schemes ...string) {
	if !v.required(key, value, must) {
		return
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v.addf("%s must be a valid URL", key)
		return
	}
	if len(schemes) > 0 && !contains(schemes, u.Scheme) {
		v.addf("%s must use one of the schemes %s", key, strings.Join(schemes, ", "))
	}
}

func (v *validator) email(key, value string, must bool) {
	if !v.required(key, value, must) {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.addf("%s must be a valid email address", key)
	}
}

func (v *validator) prefix(key, value, prefix string, must bool) {
	if !v.required(key, value, must) {
		return
	}
	if !strings.HasPrefix(value, prefix) {
		v.addf("%s must start with %q", key, prefix)
	}
}

func (v *validator) oneOf(key, value string, allowed ...string) {
	if !contains(allowed, value) {
		v.addf("%s must be one of %s", key, strings.Join(allowed, ", "))
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// Validate checks every key and returns a *ValidationError listing all
// problems. In production the integration keys are required; elsewhere they
// are checked only when set.
func (c *Config) Validate() error {
	v := &validator{}
	prod := c.IsProduction()

	v.oneOf("APP_ENV", c.App.Env, EnvDevelopment, EnvProduction, EnvTest)
	v.url("APP_URL", c.App.URL, prod, "http", "https")
	if port, err := strconv.Atoi(c.App.HTTPPort); err != nil || port < 1 || port > 65535 {
		v.addf("HTTP_PORT must be a port number")
	}
	v.oneOf("LOG_LEVEL", strings.ToLower(c.App.LogLevel), "debug", "info", "warn", "error")

	v.oneOf("DATABASE_DRIVER", c.Database.Driver, DriverSpanner, DriverPostgres, DriverMemory)
	switch c.Database.Driver {
	case DriverPostgres:
		v.url("DATABASE_URL", c.Database.URL, true, "postgres", "postgresql")
	case DriverSpanner:
		if v.required("SPANNER_DATABASE", c.Database.SpannerDatabase, true) {
			parts := strings.Split(c.Database.SpannerDatabase, "/")
			if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
				v.addf("SPANNER_DATABASE must look like projects/P/instances/I/databases/D")
			}
		}
	}
	if c.Database.QueryTimeout < 0 {
		v.addf("DB_QUERY_TIMEOUT must not be negative")
	}

	v.url("REDIS_URL", c.Redis.URL, false, "redis", "rediss")

	if v.required("NEXTAUTH_SECRET", c.Auth.Secret, prod) && len(c.Auth.Secret) < 32 {
		v.addf("NEXTAUTH_SECRET must be at least 32 characters")
	}
	v.url("NEXTAUTH_URL", c.Auth.URL, prod, "http", "https")

	v.prefix("STRIPE_SECRET_KEY", c.Stripe.SecretKey, "sk_", prod)
	v.prefix("STRIPE_WEBHOOK_SECRET", c.Stripe.WebhookSecret, "whsec_", prod)
	v.prefix("STRIPE_PUBLISHABLE_KEY", c.Stripe.PublishableKey, "pk_", prod)

	v.required("EMAIL_SERVER_HOST", c.Email.Host, prod)
	if c.Email.Port < 1 || c.Email.Port > 65535 {
		v.addf("EMAIL_SERVER_PORT must be a port number")
	}
	v.email("EMAIL_SERVER_USER", c.Email.User, prod)
	v.required("EMAIL_SERVER_PASSWORD", c.Email.Password, prod)
	v.email("EMAIL_FROM", c.Email.From, prod)

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}
