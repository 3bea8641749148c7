// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Layer them over built-in defaults so the service boots with zero config.
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists in the working directory,
	// it gets loaded into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the prefix PHONEBOOK_. After the prefix is removed
	and the name lowercased, a double underscore marks one nesting level:

		PHONEBOOK_SERVER__PORT                 -> server.port
		PHONEBOOK_SERVER__CORS_ALLOWED_ORIGINS -> server.cors_allowed_origins
		PHONEBOOK_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Single underscores stay part of the key, so snake_case field names survive.
*/

// EnvPrefix is the prefix every environment variable read by LoadConfig carries.
const EnvPrefix = "PHONEBOOK_"

// ServiceName labels this service in logs and APM.
const ServiceName = "phonebook"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If it ends up nil,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// StaticDir is the directory of bundled frontend assets served
	// for unmatched GET requests.
	StaticDir string `koanf:"static_dir"`
}

// RateLimitConfig controls the per-client request limiter.
//
// Rate is requests per second, Burst the bucket size, ExpiresIn how long an
// idle client's bucket is remembered (seconds).
type RateLimitConfig struct {
	Enabled   bool    `koanf:"enabled"`
	Rate      float64 `koanf:"rate" validate:"gte=0"`
	Burst     int     `koanf:"burst" validate:"gte=0"`
	ExpiresIn int     `koanf:"expires_in" validate:"gte=0"`
}

// defaults is the base layer every loaded config starts from.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env": "development",

		"server.port":                 "3001",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.static_dir":           "dist",

		"rate_limit.enabled":    false,
		"rate_limit.rate":       20.0,
		"rate_limit.burst":      40,
		"rate_limit.expires_in": 180,

		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.new_relic.license_key":                 obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
	}
}

// envKey maps a raw environment variable name into a koanf key path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue turns comma separated list variables into slices; everything
// else passes through as a string for koanf's weak decoding.
func envValue(key, value string) (string, interface{}) {
	k := envKey(key)
	if k == "server.cors_allowed_origins" {
		parts := strings.Split(value, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		return k, origins
	}
	return k, value
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns it.
//
// Behavior summary:
//   - Loads built-in defaults
//   - Overlays env vars with prefix PHONEBOOK_
//   - Unmarshals into Config
//   - Forces the observability service name + environment
//   - Validates required config blocks/fields
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// finalize fills in a missing observability block, pins the values that
// must not drift from the primary config and validates the result.
func (c *Config) finalize() error {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
