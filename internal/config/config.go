// Package config loads the service configuration from YAML with
// environment-variable overrides and sane defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	// Auth configures the identity resolver. Token issuance always stays
	// with the external provider; this service only verifies.
	Auth struct {
		// hs256 | oidc
		Mode string `yaml:"mode"`

		// HS256 shared secret (the provider's legacy JWT secret).
		JWTSecret string `yaml:"jwt_secret"`

		// Expected issuer/audience claims. Issuer doubles as the OIDC
		// discovery URL in oidc mode.
		Issuer   string `yaml:"issuer"`
		Audience string `yaml:"audience"`
	} `yaml:"auth"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Redis struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
		DB      int    `yaml:"db"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"redis"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`

		// Tighter limit for the role-switch endpoint.
		Switch struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"switch"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Health struct {
		ProbeInterval string `yaml:"probe_interval"`
		ProbeTimeout  string `yaml:"probe_timeout"`
	} `yaml:"health"`
}

// Load reads the YAML file at path, applies env overrides and defaults.
// A missing file is not an error when PESANTREN_* env vars carry the
// required values.
func Load(path string) (*Config, error) {
	var c Config

	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PESANTREN_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("PESANTREN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PESANTREN_AUTH_MODE"); v != "" {
		c.Auth.Mode = v
	}
	if v := os.Getenv("PESANTREN_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PESANTREN_AUTH_ISSUER"); v != "" {
		c.Auth.Issuer = v
	}
	if v := os.Getenv("PESANTREN_AUTH_AUDIENCE"); v != "" {
		c.Auth.Audience = v
	}
	if v := os.Getenv("PESANTREN_DB_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("PESANTREN_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("PESANTREN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PESANTREN_RATE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Rate.Enabled = b
		}
	}
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "20s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = "hs256"
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = 10
	}
	if c.Storage.Postgres.MaxIdleConns == 0 {
		c.Storage.Postgres.MaxIdleConns = 2
	}
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		c.Storage.Postgres.ConnMaxLifetime = "30m"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "pesantren:"
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 120
	}
	if c.Rate.Switch.Limit == 0 {
		c.Rate.Switch.Limit = 10
	}
	if c.Rate.Switch.Window == "" {
		c.Rate.Switch.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Health.ProbeInterval == "" {
		c.Health.ProbeInterval = "30s"
	}
	if c.Health.ProbeTimeout == "" {
		c.Health.ProbeTimeout = "5s"
	}
}

// MustDuration parses a duration config value, falling back when invalid.
func MustDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
