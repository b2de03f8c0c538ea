package config

import (
	"errors"
	"time"

	"expense_tracker/internal/repository/db"
)

// Development fallbacks. Flagged by Warnings and rejected in production.
const (
	DefaultAccessSecret  = "access_secret"
	DefaultRefreshSecret = "refresh_secret"

	EnvProduction = "production"

	minSecretLen = 32
)

// ErrInsecureSecrets is returned by Validate when production runs with development secrets.
var ErrInsecureSecrets = errors.New("insecure token secrets for production")

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type Server struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"` // CORS; "*" allows any
}

type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type Auth struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
	Issuer        string        `mapstructure:"issuer"`
}

type Config struct {
	App    App       `mapstructure:"app"`
	Server Server    `mapstructure:"server"`
	DB     db.Config `mapstructure:"db"`
	Log    Log       `mapstructure:"log"`
	Auth   Auth      `mapstructure:"auth"`
}

// IsProduction reports whether app.env is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// Warnings lists insecure settings worth logging at startup.
func (c *Config) Warnings() []string {
	var out []string
	if c.Auth.AccessSecret == DefaultAccessSecret {
		out = append(out, "auth.access_secret uses the development default")
	}
	if c.Auth.RefreshSecret == DefaultRefreshSecret {
		out = append(out, "auth.refresh_secret uses the development default")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		out = append(out, "auth.access_secret and auth.refresh_secret are identical")
	}
	if len(c.Auth.AccessSecret) < minSecretLen || len(c.Auth.RefreshSecret) < minSecretLen {
		out = append(out, "token secrets shorter than 32 bytes")
	}
	return out
}

// Validate rejects configurations that must never run.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("auth secrets must not be empty")
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("auth ttls must be positive")
	}
	if !c.IsProduction() {
		return nil
	}
	if c.Auth.AccessSecret == DefaultAccessSecret ||
		c.Auth.RefreshSecret == DefaultRefreshSecret ||
		c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return ErrInsecureSecrets
	}
	return nil
}
