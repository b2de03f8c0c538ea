package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yml"

// Load reads path (if it exists), applies defaults and overlays environment variables.
// AUTH_ACCESS_SECRET and the legacy ACCESS_TOKEN_SECRET both set auth.access_secret.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	v.SetDefault("app.name", "expense-tracker")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", "4000")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.ping_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("auth.access_secret", DefaultAccessSecret)
	v.SetDefault("auth.refresh_secret", DefaultRefreshSecret)
	v.SetDefault("auth.access_ttl", "15m")
	v.SetDefault("auth.refresh_ttl", "168h")
	v.SetDefault("auth.issuer", "expense-tracker")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range map[string][]string{
		"auth.access_secret":     {"AUTH_ACCESS_SECRET", "ACCESS_TOKEN_SECRET"},
		"auth.refresh_secret":    {"AUTH_REFRESH_SECRET", "REFRESH_TOKEN_SECRET"},
		"server.port":            {"SERVER_PORT", "PORT"},
		"server.allowed_origins": {"SERVER_ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		"db.dsn":                 {"DB_DSN", "DATABASE_URL"},
	} {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PathFromEnv returns CONFIG_PATH or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
