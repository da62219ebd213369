/*
Package config loads server configuration.

PRECEDENCE (lowest to highest):
  1. Built-in defaults
  2. YAML config file (optional)
  3. Environment variables (a .env file is loaded first when present)

Command-line flags in cmd/server override all of these.
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database path. ":memory:" for ephemeral runs.
	DBPath string `yaml:"db_path"`

	// AuthFile is the path of the Basic Auth secret file. The server
	// runs unprotected when the file does not exist.
	AuthFile string `yaml:"auth_file"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func defaults() Config {
	return Config{
		Listen:          ":8080",
		DBPath:          "timeoff.db",
		AuthFile:        "auth.secret",
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds the configuration. path may be empty (no YAML file); a
// named file that does not exist is an error, so typos don't silently
// fall back to defaults.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// Load .env if present, then apply environment overrides.
	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Listen = ":" + v
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("AUTH_FILE"); v != "" {
		cfg.AuthFile = v
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
}
