package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Client ClientConfig `yaml:"client"`
	Board  BoardConfig  `yaml:"board"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type ClientConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type BoardConfig struct {
	// OrderedLoad asks the store for tasks sorted by their persisted drop position.
	OrderedLoad bool `yaml:"ordered_load"`
}

type LogConfig struct {
	Dir string `yaml:"dir"`
	SQL bool   `yaml:"sql"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(homeDir(), "horizon.db"),
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
	}
}

// DefaultPath returns the location of the config file
func DefaultPath() string {
	return filepath.Join(homeDir(), "config.yaml")
}

// homeDir returns ~/.horizon, falling back to the working directory
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".horizon"
	}
	return filepath.Join(home, ".horizon")
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Log.Dir = expandHome(cfg.Log.Dir)

	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("store.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Client.Timeout < 0 {
		return errors.New("client.timeout must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HORIZON_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HORIZON_DB_DRIVER"); v != "" {
		cfg.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("HORIZON_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("HORIZON_DB_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("HORIZON_API_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := os.Getenv("HORIZON_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv("HORIZON_CLIENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HORIZON_CLIENT_TIMEOUT: %w", err)
		}
		cfg.Client.Timeout = d
	}
	return nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
