// Package config loads the dayweave YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "DAYWEAVE_CONFIG"
	// EnvDBPath overrides db_path from the file.
	EnvDBPath = "DAYWEAVE_DB"

	DefaultAutoPlanCron    = "0 6 * * *"
	DefaultReminderLeadMin = 10
	DefaultLogLevel        = "info"
)

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// AutoPlanCron is when the daemon plans the day.
	AutoPlanCron string `yaml:"autoplan_cron"`
	// ReminderLeadMin is how long before an event its reminder fires.
	ReminderLeadMin int `yaml:"reminder_lead_min"`
}

// Dir is ~/.dayweave, falling back to the working directory when the home
// directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dayweave"
	}
	return filepath.Join(home, ".dayweave")
}

// DefaultPath is the config file location, honoring DAYWEAVE_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:          filepath.Join(Dir(), "dayweave.db"),
		LogLevel:        DefaultLogLevel,
		AutoPlanCron:    DefaultAutoPlanCron,
		ReminderLeadMin: DefaultReminderLeadMin,
	}
}

// Normalize fills zero values with defaults so older or hand-written files
// still load.
func (c *Config) Normalize() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(Dir(), "dayweave.db")
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = DefaultLogLevel
	}
	if c.AutoPlanCron == "" {
		c.AutoPlanCron = DefaultAutoPlanCron
	}
	if c.ReminderLeadMin < 0 {
		c.ReminderLeadMin = DefaultReminderLeadMin
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// applyEnv lets DAYWEAVE_DB point a single run at another database without
// touching the file.
func (c *Config) applyEnv() {
	if p := os.Getenv(EnvDBPath); p != "" {
		c.DBPath = p
	}
}

// Load reads path. On first run the file does not exist yet; a default
// config is written there (0600) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		cfg.applyEnv()
		return cfg, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes cfg atomically through a temp file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dayweave-config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
