// Package config loads the YAML configuration at ~/.chrono/config.yaml,
// creating it with defaults on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// DBPath overrides the sqlite database location.
	DBPath string `yaml:"db_path"`

	// DayStartHour and DayEndHour bound the visible grid of the today view.
	DayStartHour int `yaml:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour"`

	// Notifications is the permission state for reminders:
	// "default", "granted" or "denied".
	Notifications string `yaml:"notifications"`

	// ICSURL is an optional calendar subscription used by `chrono sync`
	// when no explicit source is given.
	ICSURL string `yaml:"ics_url"`
}

// DefaultConfig returns the in-memory defaults.
func DefaultConfig() *Config {
	return &Config{
		DayStartHour:  6,
		DayEndHour:    24,
		Notifications: "default",
	}
}

// Normalize fills missing or out-of-range values so partially edited
// configs still behave.
func (c *Config) Normalize() {
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		c.DayStartHour = 6
	}
	if c.DayEndHour <= c.DayStartHour || c.DayEndHour > 24 {
		c.DayEndHour = 24
	}
	switch c.Notifications {
	case "default", "granted", "denied":
	default:
		c.Notifications = "default"
	}
}

// DefaultPath returns ~/.chrono/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chrono", "config.yaml"), nil
}

// Load reads the config at path, writing the defaults there first if the
// file does not exist yet.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config with owner-only permissions.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
