// Package config loads client settings from ~/.tempora/config.yaml, the
// TEMPORA_* environment and command-line flags, in rising precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Window presets offered by the UI; any positive custom value is also valid.
const (
	WindowWeek    = 7
	WindowMonth   = 30
	WindowQuarter = 90

	DefaultWindowDays = WindowMonth
)

// Config carries everything the client needs to reach the service and render
// reports.
type Config struct {
	ServerURL  string `mapstructure:"server_url"`
	Token      string `mapstructure:"token"`
	Timezone   string `mapstructure:"timezone"`
	WindowDays int    `mapstructure:"window_days"`
	Output     string `mapstructure:"output"`
}

// DefaultDir returns the client's home directory (~/.tempora).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tempora"
	}
	return filepath.Join(home, ".tempora")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads the config file at path (the default location when path is
// empty). A missing file is not an error; defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("timezone", "Local")
	v.SetDefault("window_days", DefaultWindowDays)
	v.SetDefault("output", "table")

	v.SetEnvPrefix("tempora")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := ValidateWindow(cfg.WindowDays); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateWindow accepts the 7/30/90 presets and any positive custom window.
func ValidateWindow(days int) error {
	if days <= 0 {
		return fmt.Errorf("window must be a positive number of days, got %d", days)
	}
	return nil
}
