package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for the watch/targets commands
type DefaultsConfig struct {
	Port           int    `mapstructure:"port"`
	Interval       string `mapstructure:"interval"`
	Timeout        string `mapstructure:"timeout"`
	Item           string `mapstructure:"item"`
	Position       string `mapstructure:"position"`
	Selector       string `mapstructure:"selector"`
	TargetContains string `mapstructure:"target_contains"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Port:     9222,
			Interval: "100ms",
			Timeout:  "10s",
			Item:     "brain_timer",
			Position: "right",
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	// brainbar.yaml in the user config dir or cwd; the home-directory
	// fallback is a dotfile, which needs its own search pass because the
	// config name is global to a viper instance.
	v.SetConfigName("brainbar")
	v.SetConfigType("yaml")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "brainbar"))
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("BRAINBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "BRAINBAR_FORMAT")
	v.BindEnv("quiet", "BRAINBAR_QUIET")
	v.BindEnv("verbose", "BRAINBAR_VERBOSE")
	v.BindEnv("defaults.port", "BRAINBAR_PORT")
	v.BindEnv("defaults.item", "BRAINBAR_ITEM")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.port", cfg.Defaults.Port)
	v.SetDefault("defaults.interval", cfg.Defaults.Interval)
	v.SetDefault("defaults.timeout", cfg.Defaults.Timeout)
	v.SetDefault("defaults.item", cfg.Defaults.Item)
	v.SetDefault("defaults.position", cfg.Defaults.Position)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, err
		}
		// No brainbar.yaml; fall back to ~/.brainbar.yaml
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			v.SetConfigName(".brainbar")
			v.AddConfigPath(home)
			if err := v.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return nil, err
				}
				// No config file anywhere; use defaults
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
