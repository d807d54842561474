// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Listing ListingConfig `mapstructure:"listing"`
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ListingConfig points at the remote media host's resource list.
type ListingConfig struct {
	BaseURL    string   `mapstructure:"base_url"`
	CloudName  string   `mapstructure:"cloud_name"`
	Tag        string   `mapstructure:"tag"`
	Categories []string `mapstructure:"categories"`
}

// StorageConfig holds the local persistence location.
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// FeedConfig tunes feed composition.
type FeedConfig struct {
	RankPrefix int `mapstructure:"rank_prefix"` // how many items the recommender may reorder
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Listing: ListingConfig{
			BaseURL: "https://res.cloudinary.com",
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Feed: FeedConfig{
			RankPrefix: 12,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vaultfeed", "vaultfeed.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vaultfeed", "vaultfeed.log")
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "vaultfeed")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vaultfeed")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vaultfeed")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vaultfeed")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("VAULTFEED")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// IsConfigured returns true if the listing source is set
func (c *Config) IsConfigured() bool {
	return c.Listing.CloudName != "" && c.Listing.Tag != ""
}
