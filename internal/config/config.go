// Package config loads and persists the CLI's tuning knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"bmorg/internal/analyzer"
	"bmorg/internal/organizer"
	"bmorg/internal/validator"
)

// ProbeConfig tunes the link checker.
type ProbeConfig struct {
	Concurrency    int           `json:"concurrency"`
	Timeout        time.Duration `json:"timeout"`
	UserAgent      string        `json:"user_agent"`
	ExcludeDomains []string      `json:"exclude_domains,omitempty"`
}

// Validate reports probe settings outside their usable ranges.
func (p ProbeConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Concurrency, validation.Required, validation.Min(1), validation.Max(128)),
		validation.Field(&p.Timeout, validation.Required, validation.Min(100*time.Millisecond)),
	)
}

// OrganizerConfig tunes folder tree building.
type OrganizerConfig struct {
	MaxPerFolder int `json:"max_per_folder"`
}

// Validate reports organizer settings outside their usable ranges.
func (o OrganizerConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.MaxPerFolder, validation.Required, validation.Min(1)),
	)
}

// Config represents the application configuration.
type Config struct {
	Probe     ProbeConfig     `json:"probe"`
	Analyzer  analyzer.Config `json:"analyzer"`
	Organizer OrganizerConfig `json:"organizer"`
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Probe.Validate(); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if err := c.Analyzer.Validate(); err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}
	if err := c.Organizer.Validate(); err != nil {
		return fmt.Errorf("organizer: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Probe: ProbeConfig{
			Concurrency: validator.DefaultConcurrency,
			Timeout:     validator.DefaultTimeout,
			UserAgent:   validator.DefaultUserAgent,
		},
		Analyzer: analyzer.DefaultConfig(),
		Organizer: OrganizerConfig{
			MaxPerFolder: organizer.DefaultMaxPerFolder,
		},
	}
}

// Load loads configuration from file and environment variables. Environment
// variables (BMORG_PROBE_CONCURRENCY and friends) take precedence over config
// file values; a missing config file just means defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(homeDir, ".config", "bmorg"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	defaults := Default()
	v.SetDefault("probe.concurrency", defaults.Probe.Concurrency)
	v.SetDefault("probe.timeout", defaults.Probe.Timeout)
	v.SetDefault("probe.user_agent", defaults.Probe.UserAgent)
	v.SetDefault("probe.exclude_domains", defaults.Probe.ExcludeDomains)
	v.SetDefault("analyzer.max_features", defaults.Analyzer.MaxFeatures)
	v.SetDefault("analyzer.cluster_eps", defaults.Analyzer.ClusterEps)
	v.SetDefault("analyzer.cluster_min_pts", defaults.Analyzer.ClusterMinPts)
	v.SetDefault("analyzer.min_category_size", defaults.Analyzer.MinCategorySize)
	v.SetDefault("organizer.max_per_folder", defaults.Organizer.MaxPerFolder)

	v.SetEnvPrefix("BMORG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Probe: ProbeConfig{
			Concurrency:    v.GetInt("probe.concurrency"),
			Timeout:        v.GetDuration("probe.timeout"),
			UserAgent:      v.GetString("probe.user_agent"),
			ExcludeDomains: v.GetStringSlice("probe.exclude_domains"),
		},
		Analyzer: analyzer.Config{
			MaxFeatures:     v.GetInt("analyzer.max_features"),
			ClusterEps:      v.GetFloat64("analyzer.cluster_eps"),
			ClusterMinPts:   v.GetInt("analyzer.cluster_min_pts"),
			MinCategorySize: v.GetInt("analyzer.min_category_size"),
		},
		Organizer: OrganizerConfig{
			MaxPerFolder: v.GetInt("organizer.max_per_folder"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "bmorg", "config.yaml"), nil
}

// Save writes the configuration to the specified path.
func Save(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.Set("probe.concurrency", cfg.Probe.Concurrency)
	v.Set("probe.timeout", cfg.Probe.Timeout.String())
	v.Set("probe.user_agent", cfg.Probe.UserAgent)
	v.Set("probe.exclude_domains", cfg.Probe.ExcludeDomains)
	v.Set("analyzer.max_features", cfg.Analyzer.MaxFeatures)
	v.Set("analyzer.cluster_eps", cfg.Analyzer.ClusterEps)
	v.Set("analyzer.cluster_min_pts", cfg.Analyzer.ClusterMinPts)
	v.Set("analyzer.min_category_size", cfg.Analyzer.MinCategorySize)
	v.Set("organizer.max_per_folder", cfg.Organizer.MaxPerFolder)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
