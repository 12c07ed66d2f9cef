//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-ecomgen.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the layout used for date values in configuration.
const DateLayout = "2006-01-02"

// Config holds all configuration for pgedge-ecomgen.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects console ("pretty") or "json" log output.
	LogFormat string `mapstructure:"log_format"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`
}

// GenerateConfig holds configuration for dataset generation.
type GenerateConfig struct {
	// Scale multiplies the base record counts of every table except
	// order items, whose count is derived.
	Scale float64 `mapstructure:"scale"`

	// OutputDir is where the CSV artifacts are written.
	OutputDir string `mapstructure:"output_dir"`

	// Seed initializes the run's random source. Identical seed and scale
	// produce byte-identical artifacts.
	Seed uint64 `mapstructure:"seed"`

	// StartDate and EndDate bound every generated date (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// WebEventBatchSize is the number of web events generated per batch.
	WebEventBatchSize int `mapstructure:"web_event_batch_size"`

	// ProgressInterval is how often (in rows) progress is logged.
	ProgressInterval int64 `mapstructure:"progress_interval"`

	// Weighting is "none" (uniform sampling, segment and seasonal weights
	// computed but unused) or "applied".
	Weighting string `mapstructure:"weighting"`

	// SeasonalProfile names the seasonal multiplier profile.
	SeasonalProfile string `mapstructure:"seasonal_profile"`

	// MetricsFile, when set, receives a Prometheus textfile with the
	// generation summary.
	MetricsFile string `mapstructure:"metrics_file"`
}

// LoadConfig holds configuration for warehouse loading.
type LoadConfig struct {
	// DataDir is where the CSV artifacts are read from.
	DataDir string `mapstructure:"data_dir"`

	// ChunkSize is the number of rows copied per chunk.
	ChunkSize int `mapstructure:"chunk_size"`

	// Tables restricts loading to the named tables (default: all).
	Tables []string `mapstructure:"tables"`

	// WaitTimeout is how long to wait for input files in seconds
	// (0 = do not wait).
	WaitTimeout int `mapstructure:"wait_timeout"`

	// PollInterval is how often to check for input files in seconds.
	PollInterval int `mapstructure:"poll_interval"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "pretty",
		Generate: GenerateConfig{
			Scale:             1.0,
			OutputDir:         "data",
			Seed:              42,
			StartDate:         "2022-01-01",
			EndDate:           "2024-12-31",
			WebEventBatchSize: 1000000,
			ProgressInterval:  100000,
			Weighting:         "none",
			SeasonalProfile:   "retail-holiday",
		},
		Load: LoadConfig{
			DataDir:      "data",
			ChunkSize:    10000,
			WaitTimeout:  0,
			PollInterval: 60,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-ecomgen.yaml
// 3. ~/.config/pgedge-ecomgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-ecomgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-ecomgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// DateRange parses the configured generation date range.
func (g GenerateConfig) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	end, err := time.Parse(DateLayout, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", g.EndDate, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must be after start_date")
	}
	return start, end, nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	g := c.Generate
	if g.Scale <= 0 {
		return fmt.Errorf("scale must be greater than 0")
	}
	if g.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if g.WebEventBatchSize < 1 {
		return fmt.Errorf("web_event_batch_size must be at least 1")
	}
	if g.ProgressInterval < 1 {
		return fmt.Errorf("progress_interval must be at least 1")
	}
	if g.Weighting != "none" && g.Weighting != "applied" {
		return fmt.Errorf("weighting must be 'none' or 'applied'")
	}
	if g.SeasonalProfile == "" {
		return fmt.Errorf("seasonal_profile is required")
	}
	if _, _, err := g.DateRange(); err != nil {
		return err
	}
	return nil
}

// ValidateCheck checks configuration required for the check command.
func (c *Config) ValidateCheck() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.ValidateCheck(); err != nil {
		return err
	}
	if c.Load.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Load.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be at least 1")
	}
	if c.Load.WaitTimeout < 0 {
		return fmt.Errorf("wait_timeout must be non-negative")
	}
	if c.Load.WaitTimeout > 0 && c.Load.PollInterval < 1 {
		return fmt.Errorf("poll_interval must be at least 1 second when waiting")
	}
	return nil
}
