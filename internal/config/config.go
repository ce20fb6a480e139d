// Package config handles configuration loading for autodcf.
// It supports YAML config files, a local .env file, and environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. AUTODCF_REPORT_FORMAT.
const EnvPrefix = "AUTODCF"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis" yaml:"analysis"`
	Loader   LoaderConfig   `mapstructure:"loader"   json:"loader"   yaml:"loader"`
	Report   ReportConfig   `mapstructure:"report"   json:"report"   yaml:"report"`
	API      APIConfig      `mapstructure:"api"      json:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  json:"logging"  yaml:"logging"`
}

// AnalysisConfig holds the statement analysis heuristics.
type AnalysisConfig struct {
	FiscalYearEnd       int      `mapstructure:"fiscal_year_end"        json:"fiscal_year_end"        yaml:"fiscal_year_end"`        // month 1-12
	QuarterlyMaxGapDays float64  `mapstructure:"quarterly_max_gap_days" json:"quarterly_max_gap_days" yaml:"quarterly_max_gap_days"` // median gap threshold
	RevenueCandidates   []string `mapstructure:"revenue_candidates"     json:"revenue_candidates"     yaml:"revenue_candidates"`
	DateColumns         []string `mapstructure:"date_columns"           json:"date_columns"           yaml:"date_columns"`
}

// LoaderConfig holds statement file loading settings.
type LoaderConfig struct {
	Concurrency   int    `mapstructure:"concurrency"    json:"concurrency"    yaml:"concurrency"`
	Sheet         string `mapstructure:"sheet"          json:"sheet"          yaml:"sheet"`          // xlsx sheet name, empty = first
	TableSelector string `mapstructure:"table_selector" json:"table_selector" yaml:"table_selector"` // CSS selector for HTML statements
}

// ReportConfig holds presentation settings.
type ReportConfig struct {
	Format string `mapstructure:"format" json:"format" yaml:"format"` // "text", "json", "yaml", "html", "pdf"
	Title  string `mapstructure:"title"  json:"title"  yaml:"title"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host          string   `mapstructure:"host"           json:"host"           yaml:"host"`
	Port          int      `mapstructure:"port"           json:"port"           yaml:"port"`
	CORSOrigins   []string `mapstructure:"cors_origins"   json:"cors_origins"   yaml:"cors_origins"`
	MaxUploadMB   int      `mapstructure:"max_upload_mb"  json:"max_upload_mb"  yaml:"max_upload_mb"`
	ShutdownGrace int      `mapstructure:"shutdown_grace" json:"shutdown_grace" yaml:"shutdown_grace"` // seconds
	RateLimit     int      `mapstructure:"rate_limit"     json:"rate_limit"     yaml:"rate_limit"`     // analyze requests per minute
	ReportTTL     int      `mapstructure:"report_ttl"     json:"report_ttl"     yaml:"report_ttl"`     // minutes a report stays retrievable
	ReportCache   int      `mapstructure:"report_cache"   json:"report_cache"   yaml:"report_cache"`   // max cached reports
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  json:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" json:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.autodcf/config.yaml
//  3. /etc/autodcf/config.yaml
//
// A .env file in the working directory is applied to the environment first.
// Environment variables override config file values.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".autodcf"))
	v.AddConfigPath("/etc/autodcf")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// Defaults are static; decoding them cannot fail.
		panic(err)
	}
	return cfg
}

// Validate checks value ranges that the rest of the tool relies on.
func (c *Config) Validate() error {
	var problems []string
	if c.Analysis.FiscalYearEnd < 1 || c.Analysis.FiscalYearEnd > 12 {
		problems = append(problems, fmt.Sprintf("analysis.fiscal_year_end must be 1-12, got %d", c.Analysis.FiscalYearEnd))
	}
	if c.Analysis.QuarterlyMaxGapDays <= 0 {
		problems = append(problems, "analysis.quarterly_max_gap_days must be positive")
	}
	if len(c.Analysis.RevenueCandidates) == 0 {
		problems = append(problems, "analysis.revenue_candidates must not be empty")
	}
	if c.API.RateLimit < 1 {
		problems = append(problems, "api.rate_limit must be at least 1")
	}
	if c.Loader.Concurrency < 1 {
		problems = append(problems, "loader.concurrency must be at least 1")
	}
	switch strings.ToLower(c.Report.Format) {
	case "text", "json", "yaml", "html", "pdf":
	default:
		problems = append(problems, fmt.Sprintf("report.format %q is not one of text, json, yaml, html, pdf", c.Report.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.fiscal_year_end", 12)
	v.SetDefault("analysis.quarterly_max_gap_days", 150.0)
	v.SetDefault("analysis.revenue_candidates", []string{"revenue", "total revenue", "sales", "net sales"})
	v.SetDefault("analysis.date_columns", []string{"date", "period end", "period ending", "fiscal date", "report date"})

	// Loader defaults
	v.SetDefault("loader.concurrency", 3)
	v.SetDefault("loader.sheet", "")
	v.SetDefault("loader.table_selector", "table")

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.title", "Financial Statement Analysis")

	// API defaults
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("api.max_upload_mb", 20)
	v.SetDefault("api.shutdown_grace", 15)
	v.SetDefault("api.rate_limit", 30)
	v.SetDefault("api.report_ttl", 30)
	v.SetDefault("api.report_cache", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// loadDotEnv applies the dotenv file at path when present. Existing
// variables win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
