package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceFile    SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective setting for the status command.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// Describe lists the settings users most often override, with their values
// and origin. Defaults are compared against Default().
func Describe(cfg *Config) []SettingStatus {
	def := Default()
	return []SettingStatus{
		describe("analysis.fiscal_year_end", cfg.Analysis.FiscalYearEnd, def.Analysis.FiscalYearEnd),
		describe("analysis.quarterly_max_gap_days", cfg.Analysis.QuarterlyMaxGapDays, def.Analysis.QuarterlyMaxGapDays),
		describe("analysis.revenue_candidates", strings.Join(cfg.Analysis.RevenueCandidates, ","), strings.Join(def.Analysis.RevenueCandidates, ",")),
		describe("loader.concurrency", cfg.Loader.Concurrency, def.Loader.Concurrency),
		describe("loader.sheet", cfg.Loader.Sheet, def.Loader.Sheet),
		describe("report.format", cfg.Report.Format, def.Report.Format),
		describe("api.port", cfg.API.Port, def.API.Port),
		describe("logging.level", cfg.Logging.Level, def.Logging.Level),
	}
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func describe(key string, value, def any) SettingStatus {
	status := SettingStatus{
		Key:   key,
		Value: fmt.Sprint(value),
	}

	switch {
	case os.Getenv(EnvVar(key)) != "":
		status.Source = SourceEnv
	case fmt.Sprint(value) != fmt.Sprint(def):
		status.Source = SourceFile
	default:
		status.Source = SourceDefault
	}

	return status
}
