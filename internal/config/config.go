// =============================================================================
// Back Order Report Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. The configuration is a single YAML file with typed sections:
//
//   processing: - validation strictness, duplicate handling, report defaults
//   sort:       - sort-preference checkboxes (order number, dock, salesman,
//                 due date)
//   excel:      - output workbook rendering options
//   logging:    - log level
//
// DESIGN:
//   The configuration is read into an explicit struct, defaults are applied,
//   and the result is validated exactly once at load time. The rest of the
//   pipeline never re-reads or re-interprets configuration values.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// Processing contains the data pipeline settings.
	Processing ProcessingSettings `yaml:"processing"`

	// Sort contains the sort-preference checkboxes. At most one should be
	// active; any other combination falls back to sorting by order number.
	Sort SortSettings `yaml:"sort"`

	// Excel contains rendering options for the output workbook.
	Excel ExcelSettings `yaml:"excel"`

	// Logging contains log output settings.
	Logging LoggingSettings `yaml:"logging"`
}

// ProcessingSettings controls the data pipeline.
type ProcessingSettings struct {
	// ValidateData selects strict row rejection (true) versus best-effort
	// coercion with logged warnings (false). Rows missing a required value
	// are skipped either way.
	ValidateData *bool `yaml:"validate_data"`

	// RemoveDuplicates enables duplicate collapsing. Two records are
	// duplicates when item code, order date, customer and quantity are all
	// equal; the first occurrence by input order is kept.
	RemoveDuplicates bool `yaml:"remove_duplicates"`

	// DefaultReportType is the report tier used when the caller does not
	// specify one explicitly. One of "standard", "detailed", "summary".
	DefaultReportType string `yaml:"default_report_type"`

	// IncludeCharts controls whether the report includes a Charts sheet.
	IncludeCharts *bool `yaml:"include_charts"`
}

// SortSettings holds the four sort-preference flags.
type SortSettings struct {
	// OrderNumber sorts the record listing by order number.
	OrderNumber bool `yaml:"order_number"`

	// Dock sorts by the dock / routing field.
	Dock bool `yaml:"dock"`

	// Salesman sorts by the customer / salesman field.
	Salesman bool `yaml:"salesman"`

	// DueDate sorts by the expected (due) date.
	DueDate bool `yaml:"due_date"`
}

// ExcelSettings controls workbook rendering.
type ExcelSettings struct {
	// AutoAdjustColumns sizes each column to its longest value (capped).
	AutoAdjustColumns *bool `yaml:"auto_adjust_columns"`

	// FreezeHeaderRow freezes the header row of each data sheet.
	FreezeHeaderRow *bool `yaml:"freeze_header_row"`

	// ApplyStyling applies the header font/fill/border styling.
	ApplyStyling *bool `yaml:"apply_styling"`

	// MaxChartItems is the number of top rows fed into each chart.
	MaxChartItems int `yaml:"max_chart_items"`
}

// LoggingSettings controls log output.
type LoggingSettings struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates the result.
//
// A missing configuration file is not an error: the defaults are used. This
// mirrors the tool's original behavior of creating a default configuration
// on first run.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, cfg.validate()
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset options.
//
// Boolean options whose default is true are modeled as *bool so that an
// explicit "false" in the file can be distinguished from an absent key.
func applyDefaults(cfg *Config) {
	if cfg.Processing.ValidateData == nil {
		cfg.Processing.ValidateData = boolPtr(true)
	}
	if cfg.Processing.DefaultReportType == "" {
		cfg.Processing.DefaultReportType = "standard"
	}
	if cfg.Processing.IncludeCharts == nil {
		cfg.Processing.IncludeCharts = boolPtr(true)
	}

	if cfg.Excel.AutoAdjustColumns == nil {
		cfg.Excel.AutoAdjustColumns = boolPtr(true)
	}
	if cfg.Excel.FreezeHeaderRow == nil {
		cfg.Excel.FreezeHeaderRow = boolPtr(true)
	}
	if cfg.Excel.ApplyStyling == nil {
		cfg.Excel.ApplyStyling = boolPtr(true)
	}
	if cfg.Excel.MaxChartItems == 0 {
		cfg.Excel.MaxChartItems = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// validate checks the configuration once at load time.
func (cfg *Config) validate() error {
	switch cfg.Processing.DefaultReportType {
	case "standard", "detailed", "summary":
	default:
		return fmt.Errorf("unknown default_report_type %q (expected standard, detailed or summary)",
			cfg.Processing.DefaultReportType)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", cfg.Logging.Level)
	}

	if cfg.Excel.MaxChartItems < 0 {
		return fmt.Errorf("max_chart_items must not be negative")
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ValidateData reports whether strict row validation is enabled.
func (cfg *Config) ValidateData() bool {
	return cfg.Processing.ValidateData != nil && *cfg.Processing.ValidateData
}

// IncludeCharts reports whether chart sheets should be produced.
func (cfg *Config) IncludeCharts() bool {
	return cfg.Processing.IncludeCharts != nil && *cfg.Processing.IncludeCharts
}

// AutoAdjustColumns reports whether output columns are auto-sized.
func (cfg *Config) AutoAdjustColumns() bool {
	return cfg.Excel.AutoAdjustColumns != nil && *cfg.Excel.AutoAdjustColumns
}

// FreezeHeaderRow reports whether data sheet headers are frozen.
func (cfg *Config) FreezeHeaderRow() bool {
	return cfg.Excel.FreezeHeaderRow != nil && *cfg.Excel.FreezeHeaderRow
}

// ApplyStyling reports whether header styling is applied.
func (cfg *Config) ApplyStyling() bool {
	return cfg.Excel.ApplyStyling != nil && *cfg.Excel.ApplyStyling
}

func boolPtr(b bool) *bool {
	return &b
}
