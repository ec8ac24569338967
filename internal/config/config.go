// =============================================================================
// Roof Adjustment Engine - Configuration Module
// =============================================================================
//
// This module loads the application configuration. A single file drives the
// CLI and the HTTP adapter; the rule engine itself only sees the RulesConfig
// section.
//
// FILE FORMATS:
//   - config.yaml / config.yml (gopkg.in/yaml.v3)
//   - config.toml              (github.com/BurntSushi/toml)
//
// A missing file is not an error: every key has a default so the binary
// works out of the box. Environment and flag overrides are applied on top
// of the file by cmd/root.go.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// CATALOG SETTINGS
	// =========================================================================

	// CatalogPaths is the ordered list of places to look for the price
	// catalog. The first file that exists is loaded.
	// Default: ./roof_master_macro.csv, ./public/roof_master_macro.csv
	CatalogPaths []string `yaml:"catalog_paths" toml:"catalog_paths"`

	// CSVSettings controls how delimited catalog files are read.
	CSVSettings CSVSettings `yaml:"csv_settings" toml:"csv_settings"`

	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for claim files by `process --batch`.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir"`

	// OutputDir receives result documents.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// InputArchiveDir receives claim files after they were processed
	// successfully in batch mode.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the file name of result documents.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {name}      - Base name of the input file, without extension
	// Default: "{name}_adjusted_{timestamp}.json"
	OutputNameFormat string `yaml:"output_name_format" toml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of claim files processed at once
	// in batch mode. Default: 4
	MaxConcurrency int `yaml:"max_concurrency" toml:"max_concurrency"`

	// ContinueOnError keeps a batch going when one claim fails.
	// Default: true (see applyMainConfigDefaults)
	ContinueOnError *bool `yaml:"continue_on_error" toml:"continue_on_error"`

	Rules  RulesConfig  `yaml:"rules" toml:"rules"`
	Server ServerConfig `yaml:"server" toml:"server"`
}

// CSVSettings contains settings for reading delimited catalog files.
type CSVSettings struct {
	// Delimiter is "auto" (sniffed from the first KiB), or an explicit
	// delimiter: ",", ";", "|", "tab".
	// Default: "auto"
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Sheet selects the worksheet of an .xlsx catalog. Empty means the
	// first sheet.
	Sheet string `yaml:"sheet" toml:"sheet"`
}

// RulesConfig tunes the adjustment rules.
type RulesConfig struct {
	// UnitCostFloor raises an item's unit price to the catalog price when
	// the catalog price is higher. Prices are never lowered.
	UnitCostFloor bool `yaml:"unit_cost_floor" toml:"unit_cost_floor"`

	// WarnUnpricedAdditions emits a warning record, with catalog
	// suggestions, for each inserted item the catalog has no price for.
	WarnUnpricedAdditions bool `yaml:"warn_unpriced_additions" toml:"warn_unpriced_additions"`
}

// ServerConfig configures `roofadj serve`.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string `yaml:"addr" toml:"addr"`

	// RequestTimeout bounds one /process-claim call, as a Go duration
	// string. Default: "30s"
	RequestTimeout string `yaml:"request_timeout" toml:"request_timeout"`

	// WatchCatalog reloads the catalog when its file changes on disk.
	WatchCatalog bool `yaml:"watch_catalog" toml:"watch_catalog"`
}

// Timeout parses RequestTimeout. Callers run after validation, so a parse
// failure is not expected; it falls back to 30s.
func (s ServerConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ShouldContinueOnError reports the effective continue_on_error setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// DefaultCatalogPaths is the fixed catalog search order used when the
// configuration does not name any path.
var DefaultCatalogPaths = []string{
	"roof_master_macro.csv",
	filepath.Join("public", "roof_master_macro.csv"),
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the main configuration file.
//
// PARAMETERS:
//   - configPath: Path to a .yaml, .yml or .toml file. An empty path or a
//     path that does not exist yields the defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file exists but cannot be parsed or is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data, filepath.Ext(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	return config, nil
}

// Parse decodes configuration bytes. ext selects the format (".toml" for
// TOML, anything else is YAML).
func Parse(data []byte, ext string) (*MainConfig, error) {
	var config MainConfig

	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if len(config.CatalogPaths) == 0 {
		config.CatalogPaths = append([]string(nil), DefaultCatalogPaths...)
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = "auto"
	}
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_adjusted_{timestamp}.json"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.RequestTimeout == "" {
		config.Server.RequestTimeout = "30s"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", config.LogLevel)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1 (got %d)", config.MaxConcurrency)
	}

	if d, err := time.ParseDuration(config.Server.RequestTimeout); err != nil {
		return fmt.Errorf("server.request_timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("server.request_timeout must be positive (got %s)", config.Server.RequestTimeout)
	}

	switch strings.ToLower(config.CSVSettings.Delimiter) {
	case "auto", ",", ";", "|", "tab", "\\t", "\t":
	default:
		return fmt.Errorf("csv_settings.delimiter %q is not supported", config.CSVSettings.Delimiter)
	}

	return nil
}
