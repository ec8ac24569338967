// =============================================================================
// Roof Adjustment Engine - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (roofadj)
//   ├── processCmd  (roofadj process)
//   ├── serveCmd    (roofadj serve)
//   ├── catalogCmd  (roofadj catalog search)
//   ├── validateCmd (roofadj validate)
//   └── versionCmd  (roofadj version)
//
// CONFIGURATION:
//   Settings are resolved in this order, later sources winning:
//   1. Built-in defaults
//   2. The config file (--config, YAML or TOML; a missing file is fine)
//   3. A .env file in the working directory
//   4. ROOFADJ_* environment variables
//   5. Command-line flags
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalogloader"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/config"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/engine"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/rules"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// overlay resolves environment variables and flags on top of the file
// configuration.
var overlay = viper.New()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "roofadj",
	Short: "Roof Adjustment Engine - bring carrier roof estimates in line with measurements",

	Long: `The Roof Adjustment Engine reviews an insurance carrier's roofing estimate
against the roof measurement report and produces an adjusted estimate with a
full audit trail of what changed and why.

Key Features:
  - Quantity rules for shingles, starter, steep charges, ridge, flashing and felt
  - Missing line items inserted at price catalog rates
  - Carrier descriptions replaced with their catalog equivalents
  - Batch processing of claim directories
  - HTTP service compatible with the estimate review frontend

Example Usage:
  roofadj process --input claim.json --output adjusted.json
  roofadj process --line-items items.json --roof-data roof.json --format text
  roofadj process --batch
  roofadj serve --addr :8080
  roofadj catalog search "drip edge"`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (YAML or TOML)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().String(
		"catalog",
		"",
		"Path to the price catalog (CSV, TSV or XLSX); overrides catalog_paths",
	)

	rootCmd.PersistentFlags().String(
		"log-level",
		"",
		"Log level: debug, info, warn, error",
	)

	_ = overlay.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = overlay.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig loads .env and wires ROOFADJ_* environment variables into the
// overlay. A missing .env file is not an error.
func initConfig() {
	_ = godotenv.Load()

	overlay.SetEnvPrefix("ROOFADJ")
	overlay.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	overlay.AutomaticEnv()
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig reads the config file and applies the environment and flag
// overlay.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	if overlay.IsSet("catalog_path") && overlay.GetString("catalog_path") != "" {
		cfg.CatalogPaths = []string{overlay.GetString("catalog_path")}
	}
	if overlay.IsSet("log_level") && overlay.GetString("log_level") != "" {
		cfg.LogLevel = overlay.GetString("log_level")
	}
	if overlay.IsSet("output_dir") && overlay.GetString("output_dir") != "" {
		cfg.OutputDir = overlay.GetString("output_dir")
	}
	if overlay.IsSet("server.addr") && overlay.GetString("server.addr") != "" {
		cfg.Server.Addr = overlay.GetString("server.addr")
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger builds the process logger for cfg.
func newLogger(cfg *config.MainConfig) logging.Logger {
	return logging.New(strings.ToLower(cfg.LogLevel))
}

// loadCatalog loads the first catalog found on the configured paths. It
// never fails; a missing catalog yields an empty one.
func loadCatalog(cfg *config.MainConfig, log logging.Logger) *catalog.Catalog {
	return catalogloader.Load(catalogSearchPaths(cfg.CatalogPaths), cfg.CSVSettings, logging.Named(log, "catalog"))
}

// catalogSearchPaths appends, for every relative path, the same path under
// the binary's directory, so an installed binary finds a catalog shipped
// beside it.
func catalogSearchPaths(paths []string) []string {
	out := append([]string(nil), paths...)
	dir := utils.ExecutableDir()
	if dir == "" {
		return out
	}
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			out = append(out, filepath.Join(dir, p))
		}
	}
	return out
}

// engineOptions maps the configuration onto engine options.
func engineOptions(cfg *config.MainConfig, log logging.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logging.Named(log, "engine")),
		engine.WithOptions(rules.Options{
			UnitCostFloor:         cfg.Rules.UnitCostFloor,
			WarnUnpricedAdditions: cfg.Rules.WarnUnpricedAdditions,
		}),
	}
}
