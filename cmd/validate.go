// =============================================================================
// Roof Adjustment Engine - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the setup without
// processing anything.
//
// COMMAND USAGE:
//   roofadj validate [--claim claim.json]
//
// CHECKS:
//   1. The config file parses and its values are valid
//   2. A catalog file exists on catalog_paths and loads cleanly
//   3. With --claim, the claim's line items and measurements
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalogloader"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/engine"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/validation"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

var validateClaimPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration, catalog and optionally a claim",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateClaimPath, "claim", "", "Claim file to check")
}

func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer logging.Sync(log)

	fmt.Printf("Configuration: OK (%s)\n", cfgFile)

	// Unlike process, validate fails on a missing or broken catalog.
	catalogPath := ""
	for _, path := range catalogSearchPaths(cfg.CatalogPaths) {
		if utils.FileExists(path) {
			catalogPath = path
			break
		}
	}
	if catalogPath == "" {
		return fmt.Errorf("no catalog found in %v", cfg.CatalogPaths)
	}
	cat, err := catalogloader.LoadFile(catalogPath, cfg.CSVSettings, logging.Named(log, "catalog"))
	if err != nil {
		return fmt.Errorf("catalog %s: %w", catalogPath, err)
	}
	fmt.Printf("Catalog:       OK (%d items from %s)\n", cat.Len(), catalogPath)

	if validateClaimPath == "" {
		return nil
	}

	claim, err := engine.LoadClaim(validateClaimPath)
	if err != nil {
		return err
	}
	result := validation.Validate(claim.LineItems, claim.RoofMeasurements)
	fmt.Printf("Claim:         %d error(s), %d warning(s)\n\n", result.ErrorCount, result.WarningCount)
	if len(result.Errors) > 0 {
		fmt.Print(validation.FormatErrors(result.Errors))
	}
	if !result.IsValid {
		return errors.New("claim has validation errors")
	}
	return nil
}
