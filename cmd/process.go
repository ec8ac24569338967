// =============================================================================
// Roof Adjustment Engine - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs claims through the
// engine.
//
// COMMAND USAGE:
//   roofadj process --input claim.json [--output out.json]
//   roofadj process --line-items items.json --roof-data roof.json
//   roofadj process --batch
//
// FLAGS:
//   --input       : Combined claim file ({line_items, roof_measurements})
//   --line-items  : Line items file (array or {"line_items": [...]})
//   --roof-data   : Roof measurements file
//   --output      : Result file; without it the result goes to stdout
//   --output-dir  : Directory for a generated result file name
//   --format      : json (default) or text
//   --batch       : Process every *.json claim in input_dir concurrently
//   --no-archive  : Leave batch claim files in place after processing
//
// BATCH PIPELINE:
//   1. Discover claim files in input_dir
//   2. Process each file (max_concurrency at a time)
//   3. Write each result to output_dir, archive the claim file
//   4. Write the batch summary log
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/config"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/converter"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/engine"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/report"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputPath     string
	lineItemsPath string
	roofDataPath  string
	outputPath    string
	outputDir     string
	outputFormat  string
	batchMode     bool
	noArchive     bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Adjust a claim estimate against its roof measurements",
	Long: `The process command runs a claim through the adjustment rules and writes the
adjusted estimate with its audit trail.

A claim is given either as one combined file (--input) or as separate line
item and roof measurement files (--line-items and --roof-data).

With --batch every *.json file in input_dir is processed concurrently:
  - Each result is written to output_dir
  - Each claim file is moved to input_archive_dir
  - Failed claims stay in input_dir and are listed in the batch summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if !report.ValidFormat(outputFormat) {
			return fmt.Errorf("unsupported format %q (use json or text)", outputFormat)
		}
		if batchMode {
			return runBatch()
		}
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Combined claim file")
	processCmd.Flags().StringVar(&lineItemsPath, "line-items", "", "Line items file")
	processCmd.Flags().StringVar(&roofDataPath, "roof-data", "", "Roof measurements file")
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Result file (default: stdout)")
	processCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for a generated result file name")
	processCmd.Flags().StringVar(&outputFormat, "format", report.FormatJSON, "Output format: json or text")
	processCmd.Flags().BoolVar(&batchMode, "batch", false, "Process every claim file in input_dir")
	processCmd.Flags().BoolVar(&noArchive, "no-archive", false, "Do not archive claim files in batch mode")

	processCmd.MarkFlagsMutuallyExclusive("input", "line-items")
	processCmd.MarkFlagsMutuallyExclusive("input", "roof-data")
	processCmd.MarkFlagsMutuallyExclusive("batch", "input")
	processCmd.MarkFlagsMutuallyExclusive("batch", "line-items")
	processCmd.MarkFlagsRequiredTogether("line-items", "roof-data")
	processCmd.MarkFlagsMutuallyExclusive("output", "output-dir")
}

// =============================================================================
// SINGLE CLAIM
// =============================================================================

func runProcess() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer logging.Sync(log)

	claim, err := readClaim()
	if err != nil {
		return err
	}

	e := engine.New(loadCatalog(cfg, log), engineOptions(cfg, log)...)
	result, err := e.Process(claim)
	if err != nil {
		var ruleErr *engine.RuleError
		if errors.As(err, &ruleErr) {
			return fmt.Errorf("rule %s stopped the run: %w", ruleErr.RuleID, err)
		}
		return err
	}

	target := outputPath
	if target == "" && outputDir != "" {
		target = filepath.Join(outputDir, outputName(cfg))
	}

	if target != "" {
		if err := report.WriteJSON(result, target); err != nil {
			return err
		}
		log.Info("Wrote result to %s", target)
	}

	switch {
	case outputFormat == report.FormatText:
		return report.WriteText(os.Stdout, result)
	case target == "":
		data, err := report.MarshalJSON(result)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return nil
}

// readClaim loads the claim from either the combined file or the pair of
// separate files.
func readClaim() (*types.Claim, error) {
	if inputPath != "" {
		return engine.LoadClaim(inputPath)
	}
	if lineItemsPath == "" || roofDataPath == "" {
		return nil, errors.New("either --input or both --line-items and --roof-data are required")
	}

	items, err := engine.LoadLineItems(lineItemsPath)
	if err != nil {
		return nil, err
	}
	m, err := engine.LoadRoofMeasurements(roofDataPath)
	if err != nil {
		return nil, err
	}
	return &types.Claim{LineItems: items, RoofMeasurements: m}, nil
}

func outputName(cfg *config.MainConfig) string {
	source := inputPath
	if source == "" {
		source = lineItemsPath
	}
	base := filepath.Base(source)
	name := base[:len(base)-len(filepath.Ext(base))]
	return utils.GenerateOutputFileName(cfg.OutputNameFormat, map[string]string{"name": name})
}

// =============================================================================
// BATCH
// =============================================================================

func runBatch() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	log := newLogger(cfg)
	defer logging.Sync(log)

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = !noArchive
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	files, err := fm.DiscoverInputFiles("*.json")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Info("No claim files found in %s", cfg.InputDir)
		return nil
	}
	log.Info("Found %d claim file(s) in %s", len(files), cfg.InputDir)

	e := engine.New(loadCatalog(cfg, log), engineOptions(cfg, log)...)
	convLog := logging.Named(log, "converter")
	newConverter := func(path string) *converter.Converter {
		return converter.New(path, e, cfg, converter.WithLogger(convLog), converter.WithArchive(fm))
	}

	summary := converter.Batch(files, newConverter, cfg.MaxConcurrency, !cfg.ShouldContinueOnError())

	for _, pf := range summary.ProcessedFiles {
		fmt.Printf("  ✓ %s -> %s\n", filepath.Base(pf.InputFile), pf.OutputFile)
	}
	for _, ff := range summary.FailedFilesList {
		fmt.Printf("  ✗ %s: %s\n", filepath.Base(ff.InputFile), ff.ErrorMessage)
	}

	summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
	if err != nil {
		log.Warn("Failed to write batch summary: %v", err)
	} else {
		fmt.Printf("Summary: %s\n", summaryPath)
	}

	fmt.Printf("Processed %d of %d file(s), %d failed\n", summary.SuccessfulFiles, summary.TotalFiles, summary.FailedFiles)
	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d claim file(s) failed", summary.FailedFiles)
	}
	return nil
}
