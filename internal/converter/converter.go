// =============================================================================
// Roof Adjustment Engine - Claim File Converter
// =============================================================================
//
// This module turns one claim file into an adjusted result document. It is
// the unit of work of `roofadj process --batch`.
//
// CONVERSION PIPELINE:
//   1. Load the claim file (line items and roof measurements)
//   2. Validate it (findings are counted and logged)
//   3. Run the engine
//   4. Write the result document to the output directory
//   5. Archive the claim file
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. A Converter only reads the
//   shared engine, so any number may run at once.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/config"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/engine"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/report"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/validation"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single claim file.
type Result struct {
	// FilePath is the claim file that was processed.
	FilePath string

	// OutputFile is the written result document. Empty on failure.
	OutputFile string

	// ArchivePath is where the claim file was moved, if it was archived.
	ArchivePath string

	// ValidationLog is the findings log, written only when there are findings.
	ValidationLog string

	Success bool

	// Error is set when Success is false.
	Error error

	Stats ProcessingStats
}

// ProcessingStats contains statistics about one claim run.
type ProcessingStats struct {
	RunID string

	// LineItems is the number of carrier line items read.
	LineItems int

	// AdjustedLineItems is the number of items in the adjusted estimate.
	AdjustedLineItems int

	Adjustments int
	Additions   int
	Warnings    int

	// ValidationFindings is the number of input validation findings.
	ValidationFindings int

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter processes a single claim file.
type Converter struct {
	claimPath  string
	engine     *engine.Engine
	mainConfig *config.MainConfig
	files      *utils.FileManager
	logger     logging.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithArchive moves the claim file with fm after a successful run.
func WithArchive(fm *utils.FileManager) Option {
	return func(c *Converter) { c.files = fm }
}

// New creates a new Converter.
//
// PARAMETERS:
//   - claimPath: The claim file to process.
//   - e: The engine to run the claim through.
//   - mainConfig: Supplies the output directory and file name format.
//   - opts: Optional settings.
//
// RETURNS:
//   - A new Converter instance.
func New(claimPath string, e *engine.Engine, mainConfig *config.MainConfig, opts ...Option) *Converter {
	c := &Converter{
		claimPath:  claimPath,
		engine:     e,
		mainConfig: mainConfig,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file. It never panics on bad input;
// every failure is reported in the Result.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{FilePath: c.claimPath}

	c.logger.Info("Processing file: %s", c.claimPath)

	// =========================================================================
	// STEP 1: LOAD CLAIM
	// =========================================================================

	claim, err := engine.LoadClaim(c.claimPath)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.LineItems = len(claim.LineItems)

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================
	// The engine accepts imperfect estimates, so findings are only counted
	// and written to a log next to the output.

	validationResult := validation.Validate(claim.LineItems, claim.RoofMeasurements)
	result.Stats.ValidationFindings = len(validationResult.Errors)
	if validationResult.ErrorCount > 0 {
		c.logger.Warn("%s has %d validation error(s)", filepath.Base(c.claimPath), validationResult.ErrorCount)
	}
	if len(validationResult.Errors) > 0 {
		logPath := filepath.Join(c.mainConfig.OutputDir, c.baseName()+"_validation.log")
		if err := validation.WriteErrorLog(validationResult.Errors, logPath); err != nil {
			c.logger.Warn("Failed to write validation log: %v", err)
		} else {
			result.ValidationLog = logPath
		}
	}

	// =========================================================================
	// STEP 3: RUN ENGINE
	// =========================================================================

	adjusted, err := c.engine.Process(claim)
	if err != nil {
		result.Error = err
		return result
	}

	summary := adjusted.AdjustmentResults.Summary
	result.Stats.RunID = adjusted.RunID
	result.Stats.AdjustedLineItems = len(adjusted.AdjustedLineItems)
	result.Stats.Adjustments = summary.TotalAdjustments
	result.Stats.Additions = summary.TotalAdditions
	result.Stats.Warnings = summary.TotalWarnings

	// =========================================================================
	// STEP 4: WRITE OUTPUT
	// =========================================================================

	outputPath := filepath.Join(c.mainConfig.OutputDir, c.outputFileName())
	if err := report.WriteJSON(adjusted, outputPath); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath
	c.logger.Info("Wrote output to: %s", outputPath)

	// =========================================================================
	// STEP 5: ARCHIVE
	// =========================================================================

	if c.files != nil {
		archivePath, err := c.files.ArchiveInputFile(c.claimPath)
		if err != nil {
			// The result is already written; a failed move is not fatal.
			c.logger.Warn("Failed to archive %s: %v", c.claimPath, err)
		} else {
			result.ArchivePath = archivePath
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// outputFileName applies the configured name format. {name} is the claim
// file's base name without extension.
func (c *Converter) outputFileName() string {
	return utils.GenerateOutputFileName(c.mainConfig.OutputNameFormat, map[string]string{"name": c.baseName()})
}

func (c *Converter) baseName() string {
	base := filepath.Base(c.claimPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
