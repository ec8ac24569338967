// =============================================================================
// Roof Adjustment Engine - Input Validation
// =============================================================================
//
// This module checks carrier line items and roof measurements before a run.
// The engine never refuses input because of these findings: they are logged
// so a reviewer can see why an adjustment looks odd. The validate command
// uses the same checks and fails when any finding has "error" severity.
//
// LINE ITEM CHECKS:
//   - Empty description (warning): no rule can ever match the item
//   - Duplicate description (warning): only the first item is adjusted
//   - Non-numeric line number (warning): ignored when numbering inserts
//   - Negative quantity or unit price (error)
//   - dep_percent outside 0..100 (error)
//   - RCV that does not equal quantity * unit_price (warning): it will be
//     recomputed
//
// MEASUREMENT CHECKS:
//   - Missing or zero Total Roof Area (warning): shingle rules will skip
//   - Negative values (error)
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/metrics"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// rcvTolerance is the slack allowed between a carrier RCV and
// quantity * unit_price before it is reported.
const rcvTolerance = 0.01

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is "error" or "warning".
	Severity string

	// Field is the name of the field that failed validation.
	Field string

	// Value is the offending value as text.
	Value string

	// Rule is the check that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// Index is the 0-based position of the line item, or -1 for
	// measurement findings.
	Index int

	// LineNumber is the item's line number as given.
	LineNumber string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[%s] Measurement '%s': %s (value: '%s')",
			strings.ToUpper(e.Severity), e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("[%s] Item %d (line %s), Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Index+1,
		e.LineNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the findings of a validation pass.
type ValidationResult struct {
	// IsValid is true if there are no error-severity findings.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

func newResult(findings []*ValidationError) *ValidationResult {
	result := &ValidationResult{IsValid: true, Errors: findings}
	for _, f := range findings {
		if f.Severity == SeverityError {
			result.ErrorCount++
			result.IsValid = false
		} else {
			result.WarningCount++
		}
	}
	return result
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// Validate checks a whole claim.
//
// PARAMETERS:
//   - items: The carrier's line items.
//   - m: The raw roof measurements.
//
// RETURNS:
//   - A ValidationResult with every finding in item order, followed by the
//     measurement findings.
func Validate(items []types.LineItem, m types.RoofMetrics) *ValidationResult {
	findings := ValidateLineItems(items)
	findings = append(findings, ValidateMeasurements(m)...)
	return newResult(findings)
}

// ValidateLineItems checks the carrier's line items.
func ValidateLineItems(items []types.LineItem) []*ValidationError {
	findings := make([]*ValidationError, 0)
	seen := make(map[string]int, len(items))

	for i := range items {
		item := &items[i]
		add := func(severity, field, value, rule, message string) {
			findings = append(findings, &ValidationError{
				Severity:   severity,
				Field:      field,
				Value:      value,
				Rule:       rule,
				Message:    message,
				Index:      i,
				LineNumber: item.LineNumber,
			})
		}

		description := strings.TrimSpace(item.Description)
		if description == "" {
			add(SeverityWarning, "description", item.Description, "required", "description is empty; no rule can match this item")
		} else if first, dup := seen[description]; dup {
			add(SeverityWarning, "description", description, "unique", fmt.Sprintf("duplicates item %d; only the first is adjusted", first+1))
		} else {
			seen[description] = i
		}

		if _, err := strconv.ParseFloat(strings.TrimSpace(item.LineNumber), 64); err != nil {
			add(SeverityWarning, "line_number", item.LineNumber, "numeric", "line number is not numeric")
		}

		if item.Quantity < 0 {
			add(SeverityError, "quantity", formatFloat(item.Quantity), "non_negative", "quantity is negative")
		}
		if item.UnitPrice < 0 {
			add(SeverityError, "unit_price", formatFloat(item.UnitPrice), "non_negative", "unit price is negative")
		}

		if dep := item.DepreciationPercent(); dep < 0 || dep > 100 {
			add(SeverityError, "dep_percent", formatFloat(dep), "range", "depreciation percent must be between 0 and 100")
		}

		if want := item.Quantity * item.UnitPrice; math.Abs(item.RCV-want) > rcvTolerance {
			add(SeverityWarning, "RCV", formatFloat(item.RCV), "derived",
				fmt.Sprintf("RCV should be quantity * unit_price = %.2f; it will be recomputed", want))
		}
	}

	return findings
}

// ValidateMeasurements checks the raw roof measurements.
func ValidateMeasurements(m types.RoofMetrics) []*ValidationError {
	findings := make([]*ValidationError, 0)

	if metrics.Metric(m, metrics.KeyTotalRoofArea) == 0 {
		findings = append(findings, &ValidationError{
			Severity: SeverityWarning,
			Field:    metrics.KeyTotalRoofArea,
			Value:    "0",
			Rule:     "required",
			Message:  "missing or zero; shingle quantity rules will be skipped",
			Index:    -1,
		})
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if m[k] < 0 {
			findings = append(findings, &ValidationError{
				Severity: SeverityError,
				Field:    k,
				Value:    formatFloat(m[k]),
				Rule:     "non_negative",
				Message:  "measurement is negative",
				Index:    -1,
			})
		}
	}

	return findings
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes validation errors to a log file.
//
// PARAMETERS:
//   - errors: The validation errors to write.
//   - filePath: The path to the output file.
//
// RETURNS:
//   - An error if writing fails.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation log written %s\n\n", time.Now().Format(time.RFC3339)))
	builder.WriteString(FormatErrors(errors))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write validation log: %w", err)
	}
	return nil
}
