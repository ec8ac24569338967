// =============================================================================
// Roof Adjustment Engine - Report Writer
// =============================================================================
//
// This module renders a run Result for people and for downstream systems.
//
// OUTPUT FORMATS:
//   - json: the full Result, indented, written atomically
//   - text: a terminal report with the totals, every adjustment, every
//     addition and every warning
//
// The JSON document is the contract with downstream consumers; the text
// report is for reviewers and may change freely.
//
// =============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
	"github.com/ginjaninja78/roof-adjustment-engine/pkg/utils"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	return format == FormatJSON || format == FormatText
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

// MarshalJSON encodes a result the way it is written to disk: two-space
// indentation and a trailing newline.
func MarshalJSON(result *types.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the result to path atomically.
//
// PARAMETERS:
//   - result: The run result.
//   - path: The output file. Parent directories are created.
//
// RETURNS:
//   - An error if encoding or writing fails.
func WriteJSON(result *types.Result, path string) error {
	data, err := MarshalJSON(result)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// =============================================================================
// TEXT REPORT
// =============================================================================

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorMuted   = lipgloss.Color("#565f89")

	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(colorPrimary).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(22)
	ruleStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	addStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// Totals holds the money totals of an estimate.
type Totals struct {
	RCV decimal.Decimal
	ACV decimal.Decimal
}

// Sum adds up the RCV and ACV of items. Amounts are summed as decimals so
// that long estimates do not accumulate float error.
func Sum(items []types.LineItem) Totals {
	t := Totals{RCV: decimal.Zero, ACV: decimal.Zero}
	for _, item := range items {
		t.RCV = t.RCV.Add(decimal.NewFromFloat(item.RCV))
		t.ACV = t.ACV.Add(decimal.NewFromFloat(item.ACV))
	}
	return t
}

// Text renders the review report for a result.
func Text(result *types.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Roof Adjustment Report"))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render("Run " + result.RunID))
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(overview(result)))
	b.WriteString("\n\n")

	writeAdjustments(&b, result.AdjustmentResults.Adjustments)
	writeAdditions(&b, result.AdjustmentResults.Additions)
	writeWarnings(&b, result.AdjustmentResults.Warnings)

	return b.String()
}

// WriteText writes the text report to w.
func WriteText(w io.Writer, result *types.Result) error {
	if _, err := io.WriteString(w, Text(result)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func overview(result *types.Result) string {
	m := result.RoofMeasurements
	before := Sum(result.OriginalLineItems)
	after := Sum(result.AdjustedLineItems)
	s := result.AdjustmentResults.Summary

	rows := []string{
		row("Total squares", fmt.Sprintf("%.2f", m.TotalSquares)),
		row("Starter (LF/100)", fmt.Sprintf("%.2f", m.StarterQty)),
		row("Steep 7/12-9/12", fmt.Sprintf("%.0f sq ft", m.SteepRoofAreas.Pitch7To9)),
		row("Steep 10/12-12/12", fmt.Sprintf("%.0f sq ft", m.SteepRoofAreas.Pitch10To12)),
		row("Steep 12/12+", fmt.Sprintf("%.0f sq ft", m.SteepRoofAreas.Pitch12Plus)),
		"",
		row("Line items", fmt.Sprintf("%d -> %d", len(result.OriginalLineItems), len(result.AdjustedLineItems))),
		row("RCV", money(before.RCV, after.RCV)),
		row("ACV", money(before.ACV, after.ACV)),
		"",
		row("Adjustments", fmt.Sprintf("%d", s.TotalAdjustments)),
		row("Additions", fmt.Sprintf("%d", s.TotalAdditions)),
		row("Warnings", fmt.Sprintf("%d", s.TotalWarnings)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func money(before, after decimal.Decimal) string {
	diff := after.Sub(before)
	sign := "+"
	if diff.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("%s -> %s (%s%s)", before.StringFixed(2), after.StringFixed(2), sign, diff.StringFixed(2))
}

func writeAdjustments(b *strings.Builder, records []types.AdjustmentRecord) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Quantity adjustments (%d)", len(records))))
	b.WriteString("\n")
	for _, r := range records {
		fmt.Fprintf(b, "  %s %s: %s -> %s\n", ruleStyle.Render("["+r.Rule+"]"), r.Description, qty(r.OldQuantity), qty(r.NewQuantity))
		fmt.Fprintf(b, "      %s\n", ruleStyle.Render(r.Reason))
	}
	b.WriteString("\n")
}

func writeAdditions(b *strings.Builder, records []types.AdjustmentRecord) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Added line items (%d)", len(records))))
	b.WriteString("\n")
	for _, r := range records {
		fmt.Fprintf(b, "  %s %s\n", ruleStyle.Render("["+r.Rule+"]"), addStyle.Render(fmt.Sprintf("+ %s: %s %s", r.Description, qty(r.Quantity), r.Unit)))
	}
	b.WriteString("\n")
}

func writeWarnings(b *strings.Builder, records []types.AdjustmentRecord) {
	if len(records) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Warnings (%d)", len(records))))
	b.WriteString("\n")
	for _, r := range records {
		fmt.Fprintf(b, "  %s\n", warnStyle.Render(fmt.Sprintf("! %s: %s", r.Description, r.Reason)))
	}
	b.WriteString("\n")
}

func qty(v *float64) string {
	if v == nil {
		return "-"
	}
	return decimal.NewFromFloat(*v).Round(2).String()
}
