package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

func ptr(v float64) *float64 { return &v }

func TestValidateLineItems(t *testing.T) {
	items := []types.LineItem{
		{LineNumber: "1", Description: "Drip edge", Quantity: 10, UnitPrice: 3, RCV: 30},
		{LineNumber: "2", Description: " Drip edge ", Quantity: 5, UnitPrice: 3, RCV: 15},
		{LineNumber: "x", Description: "", Quantity: -1, UnitPrice: -2, RCV: 2},
		{LineNumber: "4", Description: "Valley metal", Quantity: 1, UnitPrice: 7, RCV: 99, DepPercent: ptr(120)},
	}

	findings := ValidateLineItems(items)

	want := map[string]string{
		"description/unique":      SeverityWarning,
		"description/required":    SeverityWarning,
		"line_number/numeric":     SeverityWarning,
		"quantity/non_negative":   SeverityError,
		"unit_price/non_negative": SeverityError,
		"dep_percent/range":       SeverityError,
		"RCV/derived":             SeverityWarning,
	}
	got := map[string]string{}
	for _, f := range findings {
		got[f.Field+"/"+f.Rule] = f.Severity
	}
	for key, severity := range want {
		if got[key] != severity {
			t.Errorf("finding %s: got severity %q, want %q", key, got[key], severity)
		}
	}

	for _, f := range findings {
		if f.Field == "description" && f.Rule == "unique" && f.Index != 1 {
			t.Errorf("duplicate reported on item %d, want 1", f.Index)
		}
	}
}

func TestCleanItemsHaveNoFindings(t *testing.T) {
	items := []types.LineItem{
		{LineNumber: "1", Description: "Drip edge", Quantity: 10, UnitPrice: 3, RCV: 30, DepPercent: ptr(10)},
		{LineNumber: "2", Description: "Valley metal", Quantity: 2, UnitPrice: 7, RCV: 14},
	}
	if findings := ValidateLineItems(items); len(findings) != 0 {
		t.Fatalf("unexpected findings: %s", FormatErrors(findings))
	}
}

func TestValidateMeasurements(t *testing.T) {
	findings := ValidateMeasurements(types.RoofMetrics{"Total Eaves Length": -5})
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %s", FormatErrors(findings))
	}
	if findings[0].Severity != SeverityWarning || findings[1].Severity != SeverityError {
		t.Errorf("severities = %s, %s", findings[0].Severity, findings[1].Severity)
	}
	if !strings.Contains(findings[1].Error(), "Measurement 'Total Eaves Length'") {
		t.Errorf("message = %s", findings[1].Error())
	}
}

func TestValidateResultCounts(t *testing.T) {
	result := Validate(
		[]types.LineItem{{LineNumber: "1", Description: "Drip edge", Quantity: -1}},
		types.RoofMetrics{"Total Roof Area": 2000},
	)
	if result.IsValid || result.ErrorCount != 1 || result.WarningCount != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestFormatAndWriteErrors(t *testing.T) {
	if FormatErrors(nil) != "No validation errors." {
		t.Errorf("empty format = %q", FormatErrors(nil))
	}

	findings := ValidateLineItems([]types.LineItem{{LineNumber: "1", Quantity: 1}})
	path := filepath.Join(t.TempDir(), "validation.log")
	if err := WriteErrorLog(findings, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "description is empty") {
		t.Errorf("log content = %s", data)
	}
}
