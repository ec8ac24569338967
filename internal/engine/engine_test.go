package engine

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/metrics"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/rules"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

func ptr(v float64) *float64 { return &v }

func testCatalog() *catalog.Catalog {
	return catalog.New("test", []catalog.Entry{
		{Description: rules.Steep7to9, Unit: "SQ", UnitPrice: 65},
		{Description: rules.StarterUniversal, Unit: "LF", UnitPrice: 2.1},
		{Description: "R&R Valley metal", Unit: "LF", UnitPrice: 9.5},
		{Description: rules.Felt15, Unit: "SQ", UnitPrice: 30},
	})
}

func testClaim() ([]types.LineItem, types.RoofMetrics) {
	items := []types.LineItem{
		{LineNumber: "1", Description: rules.RemoveLaminatedNoFelt, Quantity: 24.1, Unit: "SQ", UnitPrice: 50, RCV: 1205, DepPercent: ptr(0), PageNumber: 1},
		{LineNumber: "2", Description: rules.LaminatedNoFelt, Quantity: 25.1, Unit: "SQ", UnitPrice: 210, RCV: 5271, DepPercent: ptr(20), PageNumber: 1},
		{LineNumber: "3", Description: "Install Valley metal", Quantity: 40, Unit: "LF", UnitPrice: 4, RCV: 160, PageNumber: 2},
		{LineNumber: "4", Description: "Gutter guard/screen", Quantity: 100, Unit: "LF", UnitPrice: 5, RCV: 1, PageNumber: 2},
	}
	m := types.RoofMetrics{
		metrics.KeyTotalRoofArea:    2500,
		metrics.KeyTotalEavesLength: 120,
		metrics.KeyTotalRakesLength: 80,
		metrics.PitchAreaKey(7):     500,
		metrics.PitchAreaKey(8):     300,
		metrics.KeyTotalRidgesHips:  150,
	}
	return items, m
}

func TestProcessClaim(t *testing.T) {
	items, m := testClaim()
	result, err := New(testCatalog()).ProcessClaim(items, m)
	if err != nil {
		t.Fatalf("ProcessClaim failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("run id not set")
	}
	if len(result.OriginalLineItems) != len(items) {
		t.Errorf("original items = %d, want %d", len(result.OriginalLineItems), len(items))
	}
	if result.RoofMeasurements.TotalSquares != 25 || result.RoofMeasurements.SteepRoofAreas.Pitch7To9 != 800 {
		t.Errorf("roof summary = %+v", result.RoofMeasurements)
	}

	var steep *types.LineItem
	for i := range result.AdjustedLineItems {
		if result.AdjustedLineItems[i].Description == rules.Steep7to9 {
			steep = &result.AdjustedLineItems[i]
		}
	}
	if steep == nil || steep.Quantity != 8 || steep.UnitPrice != 65 || steep.RCV != 520 {
		t.Fatalf("steep charge = %+v", steep)
	}
	if steep.LineNumber == "" || steep.PageNumber != 2 {
		t.Errorf("numbering = line %s page %d", steep.LineNumber, steep.PageNumber)
	}

	valley := result.AdjustedLineItems[2]
	if valley.Description != "R&R Valley metal" || valley.UnitPrice != 9.5 || valley.RCV != 380 {
		t.Errorf("valley metal = %+v", valley)
	}

	summary := result.AdjustmentResults.Summary
	if summary.TotalAdjustments != len(result.AdjustmentResults.Adjustments) ||
		summary.TotalAdditions != len(result.AdjustmentResults.Additions) {
		t.Errorf("summary = %+v", summary)
	}
	if summary.EstimatedSavings != 0 {
		t.Errorf("estimated savings = %v, want 0", summary.EstimatedSavings)
	}
}

func TestCostInvariantHolds(t *testing.T) {
	items, m := testClaim()
	result, err := New(testCatalog()).ProcessClaim(items, m)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range result.AdjustedLineItems {
		rcv := item.Quantity * item.UnitPrice
		acv := rcv - rcv*item.DepreciationPercent()/100
		if math.Abs(item.RCV-rcv) > 1e-6 || math.Abs(item.ACV-acv) > 1e-6 {
			t.Errorf("%s: RCV %v ACV %v, want %v %v", item.Description, item.RCV, item.ACV, rcv, acv)
		}
	}
}

func TestOriginalItemsUntouched(t *testing.T) {
	items, m := testClaim()
	before, _ := json.Marshal(items)

	result, err := New(testCatalog()).ProcessClaim(items, m)
	if err != nil {
		t.Fatal(err)
	}

	after, _ := json.Marshal(items)
	if string(before) != string(after) {
		t.Fatal("ProcessClaim modified the caller's items")
	}
	original, _ := json.Marshal(result.OriginalLineItems)
	if string(original) != string(before) {
		t.Fatal("result's original items differ from the input")
	}
}

func TestProcessClaimIsIdempotent(t *testing.T) {
	items, m := testClaim()
	e := New(testCatalog())

	first, err := e.ProcessClaim(items, m)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.ProcessClaim(first.AdjustedLineItems, m)
	if err != nil {
		t.Fatal(err)
	}

	s := second.AdjustmentResults.Summary
	if s.TotalAdjustments != 0 || s.TotalAdditions != 0 {
		t.Fatalf("second run changed items: %+v %+v", second.AdjustmentResults.Adjustments, second.AdjustmentResults.Additions)
	}
	if len(second.AdjustedLineItems) != len(first.AdjustedLineItems) {
		t.Errorf("item count changed %d -> %d", len(first.AdjustedLineItems), len(second.AdjustedLineItems))
	}
}

func TestEmptyInput(t *testing.T) {
	result, err := New(nil).ProcessClaim(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.AdjustmentResults.Warnings) != 1 {
		t.Errorf("warnings = %+v", result.AdjustmentResults.Warnings)
	}
	if result.OriginalLineItems == nil || result.AdjustedLineItems == nil {
		t.Error("item slices must encode as arrays")
	}
}

func TestRuleFailureAborts(t *testing.T) {
	cause := errors.New("broken rule")
	e := New(testCatalog(), WithRules([]rules.Rule{
		rules.New("exploding", func(rc *rules.Context) error {
			rc.Touch(rules.DripEdge)
			return cause
		}),
	}))

	items, m := testClaim()
	result, err := e.ProcessClaim(items, m)
	if result != nil {
		t.Error("a failed run must not return a result")
	}

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected *RuleError, got %v", err)
	}
	if ruleErr.RuleID != "exploding" || ruleErr.Description != rules.DripEdge || !errors.Is(err, cause) {
		t.Errorf("RuleError = %+v", ruleErr)
	}
}

func TestDecodeClaimShapes(t *testing.T) {
	direct := `{"line_items":[{"line_number":1,"description":"Drip edge","quantity":"150","unit_price":"$3.00"}],
		"roof_measurements":{"Total Roof Area":{"value":2500},"Total Eaves Length":"120"}}`

	encoded, _ := json.Marshal(map[string]string{"body": direct})

	for name, input := range map[string]string{"direct": direct, "envelope": string(encoded)} {
		claim, err := DecodeClaim([]byte(input))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(claim.LineItems) != 1 || claim.LineItems[0].Quantity != 150 || claim.LineItems[0].UnitPrice != 3 {
			t.Errorf("%s: items = %+v", name, claim.LineItems)
		}
		if claim.RoofMeasurements["Total Roof Area"] != 2500 || claim.RoofMeasurements["Total Eaves Length"] != 120 {
			t.Errorf("%s: measurements = %+v", name, claim.RoofMeasurements)
		}
	}

	if _, err := DecodeClaim([]byte(`[1,2]`)); err == nil {
		t.Error("expected an error for a non-object claim")
	}
}

func TestLoadSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	bare := write("bare.json", `[{"line_number":"1","description":"Drip edge","quantity":10}]`)
	wrapped := write("wrapped.json", `{"line_items":[{"line_number":"1","description":"Drip edge","quantity":10}]}`)
	bad := write("bad.json", `{"items":[]}`)
	roof := write("roof.json", `{"roof_measurements":{"Total Roof Area":1800}}`)

	for _, path := range []string{bare, wrapped} {
		items, err := LoadLineItems(path)
		if err != nil || len(items) != 1 || items[0].Quantity != 10 {
			t.Errorf("LoadLineItems(%s) = %+v, %v", filepath.Base(path), items, err)
		}
	}
	if _, err := LoadLineItems(bad); err == nil {
		t.Error("expected an error for an object without line_items")
	}

	m, err := LoadRoofMeasurements(roof)
	if err != nil || m[metrics.KeyTotalRoofArea] != 1800 {
		t.Errorf("LoadRoofMeasurements = %+v, %v", m, err)
	}

	if _, err := LoadClaim(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
