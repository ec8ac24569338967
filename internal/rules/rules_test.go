package rules

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/audit"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/metrics"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

func newContext(items []types.LineItem, raw types.RoofMetrics, cat *catalog.Catalog, opts Options) *Context {
	trail := audit.New()
	st := store.New(items, cat, trail)
	return NewContext(st, metrics.Derive(raw), cat, trail, logging.Nop(), opts)
}

func runDefault(t *testing.T, items []types.LineItem, raw types.RoofMetrics, cat *catalog.Catalog, opts Options) *Context {
	t.Helper()
	rc := newContext(items, raw, cat, opts)
	if err := Run(rc, Default()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return rc
}

func item(line, description string, qty, price float64) types.LineItem {
	return types.LineItem{LineNumber: line, Description: description, Quantity: qty, Unit: "SQ", UnitPrice: price, PageNumber: 1}
}

// scenarioMetrics is a 2500 sq ft roof with 800 sq ft in the 7-9/12 band.
func scenarioMetrics() types.RoofMetrics {
	return types.RoofMetrics{
		metrics.KeyTotalRoofArea:       2500,
		metrics.KeyTotalEavesLength:    120,
		metrics.KeyTotalRakesLength:    80,
		metrics.PitchAreaKey(7):        500,
		metrics.PitchAreaKey(8):        300,
		metrics.PitchAreaKey(9):        0,
		metrics.KeyTotalRidgesHips:     150,
		metrics.KeyTotalRidges:         60,
		metrics.KeyTotalValleysLength:  40,
		metrics.KeyTotalStepFlashing:   25,
		metrics.KeyTotalFlashingLength: 18,
	}
}

func TestRoundUpLaminated(t *testing.T) {
	tests := []struct {
		in      float64
		want    float64
		changed bool
	}{
		{10.1, 10.25, true},
		{10.25, 10.25, false},
		{10, 10, false},
		{10.8, 11, true},
		{10.5, 10.5, false},
		{0.01, 0.25, true},
	}
	for _, tt := range tests {
		got, changed := RoundUpLaminated(tt.in)
		if changed != tt.changed || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundUpLaminated(%v) = %v, %v; want %v, %v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestRoundUpThreeTab(t *testing.T) {
	tests := []struct {
		in      float64
		want    float64
		changed bool
	}{
		{10.1, 31.0 / 3, true},
		{10.33, 10.33, false},
		{10.67, 10.67, false},
		{10, 10, false},
		{10.5, 32.0 / 3, true},
		{10.8, 11, true},
	}
	for _, tt := range tests {
		got, changed := RoundUpThreeTab(tt.in)
		if changed != tt.changed || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundUpThreeTab(%v) = %v, %v; want %v, %v", tt.in, got, changed, tt.want, tt.changed)
		}
	}

	// A rounded value is a fixed point.
	once, _ := RoundUpThreeTab(10.1)
	if _, changed := RoundUpThreeTab(once); changed {
		t.Errorf("RoundUpThreeTab(%v) should be stable", once)
	}
}

func TestZeroRoofAreaEmitsOneWarning(t *testing.T) {
	items := []types.LineItem{
		item("1", RemoveLaminatedNoFelt, 20, 50),
		item("2", LaminatedNoFelt, 20, 200),
		item("3", RemoveThreeTabFelt, 18, 45),
		item("4", ThreeTabFelt, 18, 150),
	}
	rc := runDefault(t, items, types.RoofMetrics{}, catalog.Empty(), DefaultOptions())

	warnings := rc.Trail.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %+v", len(warnings), warnings)
	}
	if warnings[0].Description != ShingleGroupWarning || warnings[0].Rule != "shingle-removal" {
		t.Errorf("warning = %+v", warnings[0])
	}
	for _, d := range []string{RemoveLaminatedNoFelt, LaminatedNoFelt, RemoveThreeTabFelt, ThreeTabFelt} {
		if q := rc.Store.Find(d).Quantity; q != 20 && q != 18 {
			t.Errorf("%s changed to %v at zero roof area", d, q)
		}
	}
}

func TestSteepScenarioInsertsCharge(t *testing.T) {
	rc := runDefault(t, nil, scenarioMetrics(), catalog.Empty(), DefaultOptions())

	if rc.Metrics.TotalSquares != 25 || rc.Metrics.StarterQty != 2 || rc.Metrics.Steep7to9Qty != 8 {
		t.Fatalf("derived metrics = %+v", rc.Metrics)
	}

	for _, d := range []string{Steep7to9, RemoveSteep7to9} {
		got := rc.Store.Find(d)
		if got == nil {
			t.Fatalf("%s was not inserted", d)
		}
		if got.Quantity != 8 || got.Unit != "SQ" {
			t.Errorf("%s = %v %s, want 8 SQ", d, got.Quantity, got.Unit)
		}
	}

	if s := rc.Store.Find(StarterUniversal); s == nil || s.Quantity != 2 {
		t.Errorf("starter = %+v, want 2", s)
	}
	if f := rc.Store.Find(Felt15); f == nil || f.Quantity != 8 {
		t.Errorf("15 lb felt = %+v, want 8", f)
	}
	if rc.Store.Has(Steep10to12, Steep12Plus, FeltLowSlope, Felt30) {
		t.Error("charges inserted for bands without area")
	}
	// The catalog is empty, so inserted items take the catalog's default unit.
	if v := rc.Store.Find(RidgeVentDetachReset); v == nil || v.Quantity != 1.5 || v.Unit != "SQ" {
		t.Errorf("ridge vent = %+v, want 1.5 SQ", v)
	}

	for _, add := range rc.Trail.Additions() {
		if add.Type != types.RecordAddition || add.Reason != store.AdditionReason {
			t.Errorf("addition record = %+v", add)
		}
	}
}

func TestUnpricedInsertion(t *testing.T) {
	cat := catalog.New("test", []catalog.Entry{
		{Description: "Ridge cap", Unit: "LF", UnitPrice: 4},
	})
	opts := DefaultOptions()
	opts.WarnUnpricedAdditions = true

	raw := types.RoofMetrics{metrics.KeyTotalRoofArea: 1000, metrics.KeyTotalEavesLength: 100}
	rc := runDefault(t, nil, raw, cat, opts)

	starter := rc.Store.Find(StarterUniversal)
	if starter == nil {
		t.Fatal("starter not inserted")
	}
	if starter.UnitPrice != 0 || starter.RCV != 0 || starter.ACV != 0 {
		t.Errorf("unpriced starter = %+v", starter)
	}

	found := false
	for _, add := range rc.Trail.Additions() {
		if add.Description == StarterUniversal {
			found = true
		}
	}
	if !found {
		t.Error("unpriced insertion was not recorded as an addition")
	}

	warned := false
	for _, w := range rc.Trail.Warnings() {
		if w.Description == StarterUniversal && strings.HasPrefix(w.Reason, "No catalog price") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected an unpriced warning, got %+v", rc.Trail.Warnings())
	}
}

func richEstimate() []types.LineItem {
	return []types.LineItem{
		item("1", RemoveLaminatedNoFelt, 24.1, 50),
		item("2", LaminatedNoFelt, 25.1, 210),
		item("3", ThreeTabFelt, 20, 150),
		item("4", DripEdge, 150, 3),
		item("5", ValleyMetal, 10, 7),
		item("6", StepFlashing, 30, 9),
		item("7", AluminumFlashing, 10, 6),
		item("8", ChimneyAverage, 1, 400),
		item("9", RidgeVentShingleOver, 0.2, 11),
		item("10", StarterPeelStick, 1, 80),
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	first := runDefault(t, richEstimate(), scenarioMetrics(), catalog.Empty(), DefaultOptions())
	if first.Trail.Len() == 0 {
		t.Fatal("first run made no changes; the fixture is too weak")
	}

	second := runDefault(t, first.Store.Snapshot(), scenarioMetrics(), catalog.Empty(), DefaultOptions())
	if n := len(second.Trail.Adjustments()) + len(second.Trail.Additions()); n != 0 {
		t.Fatalf("second run changed %d items: %+v %+v", n, second.Trail.Adjustments(), second.Trail.Additions())
	}
}

func TestFloorRaisesAnyShortfall(t *testing.T) {
	items := []types.LineItem{item("1", AluminumFlashing, 17.996, 6)}
	raw := types.RoofMetrics{metrics.KeyTotalFlashingLength: 18}
	rc := newContext(items, raw, catalog.Empty(), DefaultOptions())
	if err := Run(rc, []Rule{New("aluminum-flashing", aluminumFlashing)}); err != nil {
		t.Fatal(err)
	}

	if got := rc.Store.Find(AluminumFlashing).Quantity; got != 18 {
		t.Fatalf("aluminum flashing = %v, want 18", got)
	}
	adj := rc.Trail.Adjustments()
	if len(adj) != 1 || *adj[0].OldQuantity != 17.996 || *adj[0].NewQuantity != 18 {
		t.Fatalf("adjustments = %+v", adj)
	}
}

func TestSteepFloorRaisesRoundedInsertion(t *testing.T) {
	raw := types.RoofMetrics{
		metrics.KeyTotalRoofArea: 833.33,
		metrics.PitchAreaKey(10): 833.33,
	}
	rc := runDefault(t, nil, raw, catalog.Empty(), DefaultOptions())

	want := rc.Metrics.Steep10to12Qty
	if math.Abs(want-8.3333) > 1e-9 {
		t.Fatalf("Steep10to12Qty = %v", want)
	}

	steep := rc.Store.Find(Steep10to12)
	if steep == nil || steep.Quantity != want {
		t.Fatalf("steep 10-12 = %+v, want %v", steep, want)
	}

	var inserted, floored int
	for _, add := range rc.Trail.Additions() {
		if add.Description == Steep10to12 {
			inserted++
			if add.Rule != "steep-10-12" {
				t.Errorf("addition rule = %q", add.Rule)
			}
		}
	}
	for _, adj := range rc.Trail.Adjustments() {
		if adj.Description != Steep10to12 {
			continue
		}
		floored++
		if adj.Rule != "steep-floor" || *adj.OldQuantity != 8.33 || *adj.NewQuantity != want {
			t.Errorf("adjustment = %+v", adj)
		}
	}
	if inserted != 1 || floored != 1 {
		t.Fatalf("steep 10-12: %d additions, %d adjustments; want 1 and 1", inserted, floored)
	}
}

// Felt and starter targets with more than 2 decimals are inserted rounded
// and raised in the same run, so a second run has nothing left to do.
func TestRoundedInsertionsAreIdempotent(t *testing.T) {
	raw := types.RoofMetrics{
		metrics.KeyTotalRoofArea:    1066.66,
		metrics.KeyTotalEavesLength: 100.333,
		metrics.PitchAreaKey(6):     533.33,
		metrics.PitchAreaKey(10):    533.33,
		metrics.KeyTotalRidgesHips:  45.555,
	}

	first := runDefault(t, nil, raw, catalog.Empty(), DefaultOptions())
	m := first.Metrics
	targets := []struct {
		description string
		min         float64
	}{
		{Felt15, m.FeltMediumQty},
		{Felt30, m.FeltSteepQty},
		{StarterUniversal, m.StarterQty},
		{RidgeVentDetachReset, m.RidgesHipsQty},
		{Steep10to12, m.Steep10to12Qty},
	}
	for _, tt := range targets {
		got := first.Store.Find(tt.description)
		if got == nil {
			t.Fatalf("%s was not inserted", tt.description)
		}
		if got.Quantity < tt.min {
			t.Errorf("%s = %v, below its target %v", tt.description, got.Quantity, tt.min)
		}
	}

	second := runDefault(t, first.Store.Snapshot(), raw, catalog.Empty(), DefaultOptions())
	if n := len(second.Trail.Adjustments()) + len(second.Trail.Additions()); n != 0 {
		t.Fatalf("second run changed %d items: %+v %+v", n, second.Trail.Adjustments(), second.Trail.Additions())
	}
}

func TestQuantitiesNeverDecrease(t *testing.T) {
	rc := runDefault(t, richEstimate(), scenarioMetrics(), catalog.Empty(), DefaultOptions())
	for _, adj := range rc.Trail.Adjustments() {
		if *adj.NewQuantity < *adj.OldQuantity {
			t.Errorf("%s (%s) lowered %v -> %v", adj.Description, adj.Rule, *adj.OldQuantity, *adj.NewQuantity)
		}
	}
}

func TestExpectedAdjustments(t *testing.T) {
	rc := runDefault(t, richEstimate(), scenarioMetrics(), catalog.Empty(), DefaultOptions())

	tests := []struct {
		description string
		want        float64
	}{
		{RemoveLaminatedNoFelt, 25},
		{LaminatedNoFelt, 25.25},
		{ThreeTabFelt, 25},
		{DripEdge, 200},
		{ValleyMetal, 40},
		{StepFlashing, 30},
		{AluminumFlashing, 18},
		{StarterPeelStick, 2},
		{RidgeVentShingleOver, 0.6},
		{CapCutFromThreeTab, 1.5},
		{CapStandardProfile, 1.5},
		{SaddleUpTo25, 1},
	}
	for _, tt := range tests {
		got := rc.Store.Find(tt.description)
		if got == nil {
			t.Errorf("%s missing", tt.description)
			continue
		}
		if math.Abs(got.Quantity-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.description, got.Quantity, tt.want)
		}
		if math.Abs(got.RCV-got.Quantity*got.UnitPrice) > 1e-6 {
			t.Errorf("%s RCV %v does not match quantity * price", tt.description, got.RCV)
		}
	}

	// A peel-and-stick starter is present, so no universal starter is added.
	if rc.Store.Has(StarterUniversal) {
		t.Error("universal starter inserted although a starter exists")
	}
}

func TestAbsentTargetsAreSilent(t *testing.T) {
	raw := types.RoofMetrics{
		metrics.KeyTotalStepFlashing:   40,
		metrics.KeyTotalFlashingLength: 30,
		metrics.KeyTotalValleysLength:  20,
	}
	rc := newContext(nil, raw, catalog.Empty(), DefaultOptions())
	silent := []Rule{
		New("drip-edge", dripEdge),
		New("step-flashing", stepFlashing),
		New("aluminum-flashing", aluminumFlashing),
		New("valley-metal", valleyMetal),
		New("ridge-vent-length", ridgeVentLength),
		New("hip-ridge-cap", hipRidgeCap),
		New("steep-floor", steepFloor),
		New("starter-for-removal", starterForRemoval),
	}
	if err := Run(rc, silent); err != nil {
		t.Fatal(err)
	}
	if rc.Trail.Len() != 0 || rc.Store.Len() != 0 {
		t.Fatalf("rules without insertion policy acted on an empty estimate: %d records, %d items", rc.Trail.Len(), rc.Store.Len())
	}
}

func TestValleyMetalOnlyFirstMatch(t *testing.T) {
	items := []types.LineItem{item("1", ValleyMetalW, 5, 8), item("2", ValleyMetal, 10, 7)}
	rc := newContext(items, types.RoofMetrics{metrics.KeyTotalValleysLength: 40}, catalog.Empty(), DefaultOptions())
	if err := Run(rc, []Rule{New("valley-metal", valleyMetal)}); err != nil {
		t.Fatal(err)
	}
	if q := rc.Store.Find(ValleyMetal).Quantity; q != 40 {
		t.Errorf("Valley metal = %v, want 40", q)
	}
	if q := rc.Store.Find(ValleyMetalW).Quantity; q != 5 {
		t.Errorf("W profile = %v, want untouched 5", q)
	}
}

func TestAluminumVentHoldsCapsExact(t *testing.T) {
	items := []types.LineItem{
		item("1", RidgeVentAluminum, 1, 10),
		item("2", CapHighProfile, 0.5, 5),
		item("3", CapStandardProfile, 3, 5),
	}
	rc := newContext(items, types.RoofMetrics{metrics.KeyTotalRidgesHips: 150}, catalog.Empty(), DefaultOptions())
	if err := Run(rc, []Rule{New("aluminum-vent-caps", aluminumVentCaps)}); err != nil {
		t.Fatal(err)
	}
	if q := rc.Store.Find(CapHighProfile).Quantity; q != 1.5 {
		t.Errorf("high profile cap = %v, want 1.5", q)
	}
	if q := rc.Store.Find(CapStandardProfile).Quantity; q != 3 {
		t.Errorf("standard cap = %v, want 3 kept", q)
	}
	if rc.Store.Has(CapCutFromThreeTab) {
		t.Error("exact rule must not insert")
	}
}

func TestCapInsertionNeedsShingleOverVent(t *testing.T) {
	raw := types.RoofMetrics{metrics.KeyTotalRidges: 80}
	list := []Rule{
		New("shingle-over-3tab-cap", shingleOverThreeTabCap),
		New("shingle-over-laminated-cap", shingleOverLaminatedCap),
	}

	without := newContext([]types.LineItem{item("1", ThreeTabFelt, 20, 1), item("2", RemoveLaminatedFelt, 20, 1)}, raw, catalog.Empty(), DefaultOptions())
	if err := Run(without, list); err != nil {
		t.Fatal(err)
	}
	if without.Store.Len() != 2 {
		t.Fatalf("caps inserted without a shingle-over vent")
	}

	with := newContext([]types.LineItem{
		item("1", ThreeTabFelt, 20, 1),
		item("2", RemoveLaminatedFelt, 20, 1),
		item("3", RidgeVentShingleOver, 1, 1),
	}, raw, catalog.Empty(), DefaultOptions())
	if err := Run(with, list); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{CapCutFromThreeTab, CapStandardProfile} {
		if got := with.Store.Find(d); got == nil || got.Quantity != 0.8 {
			t.Errorf("%s = %+v, want 0.8", d, got)
		}
	}
}

func TestChimneySaddle(t *testing.T) {
	items := []types.LineItem{
		item("1", ChimneyLarge, 1, 500),
		item("2", ChimneyAverage, 1, 400),
		item("3", SaddleUpTo25, 1, 300),
	}
	rc := newContext(items, nil, catalog.Empty(), DefaultOptions())
	if err := Run(rc, []Rule{New("chimney-saddle", chimneySaddle)}); err != nil {
		t.Fatal(err)
	}
	saddle := rc.Store.Find(Saddle26to50)
	if saddle == nil || saddle.Quantity != 1 || saddle.Unit != "SQ" || saddle.UnitPrice != 0 {
		t.Fatalf("large saddle = %+v", saddle)
	}
	if len(rc.Trail.Additions()) != 1 {
		t.Errorf("expected one addition, got %+v", rc.Trail.Additions())
	}
}

func TestUnitCostFloor(t *testing.T) {
	cat := catalog.New("test", []catalog.Entry{
		{Description: DripEdge, Unit: "LF", UnitPrice: 3.5},
		{Description: ValleyMetal, Unit: "LF", UnitPrice: 5},
	})
	items := []types.LineItem{item("1", DripEdge, 100, 3), item("2", ValleyMetal, 10, 7)}
	list := []Rule{New("unit-cost-floor", unitCostFloor)}

	off := newContext(items, nil, cat, DefaultOptions())
	if err := Run(off, list); err != nil {
		t.Fatal(err)
	}
	if off.Trail.Len() != 0 {
		t.Fatal("unit-cost-floor ran while disabled")
	}

	opts := DefaultOptions()
	opts.UnitCostFloor = true
	on := newContext(items, nil, cat, opts)
	if err := Run(on, list); err != nil {
		t.Fatal(err)
	}
	drip := on.Store.Find(DripEdge)
	if drip.UnitPrice != 3.5 || drip.RCV != 350 {
		t.Errorf("drip edge = %+v", drip)
	}
	if on.Store.Find(ValleyMetal).UnitPrice != 7 {
		t.Error("unit-cost-floor lowered a price")
	}
	if adj := on.Trail.Adjustments(); len(adj) != 1 || *adj[0].OldQuantity != *adj[0].NewQuantity {
		t.Errorf("adjustments = %+v", adj)
	}
}

func TestRunReportsRuleErrors(t *testing.T) {
	cause := errors.New("boom")
	rc := newContext([]types.LineItem{item("1", DripEdge, 1, 1)}, nil, catalog.Empty(), DefaultOptions())

	err := Run(rc, []Rule{
		New("failing", func(rc *Context) error {
			rc.FloorToTarget(DripEdge, 0, "")
			return cause
		}),
		New("never", func(rc *Context) error {
			t.Fatal("rules after a failure must not run")
			return nil
		}),
	})

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected *RuleError, got %v", err)
	}
	if ruleErr.RuleID != "failing" || ruleErr.Description != DripEdge || !errors.Is(err, cause) {
		t.Errorf("RuleError = %+v", ruleErr)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	rc := newContext(nil, nil, catalog.Empty(), DefaultOptions())
	err := Run(rc, []Rule{New("panicky", func(rc *Context) error {
		rc.Touch(ValleyMetal)
		var m map[string]int
		m["x"] = 1
		return nil
	})})

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("expected *RuleError, got %v", err)
	}
	if ruleErr.RuleID != "panicky" || ruleErr.Description != ValleyMetal {
		t.Errorf("RuleError = %+v", ruleErr)
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Errorf("error text = %q", err.Error())
	}
}

func TestDefaultRuleIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Default() {
		if seen[r.ID()] {
			t.Errorf("duplicate rule id %s", r.ID())
		}
		seen[r.ID()] = true
	}
	if len(seen) != 24 {
		t.Errorf("expected 24 rules, got %d", len(seen))
	}
}
