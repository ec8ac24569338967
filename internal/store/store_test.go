package store

import (
	"math"
	"testing"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/audit"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

func ptr(v float64) *float64 { return &v }

func seed() []types.LineItem {
	return []types.LineItem{
		{LineNumber: "3", Description: "Drip edge", Quantity: 150, Unit: "LF", UnitPrice: 3, PageNumber: 2, DepPercent: ptr(10)},
		{LineNumber: "12", Description: " Valley metal ", Quantity: 20, Unit: "LF", UnitPrice: 7, PageNumber: 4},
		{LineNumber: "n/a", Description: "Roofing felt - 15 lb.", Quantity: 10, Unit: "SQ", UnitPrice: 40, PageNumber: 3},
	}
}

func TestNewDeepCopies(t *testing.T) {
	items := seed()
	s := New(items, catalog.Empty(), audit.New())

	s.SetQuantity(s.Find("Drip edge"), 200)
	*s.Find("Drip edge").DepPercent = 50

	if items[0].Quantity != 150 || *items[0].DepPercent != 10 {
		t.Fatalf("store mutated the caller's items: %+v", items[0])
	}
}

func TestFindTrimsAndTakesFirst(t *testing.T) {
	items := append(seed(), types.LineItem{Description: "Drip edge", Quantity: 999})
	s := New(items, catalog.Empty(), audit.New())

	if item := s.Find("Valley metal"); item == nil || item.Quantity != 20 {
		t.Fatalf("trimmed match failed: %+v", item)
	}
	if item := s.Find("Drip edge"); item.Quantity != 150 {
		t.Fatalf("expected first occurrence, got %+v", item)
	}
	if s.Find("Drip Edge") != nil {
		t.Fatal("Find must be case-sensitive")
	}
	if item := s.FindAny("Drip Edge", "Valley metal"); item == nil || item.LineNumber != "12" {
		t.Fatalf("FindAny = %+v", item)
	}
	if !s.Has("nope", "Roofing felt - 15 lb.") || s.Has("nope") {
		t.Fatal("Has returned the wrong answer")
	}
}

func TestAddUsesCatalogAndDefaults(t *testing.T) {
	cat := catalog.New("test", []catalog.Entry{
		{Description: "Asphalt starter - universal starter course", Unit: "LF", UnitPrice: 2.5},
	})
	trail := audit.New()
	s := New(seed(), cat, trail)

	item := s.Add("starter-course", NewItem{
		Description: "Asphalt starter - universal starter course",
		Quantity:    2.006,
	})

	if item.LineNumber != "13" {
		t.Errorf("LineNumber = %q, want 13", item.LineNumber)
	}
	if item.Quantity != 2.01 {
		t.Errorf("Quantity = %v, want 2.01", item.Quantity)
	}
	if item.Unit != "LF" || item.UnitPrice != 2.5 {
		t.Errorf("catalog price/unit not used: %+v", item)
	}
	if math.Abs(item.RCV-5.025) > 1e-9 || item.ACV != item.RCV || item.DepreciationAmount != 0 {
		t.Errorf("costs = RCV %v ACV %v dep %v", item.RCV, item.ACV, item.DepreciationAmount)
	}
	if item.AgeLife != "0/NA" || item.Condition != "Avg." || *item.DepPercent != 0 {
		t.Errorf("defaults not applied: %+v", item)
	}
	if *item.LocationRoom != "Roof" || item.Category != "Roof" {
		t.Errorf("location/category = %v/%v", *item.LocationRoom, item.Category)
	}
	if item.PageNumber != 4 {
		t.Errorf("PageNumber = %d, want 4", item.PageNumber)
	}
	if s.Len() != 4 || s.Items()[3] != item {
		t.Errorf("item not appended at the end")
	}

	adds := trail.Additions()
	if len(adds) != 1 || adds[0].Rule != "starter-course" || *adds[0].Quantity != 2.006 || adds[0].Unit != "LF" {
		t.Fatalf("addition record = %+v", adds)
	}
}

func TestAddUnpricedUsesDefaultUnit(t *testing.T) {
	s := New(nil, catalog.Empty(), audit.New())

	item := s.Add("chimney-saddle", NewItem{Description: "Saddle or cricket up to 25 SF", Quantity: 1, Unit: "EA"})

	if item.LineNumber != "1" {
		t.Errorf("LineNumber = %q, want 1 for an empty store", item.LineNumber)
	}
	if item.UnitPrice != 0 || item.RCV != 0 || item.ACV != 0 {
		t.Errorf("unpriced item should cost 0: %+v", item)
	}
	if item.Unit != "SQ" {
		t.Errorf("Unit = %q, want SQ for a catalog miss", item.Unit)
	}
	if item.PageNumber != 0 {
		t.Errorf("PageNumber = %d, want 0", item.PageNumber)
	}
}

func TestAddUnitFallsBackForUnitlessRow(t *testing.T) {
	cat := catalog.New("test", []catalog.Entry{{Description: "Saddle or cricket up to 25 SF", UnitPrice: 300}})
	s := New(nil, cat, audit.New())

	item := s.Add("chimney-saddle", NewItem{Description: "Saddle or cricket up to 25 SF", Quantity: 1, Unit: "EA"})
	if item.Unit != "EA" || item.UnitPrice != 300 {
		t.Errorf("item = %+v, want 300 per EA", item)
	}

	other := s.Add("steep-7-9", NewItem{Description: "Additional charge for steep roof - 7/12 to 9/12 slope", Quantity: 8, Unit: "LF"})
	if other.Unit != "SQ" || other.UnitPrice != 0 {
		t.Errorf("unknown description = %+v, want 0 per SQ", other)
	}
}

func TestSetQuantityRecomputes(t *testing.T) {
	s := New(seed(), catalog.Empty(), audit.New())
	item := s.Find("Drip edge")

	if !s.SetQuantity(item, 200) {
		t.Fatal("SetQuantity reported no change")
	}
	if item.RCV != 600 || item.DepreciationAmount != 60 || item.ACV != 540 {
		t.Fatalf("costs = %v/%v/%v", item.RCV, item.DepreciationAmount, item.ACV)
	}
	if s.SetQuantity(item, 200) {
		t.Fatal("same quantity should report no change")
	}
}

func TestReconcileFixesStaleCosts(t *testing.T) {
	items := seed()
	items[2].RCV = 12345
	s := New(items, catalog.Empty(), audit.New())
	s.Reconcile()

	felt := s.Find("Roofing felt - 15 lb.")
	if felt.RCV != 400 || felt.ACV != 400 {
		t.Fatalf("Reconcile left RCV %v ACV %v", felt.RCV, felt.ACV)
	}
}

func TestRound2(t *testing.T) {
	tests := map[float64]float64{
		2.004:  2,
		2.006:  2.01,
		8:      8,
		0.3333: 0.33,
	}
	for in, want := range tests {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(seed(), catalog.Empty(), audit.New())
	snap := s.Snapshot()
	snap[0].Quantity = 1

	if s.Find("Drip edge").Quantity != 150 {
		t.Fatal("snapshot shares state with the store")
	}
}
