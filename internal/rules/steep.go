package rules

import (
	"fmt"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
)

// steep7to9 charges the 7/12 to 9/12 band at its quantity rounded to 2
// decimals, inserting the remove and install charges when missing.
func steep7to9(rc *Context) error {
	if !rc.Metrics.HasSteep7to9 {
		return nil
	}
	target := store.Round2(rc.Metrics.Steep7to9Qty)
	reason := fmt.Sprintf("Steep roof charge should equal (Area 7/12 + 8/12 + 9/12) / 100 (%.2f)", target)
	steepCharge(rc, RemoveSteep7to9, target, reason)
	steepCharge(rc, Steep7to9, target, reason)
	return nil
}

func steep10to12(rc *Context) error {
	if !rc.Metrics.HasSteep10to12 {
		return nil
	}
	target := rc.Metrics.Steep10to12Qty
	reason := fmt.Sprintf("Steep roof charge should equal (Area 10/12 + 11/12 + 12/12) / 100 (%.2f)", target)
	steepCharge(rc, RemoveSteep10to12, target, reason)
	steepCharge(rc, Steep10to12, target, reason)
	return nil
}

func steep12Plus(rc *Context) error {
	if !rc.Metrics.HasSteep12Plus {
		return nil
	}
	target := rc.Metrics.Steep12PlusQty
	reason := fmt.Sprintf("Steep roof charge should equal Area 12/12+ / 100 (%.2f)", target)
	steepCharge(rc, RemoveSteep12Plus, target, reason)
	steepCharge(rc, Steep12Plus, target, reason)
	return nil
}

// steepCharge floors a steep charge or inserts it at its 2-decimal rounded
// quantity. A rounded-down insertion is left for steepFloor to raise.
func steepCharge(rc *Context, description string, target float64, reason string) {
	if !rc.FloorToTarget(description, target, reason) {
		rc.Insert(store.NewItem{Description: description, Quantity: target})
	}
}

// steepFloor re-checks every steep charge against its unrounded band
// quantity, whether or not the band has area.
func steepFloor(rc *Context) error {
	m := rc.Metrics
	targets := []struct {
		description string
		qty         float64
	}{
		{RemoveSteep7to9, m.Steep7to9Qty},
		{Steep7to9, m.Steep7to9Qty},
		{RemoveSteep10to12, m.Steep10to12Qty},
		{Steep10to12, m.Steep10to12Qty},
		{RemoveSteep12Plus, m.Steep12PlusQty},
		{Steep12Plus, m.Steep12PlusQty},
	}
	for _, t := range targets {
		rc.FloorToTarget(t.description, t.qty, fmt.Sprintf("Steep roof charge should equal calculated area / 100 (%.2f)", t.qty))
	}
	return nil
}
