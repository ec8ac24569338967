package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// =============================================================================
// QUANTITY POLICIES
// =============================================================================

// FloorToTarget raises the quantity of the item with the given description
// to target when it sits below target. It never lowers a quantity. It
// reports whether the item exists.
func (rc *Context) FloorToTarget(description string, target float64, reason string) bool {
	rc.Touch(description)
	item := rc.Store.Find(description)
	if item == nil {
		return false
	}
	if item.Quantity < target {
		rc.set(description, item, target, reason)
	}
	return true
}

// ExactToTarget moves the quantity of the item with the given description
// to max(current, target) unless it already equals target. It reports
// whether the item exists.
func (rc *Context) ExactToTarget(description string, target float64, reason string) bool {
	rc.Touch(description)
	item := rc.Store.Find(description)
	if item == nil {
		return false
	}
	if !approximatelyEqual(item.Quantity, target) {
		rc.set(description, item, math.Max(item.Quantity, target), reason)
	}
	return true
}

// FloorOrInsert floors the described item to target, or inserts it with
// quantity target when it is missing.
func (rc *Context) FloorOrInsert(description string, target float64, unit, reason string) {
	if !rc.FloorToTarget(description, target, reason) {
		rc.insertAtLeast(description, target, unit, reason)
	}
}

// EnsurePresent inserts canonical at target when no member of family is
// present; otherwise it floors every present member to target.
func (rc *Context) EnsurePresent(family []string, canonical string, target float64, unit, reason string) {
	if !rc.Store.Has(family...) {
		rc.insertAtLeast(canonical, target, unit, reason)
		return
	}
	for _, description := range family {
		rc.FloorToTarget(description, target, reason)
	}
}

// Insert adds a missing item through the store, which records the addition.
// When enabled, an item the catalog cannot price also gets a warning that
// lists the closest catalog descriptions.
func (rc *Context) Insert(n store.NewItem) *types.LineItem {
	rc.Touch(n.Description)
	item := rc.Store.Add(rc.rule, n)
	rc.Log.Debug("Inserted %q: %.2f %s @ %.2f", item.Description, item.Quantity, item.Unit, item.UnitPrice)

	if item.UnitPrice == 0 && rc.Options.WarnUnpricedAdditions {
		rc.Trail.Warn(rc.rule, item.Description, unpricedReason(rc, item.Description))
	}
	return item
}

// insertAtLeast inserts an item at target. Insertion rounds to 2 decimals,
// so an item that rounded below target is raised to it at once; otherwise
// the next run would floor it again.
func (rc *Context) insertAtLeast(description string, target float64, unit, reason string) {
	item := rc.Insert(store.NewItem{Description: description, Quantity: target, Unit: unit})
	if item.Quantity < target {
		rc.set(description, item, target, reason)
	}
}

func unpricedReason(rc *Context, description string) string {
	suggestions := rc.Catalog.Suggest(description, 3)
	if len(suggestions) == 0 {
		return "No catalog price for inserted item; it was added at 0"
	}
	names := make([]string, len(suggestions))
	for i, e := range suggestions {
		names[i] = e.Description
	}
	return fmt.Sprintf("No catalog price for inserted item; closest catalog entries: %s", strings.Join(names, "; "))
}

// set assigns qty and records the change when the quantity actually moved.
func (rc *Context) set(description string, item *types.LineItem, qty float64, reason string) {
	old := item.Quantity
	if rc.Store.SetQuantity(item, qty) {
		rc.Trail.Adjust(rc.rule, description, old, qty, reason, 0)
	}
}

func approximatelyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

// =============================================================================
// ROUNDING
// =============================================================================

// RoundUpLaminated rounds q up to the next quarter unless its fractional
// part is already a multiple of 0.25. It reports whether q changed.
func RoundUpLaminated(q float64) (float64, bool) {
	frac := q - math.Floor(q)
	steps := frac / 0.25
	if math.Abs(steps-math.Round(steps)) <= 1e-5 {
		return q, false
	}
	return math.Ceil(q*4) / 4, true
}

// RoundUpThreeTab rounds q up to the next third unless its fractional part
// is already within 0.01 of 0, 1/3 or 2/3. It reports whether q changed.
func RoundUpThreeTab(q float64) (float64, bool) {
	frac := q - math.Floor(q)
	for _, mark := range []float64{0, 1.0 / 3, 2.0 / 3} {
		if math.Abs(frac-mark) <= 0.01 {
			return q, false
		}
	}
	return math.Ceil(q*3-1e-9) / 3, true
}
