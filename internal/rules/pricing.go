package rules

import (
	"fmt"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
)

// unitCostFloor raises unit prices that sit below the catalog price for the
// same description. Only exact (case-insensitive) catalog matches count, and
// prices are never lowered. The rule is off unless Options.UnitCostFloor is
// set.
func unitCostFloor(rc *Context) error {
	if !rc.Options.UnitCostFloor || rc.Catalog.Len() == 0 {
		return nil
	}
	for _, item := range rc.Store.Items() {
		rc.Touch(item.Description)
		entry, ok := rc.Catalog.Exact(item.Description)
		if !ok || entry.UnitPrice <= item.UnitPrice {
			continue
		}
		old := item.UnitPrice
		item.UnitPrice = entry.UnitPrice
		store.RecomputeCosts(item)
		rc.Trail.Adjust(rc.rule, item.Description, item.Quantity, item.Quantity,
			fmt.Sprintf("Unit price raised to catalog price %.2f (was %.2f)", entry.UnitPrice, old), 0)
	}
	return nil
}
