package rules

import (
	"fmt"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
)

// roofingFelt floors or inserts one felt line per pitch band that has area:
// low slope double coverage for 1-4/12, 15 lb for 5-8/12, 30 lb for 9/12 and
// up.
func roofingFelt(rc *Context) error {
	m := rc.Metrics
	bands := []struct {
		area        float64
		qty         float64
		description string
		formula     string
	}{
		{m.FeltLowArea, m.FeltLowQty, FeltLowSlope, "(Area 1/12 + 2/12 + 3/12 + 4/12) / 100"},
		{m.FeltMediumArea, m.FeltMediumQty, Felt15, "(Area 5/12 + 6/12 + 7/12 + 8/12) / 100"},
		{m.FeltSteepArea, m.FeltSteepQty, Felt30, "(Area 9/12 + 10/12 + 11/12 + 12/12 + 12/12+) / 100"},
	}
	for _, b := range bands {
		if b.area == 0 {
			continue
		}
		reason := fmt.Sprintf("Quantity should equal %s (%.2f)", b.formula, b.qty)
		rc.FloorOrInsert(b.description, b.qty, "", reason)
	}
	return nil
}

// chimneySaddle adds the matching saddle for a chimney flashing line when
// the estimate has none.
func chimneySaddle(rc *Context) error {
	pairs := []struct{ chimney, saddle string }{
		{ChimneyAverage, SaddleUpTo25},
		{ChimneyLarge, Saddle26to50},
	}
	for _, p := range pairs {
		if !rc.Store.Has(p.chimney) || rc.Store.Has(p.saddle) {
			continue
		}
		rc.Insert(store.NewItem{
			Description:  p.saddle,
			Quantity:     1,
			Unit:         "EA",
			LocationRoom: store.DefaultLocation,
			Category:     store.DefaultCategory,
		})
	}
	return nil
}
