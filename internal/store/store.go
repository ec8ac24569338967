// =============================================================================
// Roof Adjustment Engine - Line Item Store
// =============================================================================
//
// The store is the ordered, mutable working copy of an estimate's line items
// for the duration of one run. Rules find items by description, change
// their quantities through SetQuantity, and insert missing items with Add.
//
// INVARIANTS:
//   - Items keep their input order; additions are appended
//   - After any quantity or price change:
//       RCV                 = quantity * unit_price
//       depreciation_amount = RCV * dep_percent / 100
//       ACV                 = RCV - depreciation_amount
//   - Every Add produces an "addition" audit record
//
// =============================================================================

package store

import (
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/audit"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// Defaults for inserted items.
const (
	DefaultLocation  = "Roof"
	DefaultCategory  = "Roof"
	DefaultAgeLife   = "0/NA"
	DefaultCondition = "Avg."
	AdditionReason   = "Added missing line item based on roof measurements"
)

// Store holds the working line items of one run.
type Store struct {
	items   []*types.LineItem
	catalog *catalog.Catalog
	trail   *audit.Trail
}

// New seeds a store with a deep copy of items. The caller's slice is never
// modified.
func New(items []types.LineItem, cat *catalog.Catalog, trail *audit.Trail) *Store {
	s := &Store{
		items:   make([]*types.LineItem, 0, len(items)),
		catalog: cat,
		trail:   trail,
	}
	for i := range items {
		item := items[i].Clone()
		s.items = append(s.items, &item)
	}
	return s
}

// =============================================================================
// QUERIES
// =============================================================================

// Find returns the first item whose trimmed description equals the trimmed
// argument, or nil.
func (s *Store) Find(description string) *types.LineItem {
	want := strings.TrimSpace(description)
	for _, item := range s.items {
		if strings.TrimSpace(item.Description) == want {
			return item
		}
	}
	return nil
}

// FindAny returns the first item matching any of the descriptions, trying
// the descriptions in the order given.
func (s *Store) FindAny(descriptions ...string) *types.LineItem {
	for _, d := range descriptions {
		if item := s.Find(d); item != nil {
			return item
		}
	}
	return nil
}

// Has reports whether any of the descriptions is present.
func (s *Store) Has(descriptions ...string) bool {
	return s.FindAny(descriptions...) != nil
}

// Items returns the live items in order. Callers may mutate them but must
// keep costs consistent through SetQuantity or RecomputeCosts.
func (s *Store) Items() []*types.LineItem {
	return s.items
}

// Snapshot returns a deep copy of the items in order.
func (s *Store) Snapshot() []types.LineItem {
	out := make([]types.LineItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// MaxLineNumber returns the largest numeric line number, or 0. Line numbers
// that are not numeric are ignored.
func (s *Store) MaxLineNumber() int {
	highest := 0
	for _, item := range s.items {
		n, err := strconv.ParseFloat(strings.TrimSpace(item.LineNumber), 64)
		if err != nil {
			continue
		}
		if int(n) > highest {
			highest = int(n)
		}
	}
	return highest
}

// MaxPageNumber returns the largest page number, or 0.
func (s *Store) MaxPageNumber() int {
	highest := 0
	for _, item := range s.items {
		if item.PageNumber > highest {
			highest = item.PageNumber
		}
	}
	return highest
}

// =============================================================================
// MUTATIONS
// =============================================================================

// NewItem describes an item to insert. Empty fields take defaults.
type NewItem struct {
	Description string
	Quantity    float64

	// Unit is used only when the matching catalog row has no unit. The
	// catalog's unit wins otherwise, and a catalog miss prices at 0 "SQ".
	Unit string

	// LocationRoom and Category default to "Roof".
	LocationRoom string
	Category     string
}

// Add appends a new item and records the addition under the given rule id.
//
// The quantity is rounded to 2 decimals; the addition record keeps the
// requested quantity. Unit price and unit come from Catalog.Lookup, so an
// unknown description is added at 0 per "SQ". The new line number is one
// past the highest numeric line number and the page number is the highest
// page seen.
func (s *Store) Add(rule string, n NewItem) *types.LineItem {
	location := n.LocationRoom
	if location == "" {
		location = DefaultLocation
	}
	category := n.Category
	if category == "" {
		category = DefaultCategory
	}

	price := s.catalog.Lookup(n.Description)
	unit := price.Unit
	if unit == "" {
		unit = n.Unit
	}
	if unit == "" {
		unit = catalog.DefaultUnit
	}

	qty := Round2(n.Quantity)
	dep := 0.0
	item := &types.LineItem{
		LineNumber:   strconv.Itoa(s.MaxLineNumber() + 1),
		Description:  n.Description,
		Quantity:     qty,
		Unit:         unit,
		UnitPrice:    price.UnitPrice,
		AgeLife:      DefaultAgeLife,
		Condition:    DefaultCondition,
		DepPercent:   &dep,
		LocationRoom: &location,
		Category:     category,
		PageNumber:   s.MaxPageNumber(),
	}
	RecomputeCosts(item)

	s.items = append(s.items, item)
	if s.trail != nil {
		s.trail.Add(rule, n.Description, n.Quantity, unit, AdditionReason)
	}
	return item
}

// SetQuantity assigns a new quantity and recomputes the item's costs. It
// reports whether the quantity changed.
func (s *Store) SetQuantity(item *types.LineItem, qty float64) bool {
	if item.Quantity == qty {
		return false
	}
	item.Quantity = qty
	RecomputeCosts(item)
	return true
}

// Reconcile recomputes the costs of every item.
func (s *Store) Reconcile() {
	for _, item := range s.items {
		RecomputeCosts(item)
	}
}

// RecomputeCosts restores the cost invariant from quantity, unit price and
// depreciation percentage. A null dep_percent counts as 0.
func RecomputeCosts(item *types.LineItem) {
	item.RCV = item.Quantity * item.UnitPrice
	item.DepreciationAmount = item.RCV * item.DepreciationPercent() / 100
	item.ACV = item.RCV - item.DepreciationAmount
}

// Round2 rounds to 2 decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
