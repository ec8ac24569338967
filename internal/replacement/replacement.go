// =============================================================================
// Roof Adjustment Engine - Carrier Item Replacement
// =============================================================================
//
// Carrier estimates often name an item the way the carrier's own software
// does ("Install Valley metal") rather than the way the price catalog does
// ("R&R Valley metal"). This pass rewrites such items to the catalog
// description and reprices them.
//
// MATCHING:
//   An item matches a pattern when its trimmed description equals the
//   pattern, contains it, or is contained by it. Matching is case-sensitive.
//   Empty descriptions never match, and an item that already carries the
//   canonical description is left alone.
//
// ORDER:
//   Mappings are applied in table order, and each pattern within a mapping
//   in order. Only the first matching item is replaced per pattern.
//
// PRICING:
//   A mapping is applied only when the catalog prices its canonical
//   description above zero. Otherwise the carrier item is kept as-is.
//
// =============================================================================

package replacement

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/rules"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
)

// RuleID identifies replacement records in the audit trail.
const RuleID = "carrier-replacement"

// Mapping rewrites items matching any of Patterns to Canonical.
type Mapping struct {
	Patterns  []string `json:"patterns" yaml:"patterns"`
	Canonical string   `json:"canonical" yaml:"canonical"`
}

// Engine is the replacement pass. It implements rules.Rule so the engine
// can run it as the last step of the pipeline.
type Engine struct {
	mappings []Mapping
}

// New returns a replacement pass over mappings. A nil slice selects
// DefaultMappings.
func New(mappings []Mapping) *Engine {
	if mappings == nil {
		mappings = DefaultMappings()
	}
	return &Engine{mappings: mappings}
}

// ID returns RuleID.
func (e *Engine) ID() string { return RuleID }

// Mappings returns the table the pass applies.
func (e *Engine) Mappings() []Mapping { return e.mappings }

// Apply rewrites matching items in the run's store.
func (e *Engine) Apply(rc *rules.Context) error {
	replaced := 0
	for _, m := range e.mappings {
		rc.Touch(m.Canonical)

		entry, ok := rc.Catalog.Find(m.Canonical)
		if !ok || entry.UnitPrice <= 0 {
			rc.Log.Debug("No catalog price for %q; carrier items kept", m.Canonical)
			continue
		}

		for _, pattern := range m.Patterns {
			for _, item := range rc.Store.Items() {
				description := strings.TrimSpace(item.Description)
				if description == "" || description == m.Canonical || !Matches(description, pattern) {
					continue
				}

				old := item.Description
				item.Description = m.Canonical
				item.UnitPrice = entry.UnitPrice
				if entry.Unit != "" {
					item.Unit = entry.Unit
				}
				store.RecomputeCosts(item)

				rc.Trail.Adjust(rc.Rule(), old, item.Quantity, item.Quantity,
					fmt.Sprintf("Replaced carrier item with catalog item: %s", m.Canonical), 0)
				replaced++
				break
			}
		}
	}

	if replaced > 0 {
		rc.Log.Info("Replaced %d carrier items with catalog items", replaced)
	}
	return nil
}

// Matches reports whether a trimmed item description matches a carrier
// pattern.
func Matches(description, pattern string) bool {
	if description == "" || pattern == "" {
		return false
	}
	return description == pattern ||
		strings.Contains(description, pattern) ||
		strings.Contains(pattern, description)
}
