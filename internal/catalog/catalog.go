// =============================================================================
// Roof Adjustment Engine - Price Catalog
// =============================================================================
//
// The catalog maps a canonical item description to its unit and unit price.
// It is built once (see the catalogloader package) and is read-only
// afterwards, so a single instance can be shared by concurrent runs.
//
// LOOKUP POLICY:
//   1. Exact description match.
//   2. Case-insensitive containment in either direction, scanning entries
//      in catalog file order. The first hit wins.
//   3. Otherwise {UnitPrice: 0, Unit: "SQ"}.
//
// =============================================================================

package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultUnit is reported for descriptions the catalog does not know.
const DefaultUnit = "SQ"

// Entry is one priced catalog row.
type Entry struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

// Price is the result of a Lookup.
type Price struct {
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
}

// Catalog is an ordered, immutable set of entries keyed by description.
type Catalog struct {
	source  string
	entries []Entry
	index   map[string]int
	folded  map[string]int
	lowered []string
}

// New builds a catalog from entries in file order. When a description
// appears more than once the later row's price and unit win, but the entry
// keeps the position of its first occurrence.
func New(source string, entries []Entry) *Catalog {
	c := &Catalog{
		source: source,
		index:  make(map[string]int, len(entries)),
		folded: make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if i, ok := c.index[e.Description]; ok {
			c.entries[i] = e
			continue
		}
		c.index[e.Description] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	c.lowered = make([]string, len(c.entries))
	for i, e := range c.entries {
		lower := strings.ToLower(e.Description)
		c.lowered[i] = lower
		if _, ok := c.folded[lower]; !ok {
			c.folded[lower] = i
		}
	}

	return c
}

// Empty returns a catalog with no entries. Every lookup on it misses.
func Empty() *Catalog {
	return New("", nil)
}

// Source is the file the catalog was loaded from, or "" if built in memory.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Len returns the number of distinct descriptions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup returns the price and unit for a description using the catalog
// lookup policy. It never fails: unknown descriptions cost 0 per SQ.
func (c *Catalog) Lookup(description string) Price {
	if e, ok := c.Find(description); ok {
		return Price{UnitPrice: e.UnitPrice, Unit: e.Unit}
	}
	return Price{UnitPrice: 0, Unit: DefaultUnit}
}

// Find applies the same policy as Lookup but reports a miss instead of
// returning the default price.
func (c *Catalog) Find(description string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	if i, ok := c.index[description]; ok {
		return c.entries[i], true
	}

	needle := strings.ToLower(description)
	if needle == "" {
		return Entry{}, false
	}

	for i, key := range c.lowered {
		if key == "" {
			continue
		}
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			return c.entries[i], true
		}
	}

	return Entry{}, false
}

// Exact matches the description exactly, then case-insensitively. No
// containment matching is done.
func (c *Catalog) Exact(description string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	if i, ok := c.index[description]; ok {
		return c.entries[i], true
	}
	if i, ok := c.folded[strings.ToLower(description)]; ok {
		return c.entries[i], true
	}
	return Entry{}, false
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Suggest returns up to limit entries whose description fuzzy-matches the
// query, best match first. A limit <= 0 returns every match.
func (c *Catalog) Suggest(query string, limit int) []Entry {
	if c == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	matches := fuzzy.Find(strings.ToLower(query), c.lowered)

	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.entries[m.Index])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
