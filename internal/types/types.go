// =============================================================================
// Roof Adjustment Engine - Shared Types
// =============================================================================
//
// This package contains the data model shared by every stage of the
// adjustment pipeline. Keeping the types here avoids import cycles between:
//   - store     (owns the mutable line item collection)
//   - rules     (mutates quantities)
//   - audit     (records what changed)
//   - engine    (assembles the final Result)
//
// JSON field names follow the estimate documents produced upstream, which is
// why RCV and ACV keep their upper-case keys.
//
// =============================================================================

package types

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// LINE ITEMS
// =============================================================================

// LineItem is one row of a property-damage cost estimate.
//
// The description is the business key: every lookup in the engine is done by
// description, and when two items share a description only the first one is
// acted on.
type LineItem struct {
	// LineNumber is the estimate row number. It is numeric in practice but
	// kept as a string because upstream documents are not consistent.
	LineNumber string `json:"line_number"`

	// Description identifies the work, e.g. "Remove Laminated - comp. shingle rfg. - w/out felt".
	Description string `json:"description"`

	// Quantity is expressed in Unit (SQ = 100 sq ft, LF = linear foot, EA = each).
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	UnitPrice float64 `json:"unit_price"`

	// RCV is the replacement cost value: Quantity * UnitPrice.
	RCV float64 `json:"RCV"`

	AgeLife   string `json:"age_life"`
	Condition string `json:"condition"`

	// DepPercent may be null upstream; a nil value is treated as 0.
	DepPercent *float64 `json:"dep_percent"`

	DepreciationAmount float64 `json:"depreciation_amount"`

	// ACV is the actual cash value: RCV - DepreciationAmount.
	ACV float64 `json:"ACV"`

	LocationRoom *string `json:"location_room"`
	Category     string  `json:"category"`
	PageNumber   int     `json:"page_number"`
}

// DepreciationPercent returns the depreciation percentage, treating null as 0.
func (li *LineItem) DepreciationPercent() float64 {
	if li.DepPercent == nil {
		return 0
	}
	return *li.DepPercent
}

// Clone returns a deep copy of the line item.
func (li *LineItem) Clone() LineItem {
	out := *li
	if li.DepPercent != nil {
		v := *li.DepPercent
		out.DepPercent = &v
	}
	if li.LocationRoom != nil {
		v := *li.LocationRoom
		out.LocationRoom = &v
	}
	return out
}

// CloneLineItems deep copies a slice of line items. A nil input yields an
// empty, non-nil slice so that JSON output renders [] rather than null.
func CloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// UnmarshalJSON accepts the loose shapes emitted by the OCR pipeline:
// numbers may arrive as strings ("12.5", "$1,234.00"), line numbers may
// arrive as numbers, and missing numeric fields default to zero.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		LineNumber         flexString  `json:"line_number"`
		Description        string      `json:"description"`
		Quantity           flexNumber  `json:"quantity"`
		Unit               string      `json:"unit"`
		UnitPrice          flexNumber  `json:"unit_price"`
		RCV                flexNumber  `json:"RCV"`
		AgeLife            flexString  `json:"age_life"`
		Condition          string      `json:"condition"`
		DepPercent         *flexNumber `json:"dep_percent"`
		DepreciationAmount flexNumber  `json:"depreciation_amount"`
		ACV                flexNumber  `json:"ACV"`
		LocationRoom       *string     `json:"location_room"`
		Category           string      `json:"category"`
		PageNumber         flexNumber  `json:"page_number"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode line item: %w", err)
	}

	*li = LineItem{
		LineNumber:         string(raw.LineNumber),
		Description:        raw.Description,
		Quantity:           float64(raw.Quantity),
		Unit:               raw.Unit,
		UnitPrice:          float64(raw.UnitPrice),
		RCV:                float64(raw.RCV),
		AgeLife:            string(raw.AgeLife),
		Condition:          raw.Condition,
		DepreciationAmount: float64(raw.DepreciationAmount),
		ACV:                float64(raw.ACV),
		LocationRoom:       raw.LocationRoom,
		Category:           raw.Category,
		PageNumber:         int(raw.PageNumber),
	}
	if raw.DepPercent != nil {
		v := float64(*raw.DepPercent)
		li.DepPercent = &v
	}

	return nil
}

// =============================================================================
// CLAIM INPUT
// =============================================================================

// Claim is the combined input document: the carrier's line items plus the
// roof measurements extracted from the measurement report.
type Claim struct {
	LineItems        []LineItem  `json:"line_items"`
	RoofMeasurements RoofMetrics `json:"roof_measurements"`
}
