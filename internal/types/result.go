package types

// =============================================================================
// AUDIT RECORDS
// =============================================================================

// RecordType classifies an audit record.
type RecordType string

const (
	RecordQuantityAdjustment RecordType = "quantity_adjustment"
	RecordAddition           RecordType = "addition"
	RecordWarning            RecordType = "warning"
)

// AdjustmentRecord describes one change (or refusal to change) made during a
// run. Which optional fields are set depends on Type:
//   - quantity_adjustment: OldQuantity, NewQuantity, Savings
//   - addition:            Quantity, Unit
//   - warning:             neither
type AdjustmentRecord struct {
	Type        RecordType `json:"type"`
	Rule        string     `json:"rule,omitempty"`
	Description string     `json:"description"`
	OldQuantity *float64   `json:"old_quantity,omitempty"`
	NewQuantity *float64   `json:"new_quantity,omitempty"`
	Quantity    *float64   `json:"quantity,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	Reason      string     `json:"reason"`
	Savings     *float64   `json:"savings,omitempty"`
}

// Summary aggregates the audit trail of one run.
type Summary struct {
	TotalAdjustments int     `json:"total_adjustments"`
	TotalAdditions   int     `json:"total_additions"`
	TotalWarnings    int     `json:"total_warnings"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

// AdjustmentResults is the audit trail grouped by record type.
type AdjustmentResults struct {
	Adjustments []AdjustmentRecord `json:"adjustments"`
	Additions   []AdjustmentRecord `json:"additions"`
	Warnings    []AdjustmentRecord `json:"warnings"`
	Summary     Summary            `json:"summary"`
}

// =============================================================================
// RESULT
// =============================================================================

// SteepRoofAreas holds the raw steep-pitch area sums in square feet.
type SteepRoofAreas struct {
	Pitch7To9   float64 `json:"7_12_to_9_12"`
	Pitch10To12 float64 `json:"10_12_to_12_12"`
	Pitch12Plus float64 `json:"12_12_plus"`
}

// RoofMeasurementSummary echoes the measurements the rules were driven by.
type RoofMeasurementSummary struct {
	TotalRoofArea         float64        `json:"total_roof_area"`
	TotalEavesLength      float64        `json:"total_eaves_length"`
	TotalRakesLength      float64        `json:"total_rakes_length"`
	TotalRidgesHipsLength float64        `json:"total_ridges_hips_length"`
	TotalValleysLength    float64        `json:"total_valleys_length"`
	TotalSquares          float64        `json:"total_squares"`
	StarterQty            float64        `json:"starter_qty"`
	SteepRoofAreas        SteepRoofAreas `json:"steep_roof_areas"`
}

// Result is the outcome of processing one claim.
type Result struct {
	RunID             string                 `json:"run_id"`
	OriginalLineItems []LineItem             `json:"original_line_items"`
	AdjustedLineItems []LineItem             `json:"adjusted_line_items"`
	AdjustmentResults AdjustmentResults      `json:"adjustment_results"`
	RoofMeasurements  RoofMeasurementSummary `json:"roof_measurements"`
}
