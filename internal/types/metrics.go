package types

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// ROOF MEASUREMENTS
// =============================================================================

// RoofMetrics maps a measurement name (e.g. "Total Roof Area",
// "Area for Pitch 7/12 (sq ft)") to its numeric value. Lengths are in linear
// feet and areas in square feet. A missing key reads as zero.
type RoofMetrics map[string]float64

// UnmarshalJSON accepts both shapes seen in practice:
//
//	{"Total Roof Area": 2500}
//	{"Total Roof Area": {"value": 2500, "unit": "sq ft"}}
//
// Values that cannot be read as a number are dropped, which makes them read
// as zero downstream.
func (m *RoofMetrics) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode roof measurements: %w", err)
	}

	out := make(RoofMetrics, len(raw))
	for name, value := range raw {
		var direct flexNumber
		if err := json.Unmarshal(value, &direct); err == nil {
			out[name] = float64(direct)
			continue
		}

		var wrapped struct {
			Value flexNumber `json:"value"`
		}
		if err := json.Unmarshal(value, &wrapped); err == nil {
			out[name] = float64(wrapped.Value)
		}
	}

	*m = out
	return nil
}
