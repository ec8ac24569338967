// =============================================================================
// Roof Adjustment Engine - Metric Extraction
// =============================================================================
//
// This module reads named roof measurements and derives every target
// quantity the rules need, once per run.
//
// UNITS:
//   - Areas arrive in square feet; targets in SQ divide by 100
//   - Lengths arrive in linear feet; LF targets use them as-is, while the
//     ridge and valley "qty" values divide by 100 as the rules expect
//
// PITCH BANDS:
//   - Steep charges: 7-9/12, 10-12/12, 12/12+
//   - Felt:          1-4/12 (low slope), 5-8/12 (15 lb), 9/12 and up (30 lb)
//
// The 12/12 area belongs to both the 10-12 steep band and the steep felt
// band, and the 12/12+ area is reported under its own key.
//
// =============================================================================

package metrics

import (
	"fmt"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// Measurement names as they appear in the roof report.
const (
	KeyTotalRoofArea       = "Total Roof Area"
	KeyTotalEavesLength    = "Total Eaves Length"
	KeyTotalRakesLength    = "Total Rakes Length"
	KeyTotalRidgesHips     = "Total Ridges/Hips Length"
	KeyTotalRidges         = "Total Line Lengths (Ridges)"
	KeyTotalValleysLength  = "Total Valleys Length"
	KeyTotalStepFlashing   = "Total Step Flashing Length"
	KeyTotalFlashingLength = "Total Flashing Length"
	KeyAreaPitch12Plus     = "Area for Pitch 12/12+ (sq ft)"
)

const squareFeetPerRoofSquare = 100.0

// PitchAreaKey returns the measurement name for the area at pitch n/12.
func PitchAreaKey(n int) string {
	return fmt.Sprintf("Area for Pitch %d/12 (sq ft)", n)
}

// Metric returns the named measurement, or 0 when it is absent.
func Metric(m types.RoofMetrics, name string) float64 {
	return m[name]
}

// Metrics holds the raw measurements and every derived target for one run.
type Metrics struct {
	// Raw measurements.
	TotalRoofArea      float64
	EavesLength        float64
	RakesLength        float64
	RidgesHipsLength   float64
	RidgesLength       float64
	ValleysLength      float64
	StepFlashingLength float64
	FlashingLength     float64

	// PitchArea[n] is the area at pitch n/12 for n in 1..12.
	PitchArea   [13]float64
	Pitch12Plus float64

	// Shingles and starter.
	TotalSquares   float64 // SQ
	StarterQty     float64 // SQ-equivalent of eaves + rakes
	DripEdgeLength float64 // LF

	// Steep charges.
	Steep7to9Area   float64
	Steep10to12Area float64
	Steep12PlusArea float64
	Steep7to9Qty    float64
	Steep10to12Qty  float64
	Steep12PlusQty  float64
	HasSteep7to9    bool
	HasSteep10to12  bool
	HasSteep12Plus  bool

	// Ridge, hip and valley quantities.
	RidgesHipsQty float64
	RidgesQty     float64
	ValleysQty    float64

	// Felt bands.
	FeltLowArea    float64
	FeltMediumArea float64
	FeltSteepArea  float64
	FeltLowQty     float64
	FeltMediumQty  float64
	FeltSteepQty   float64
}

// Derive computes all targets from the raw measurements.
func Derive(m types.RoofMetrics) *Metrics {
	d := &Metrics{
		TotalRoofArea:      Metric(m, KeyTotalRoofArea),
		EavesLength:        Metric(m, KeyTotalEavesLength),
		RakesLength:        Metric(m, KeyTotalRakesLength),
		RidgesHipsLength:   Metric(m, KeyTotalRidgesHips),
		RidgesLength:       Metric(m, KeyTotalRidges),
		ValleysLength:      Metric(m, KeyTotalValleysLength),
		StepFlashingLength: Metric(m, KeyTotalStepFlashing),
		FlashingLength:     Metric(m, KeyTotalFlashingLength),
		Pitch12Plus:        Metric(m, KeyAreaPitch12Plus),
	}
	for n := 1; n <= 12; n++ {
		d.PitchArea[n] = Metric(m, PitchAreaKey(n))
	}

	d.TotalSquares = d.TotalRoofArea / squareFeetPerRoofSquare
	d.StarterQty = (d.EavesLength + d.RakesLength) / squareFeetPerRoofSquare
	d.DripEdgeLength = d.EavesLength + d.RakesLength

	d.Steep7to9Area = sumPitch(d, 7, 9)
	d.Steep10to12Area = sumPitch(d, 10, 12)
	d.Steep12PlusArea = d.Pitch12Plus
	d.Steep7to9Qty = d.Steep7to9Area / squareFeetPerRoofSquare
	d.Steep10to12Qty = d.Steep10to12Area / squareFeetPerRoofSquare
	d.Steep12PlusQty = d.Steep12PlusArea / squareFeetPerRoofSquare
	d.HasSteep7to9 = anyPitch(d, 7, 9)
	d.HasSteep10to12 = anyPitch(d, 10, 12)
	d.HasSteep12Plus = d.Pitch12Plus != 0

	d.RidgesHipsQty = d.RidgesHipsLength / squareFeetPerRoofSquare
	d.RidgesQty = d.RidgesLength / squareFeetPerRoofSquare
	d.ValleysQty = d.ValleysLength / squareFeetPerRoofSquare

	d.FeltLowArea = sumPitch(d, 1, 4)
	d.FeltMediumArea = sumPitch(d, 5, 8)
	d.FeltSteepArea = sumPitch(d, 9, 12) + d.Pitch12Plus
	d.FeltLowQty = d.FeltLowArea / squareFeetPerRoofSquare
	d.FeltMediumQty = d.FeltMediumArea / squareFeetPerRoofSquare
	d.FeltSteepQty = d.FeltSteepArea / squareFeetPerRoofSquare

	return d
}

func sumPitch(d *Metrics, from, to int) float64 {
	total := 0.0
	for n := from; n <= to; n++ {
		total += d.PitchArea[n]
	}
	return total
}

func anyPitch(d *Metrics, from, to int) bool {
	for n := from; n <= to; n++ {
		if d.PitchArea[n] != 0 {
			return true
		}
	}
	return false
}

// Summary returns the measurement block echoed in the run result.
func (d *Metrics) Summary() types.RoofMeasurementSummary {
	return types.RoofMeasurementSummary{
		TotalRoofArea:         d.TotalRoofArea,
		TotalEavesLength:      d.EavesLength,
		TotalRakesLength:      d.RakesLength,
		TotalRidgesHipsLength: d.RidgesHipsLength,
		TotalValleysLength:    d.ValleysLength,
		TotalSquares:          d.TotalSquares,
		StarterQty:            d.StarterQty,
		SteepRoofAreas: types.SteepRoofAreas{
			Pitch7To9:   d.Steep7to9Area,
			Pitch10To12: d.Steep10to12Area,
			Pitch12Plus: d.Steep12PlusArea,
		},
	}
}
