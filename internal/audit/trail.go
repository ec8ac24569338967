// Package audit records every change the adjustment rules make to an estimate.
//
// A Trail is created fresh for each run and is append-only: records are
// never edited or removed. Savings are accumulated as decimals so the
// summary does not drift with the number of records.
package audit

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// Trail is the ordered audit log of one run. It is not safe for concurrent
// use; each run owns its own Trail.
type Trail struct {
	adjustments []types.AdjustmentRecord
	additions   []types.AdjustmentRecord
	warnings    []types.AdjustmentRecord
	savings     decimal.Decimal
}

// New returns an empty trail.
func New() *Trail {
	return &Trail{
		adjustments: []types.AdjustmentRecord{},
		additions:   []types.AdjustmentRecord{},
		warnings:    []types.AdjustmentRecord{},
		savings:     decimal.Zero,
	}
}

// Adjust records a change to an existing item. Replacements are recorded
// here too, with equal old and new quantities.
func (t *Trail) Adjust(rule, description string, oldQty, newQty float64, reason string, savings float64) {
	t.adjustments = append(t.adjustments, types.AdjustmentRecord{
		Type:        types.RecordQuantityAdjustment,
		Rule:        rule,
		Description: description,
		OldQuantity: float64Ptr(oldQty),
		NewQuantity: float64Ptr(newQty),
		Reason:      reason,
		Savings:     float64Ptr(savings),
	})
	t.savings = t.savings.Add(decimal.NewFromFloat(savings))
}

// Add records an inserted item.
func (t *Trail) Add(rule, description string, quantity float64, unit, reason string) {
	t.additions = append(t.additions, types.AdjustmentRecord{
		Type:        types.RecordAddition,
		Rule:        rule,
		Description: description,
		Quantity:    float64Ptr(quantity),
		Unit:        unit,
		Reason:      reason,
	})
}

// Warn records a condition that stopped a rule from acting.
func (t *Trail) Warn(rule, description, reason string) {
	t.warnings = append(t.warnings, types.AdjustmentRecord{
		Type:        types.RecordWarning,
		Rule:        rule,
		Description: description,
		Reason:      reason,
	})
}

// Adjustments returns the quantity adjustment records in order.
func (t *Trail) Adjustments() []types.AdjustmentRecord { return clone(t.adjustments) }

// Additions returns the addition records in order.
func (t *Trail) Additions() []types.AdjustmentRecord { return clone(t.additions) }

// Warnings returns the warning records in order.
func (t *Trail) Warnings() []types.AdjustmentRecord { return clone(t.warnings) }

// Len is the total number of records of all types.
func (t *Trail) Len() int {
	return len(t.adjustments) + len(t.additions) + len(t.warnings)
}

// Summary aggregates the trail.
func (t *Trail) Summary() types.Summary {
	return types.Summary{
		TotalAdjustments: len(t.adjustments),
		TotalAdditions:   len(t.additions),
		TotalWarnings:    len(t.warnings),
		EstimatedSavings: t.savings.Round(2).InexactFloat64(),
	}
}

// Results returns the grouped records with their summary.
func (t *Trail) Results() types.AdjustmentResults {
	return types.AdjustmentResults{
		Adjustments: t.Adjustments(),
		Additions:   t.Additions(),
		Warnings:    t.Warnings(),
		Summary:     t.Summary(),
	}
}

func clone(in []types.AdjustmentRecord) []types.AdjustmentRecord {
	out := make([]types.AdjustmentRecord, len(in))
	copy(out, in)
	return out
}

func float64Ptr(v float64) *float64 { return &v }
