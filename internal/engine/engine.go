// =============================================================================
// Roof Adjustment Engine - Engine
// =============================================================================
//
// This module orchestrates one claim run, from raw line items and roof
// measurements to the adjusted estimate and its audit trail.
//
// PROCESSING PIPELINE:
//   1. Validate the input items (problems are logged, never fatal)
//   2. Derive every metric target once
//   3. Seed a store with a deep copy of the items
//   4. Run the adjustment rules in order
//   5. Run the carrier item replacement pass
//   6. Recompute the costs of every item
//   7. Assemble the result
//
// CONCURRENCY:
//   ProcessClaim is synchronous and each call owns its store and audit
//   trail. The catalog is only read, so one Engine may serve concurrent
//   calls.
//
// =============================================================================

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/audit"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/metrics"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/replacement"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/rules"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/validation"
)

// RuleError reports the rule that stopped a run.
type RuleError = rules.RuleError

// =============================================================================
// ENGINE STRUCTURE
// =============================================================================

// Engine runs the adjustment pipeline against a fixed catalog.
type Engine struct {
	catalog     *catalog.Catalog
	logger      logging.Logger
	options     rules.Options
	rules       []rules.Rule
	replacement rules.Rule
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Runs log through a child logger tagged with
// their run ID.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOptions sets the rule options.
func WithOptions(o rules.Options) Option {
	return func(e *Engine) { e.options = o }
}

// WithRules replaces the adjustment rules. The replacement pass still runs
// after them.
func WithRules(list []rules.Rule) Option {
	return func(e *Engine) { e.rules = list }
}

// WithReplacements replaces the carrier item replacement table.
func WithReplacements(mappings []replacement.Mapping) Option {
	return func(e *Engine) { e.replacement = replacement.New(mappings) }
}

// New creates an engine over cat. A nil catalog behaves as an empty one.
//
// PARAMETERS:
//   - cat: The price catalog used for insertions and replacements.
//   - opts: Optional settings.
//
// RETURNS:
//   - A new Engine with the default rules and replacement table.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Empty()
	}
	e := &Engine{
		catalog:     cat,
		logger:      logging.Nop(),
		options:     rules.DefaultOptions(),
		rules:       rules.Default(),
		replacement: replacement.New(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// ProcessClaim adjusts one estimate against its roof measurements.
//
// PARAMETERS:
//   - items: The carrier's line items. They are not modified.
//   - m: The raw roof measurements. Absent keys count as 0.
//
// RETURNS:
//   - The result, holding both the original and adjusted items.
//   - A *RuleError (wrapped) if a rule failed; no partial result is
//     returned in that case.
func (e *Engine) ProcessClaim(items []types.LineItem, m types.RoofMetrics) (*types.Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.With(e.logger, "run_id", runID)

	log.Info("Processing claim: %d line items, %d measurements", len(items), len(m))

	// =========================================================================
	// STEP 1: VALIDATE INPUT
	// =========================================================================
	// Problems in the carrier's data are reported but never block a run.

	for _, issue := range validation.ValidateLineItems(items) {
		log.Warn("Input issue: %s", issue.Error())
	}

	// =========================================================================
	// STEP 2: DERIVE METRICS
	// =========================================================================

	derived := metrics.Derive(m)
	log.Debug("Total squares %.2f, starter %.2f, steep 7-9 %.2f", derived.TotalSquares, derived.StarterQty, derived.Steep7to9Qty)

	// =========================================================================
	// STEP 3-5: RUN RULES AND REPLACEMENTS
	// =========================================================================

	trail := audit.New()
	st := store.New(items, e.catalog, trail)
	rc := rules.NewContext(st, derived, e.catalog, trail, log, e.options)

	pipeline := make([]rules.Rule, 0, len(e.rules)+1)
	pipeline = append(pipeline, e.rules...)
	pipeline = append(pipeline, e.replacement)

	if err := rules.Run(rc, pipeline); err != nil {
		log.Error("Processing failed: %v", err)
		return nil, fmt.Errorf("failed to process claim: %w", err)
	}

	// =========================================================================
	// STEP 6: RECONCILE COSTS
	// =========================================================================
	// Rules recompute costs as they go; this restores the invariant for
	// items no rule touched but whose input costs were stale.

	st.Reconcile()

	// =========================================================================
	// STEP 7: ASSEMBLE RESULT
	// =========================================================================

	result := &types.Result{
		RunID:             runID,
		OriginalLineItems: types.CloneLineItems(items),
		AdjustedLineItems: st.Snapshot(),
		AdjustmentResults: trail.Results(),
		RoofMeasurements:  derived.Summary(),
	}

	s := result.AdjustmentResults.Summary
	log.Info("Processed claim in %s: %d adjustments, %d additions, %d warnings",
		time.Since(start).Round(time.Millisecond), s.TotalAdjustments, s.TotalAdditions, s.TotalWarnings)

	return result, nil
}

// Process is ProcessClaim for a combined claim document.
func (e *Engine) Process(claim *types.Claim) (*types.Result, error) {
	if claim == nil {
		return nil, fmt.Errorf("claim is nil")
	}
	return e.ProcessClaim(claim.LineItems, claim.RoofMeasurements)
}
