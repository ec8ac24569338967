// =============================================================================
// Roof Adjustment Engine - Rule Pipeline
// =============================================================================
//
// This module defines the adjustment rules and runs them in order against one
// run's line item store.
//
// PIPELINE:
//   Each Rule is a tagged object with a stable ID. Rules run strictly in the
//   order Default returns them; later rules see the items earlier rules
//   changed or inserted, so the order is part of the behavior.
//
// CONTEXT:
//   Every rule receives the same *Context: the store, the metrics derived
//   once for the run, the catalog, the audit trail and the options. Rules
//   never recompute metrics.
//
// FAILURE:
//   The first rule that returns an error or panics stops the run. The
//   failure is reported as a *RuleError naming the rule and the description
//   it was working on.
//
// =============================================================================

package rules

import (
	"fmt"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/audit"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/metrics"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/store"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes rule behavior for one engine.
type Options struct {
	// UnitCostFloor enables the unit-cost-floor rule.
	UnitCostFloor bool

	// WarnUnpricedAdditions adds a warning record for every inserted item
	// the catalog has no price for.
	WarnUnpricedAdditions bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{}
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context is the explicit state shared by every rule of one run.
type Context struct {
	Store   *store.Store
	Metrics *metrics.Metrics
	Catalog *catalog.Catalog
	Trail   *audit.Trail
	Log     logging.Logger
	Options Options

	rule    string
	current string
}

// NewContext builds the context for one run. A nil logger is replaced by a
// no-op logger.
func NewContext(st *store.Store, m *metrics.Metrics, cat *catalog.Catalog, trail *audit.Trail, log logging.Logger, opts Options) *Context {
	if log == nil {
		log = logging.Nop()
	}
	return &Context{
		Store:   st,
		Metrics: m,
		Catalog: cat,
		Trail:   trail,
		Log:     log,
		Options: opts,
	}
}

// Begin marks the start of a rule. Audit records written afterwards carry
// the rule's ID.
func (rc *Context) Begin(ruleID string) {
	rc.rule = ruleID
	rc.current = ""
}

// Rule returns the ID of the rule currently running.
func (rc *Context) Rule() string { return rc.rule }

// Current returns the description the running rule last touched, for error
// reports.
func (rc *Context) Current() string { return rc.current }

// Touch records the description a rule is working on.
func (rc *Context) Touch(description string) {
	rc.current = description
}

// =============================================================================
// RULES
// =============================================================================

// Rule is one step of the adjustment pipeline.
type Rule interface {
	ID() string
	Apply(rc *Context) error
}

// Func adapts a plain function into a Rule.
type Func struct {
	id string
	fn func(rc *Context) error
}

// New returns a Rule with the given ID backed by fn.
func New(id string, fn func(rc *Context) error) Rule {
	return &Func{id: id, fn: fn}
}

// ID returns the rule's identifier.
func (f *Func) ID() string { return f.id }

// Apply runs the rule.
func (f *Func) Apply(rc *Context) error { return f.fn(rc) }

// Default returns the adjustment rules in pipeline order. The carrier item
// replacement pass is not part of this list; the engine appends it.
func Default() []Rule {
	return []Rule{
		New("shingle-removal", shingleRemoval),
		New("shingle-installation", shingleInstallation),
		New("laminated-rounding", laminatedRounding),
		New("three-tab-rounding", threeTabRounding),
		New("starter-for-removal", starterForRemoval),
		New("steep-7-9", steep7to9),
		New("steep-10-12", steep10to12),
		New("steep-12-plus", steep12Plus),
		New("starter-course", starterCourse),
		New("ridge-vent-or-cap", ridgeVentOrCap),
		New("steep-floor", steepFloor),
		New("ridge-vent-length", ridgeVentLength),
		New("hip-ridge-cap", hipRidgeCap),
		New("drip-edge", dripEdge),
		New("step-flashing", stepFlashing),
		New("aluminum-flashing", aluminumFlashing),
		New("shingle-over-vent-caps", shingleOverVentCaps),
		New("aluminum-vent-caps", aluminumVentCaps),
		New("shingle-over-3tab-cap", shingleOverThreeTabCap),
		New("shingle-over-laminated-cap", shingleOverLaminatedCap),
		New("valley-metal", valleyMetal),
		New("roofing-felt", roofingFelt),
		New("chimney-saddle", chimneySaddle),
		New("unit-cost-floor", unitCostFloor),
	}
}

// =============================================================================
// RUNNER
// =============================================================================

// RuleError reports the rule that stopped a run.
type RuleError struct {
	// RuleID is the ID of the failing rule.
	RuleID string

	// Description is the line item description the rule was working on, if
	// any.
	Description string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("rule %s failed on %q: %v", e.RuleID, e.Description, e.Err)
	}
	return fmt.Sprintf("rule %s failed: %v", e.RuleID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RuleError) Unwrap() error { return e.Err }

// Run applies the rules in order and stops at the first failure. A panic
// inside a rule is recovered and returned as a *RuleError.
func Run(rc *Context, list []Rule) error {
	for _, r := range list {
		if err := apply(rc, r); err != nil {
			return err
		}
	}
	return nil
}

func apply(rc *Context, r Rule) (err error) {
	rc.Begin(r.ID())
	before := rc.Trail.Len()

	defer func() {
		if p := recover(); p != nil {
			err = &RuleError{RuleID: r.ID(), Description: rc.Current(), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	if applyErr := r.Apply(rc); applyErr != nil {
		return &RuleError{RuleID: r.ID(), Description: rc.Current(), Err: applyErr}
	}

	if n := rc.Trail.Len() - before; n > 0 {
		rc.Log.Debug("Rule %s wrote %d audit records", r.ID(), n)
	}
	return nil
}
