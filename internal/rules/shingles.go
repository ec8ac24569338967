package rules

import "fmt"

// ShingleGroupWarning is the description of the warning emitted when the
// roof area is zero and the shingle quantity rules cannot run.
const ShingleGroupWarning = "Shingle Quantity Adjustments"

const zeroAreaReason = "Total Roof Area is 0 - cannot adjust shingle quantities. Please verify roof measurements are loaded correctly."

// shingleRemoval moves the removal quantities to the roof's total squares.
// It owns the single zero-area warning for the removal and installation
// group.
func shingleRemoval(rc *Context) error {
	if rc.Metrics.TotalRoofArea == 0 || rc.Metrics.TotalSquares == 0 {
		rc.Log.Warn("Total Roof Area is 0; skipping shingle quantity adjustments")
		rc.Trail.Warn(rc.rule, ShingleGroupWarning, zeroAreaReason)
		return nil
	}
	exactShingles(rc, removalShingles)
	return nil
}

// shingleInstallation mirrors shingleRemoval for the install lines. It is
// silent at zero area because the removal rule already warned.
func shingleInstallation(rc *Context) error {
	if rc.Metrics.TotalRoofArea == 0 || rc.Metrics.TotalSquares == 0 {
		return nil
	}
	exactShingles(rc, installationShingles)
	return nil
}

func exactShingles(rc *Context, family []string) {
	target := rc.Metrics.TotalSquares
	reason := fmt.Sprintf("Quantity should equal Total Roof Area / 100 (%.2f)", target)
	for _, description := range family {
		rc.ExactToTarget(description, target, reason)
	}
}

func laminatedRounding(rc *Context) error {
	for _, description := range laminatedShingles {
		roundItem(rc, description, RoundUpLaminated, "Laminated shingles should be rounded up to nearest 0.25")
	}
	return nil
}

func threeTabRounding(rc *Context) error {
	for _, description := range threeTabShingles {
		roundItem(rc, description, RoundUpThreeTab, "3-tab shingles should be rounded up to nearest 0.33")
	}
	return nil
}

func roundItem(rc *Context, description string, round func(float64) (float64, bool), reason string) {
	rc.Touch(description)
	item := rc.Store.Find(description)
	if item == nil {
		return
	}
	if qty, changed := round(item.Quantity); changed {
		rc.set(description, item, qty, reason)
	}
}

// =============================================================================
// STARTER
// =============================================================================

func starterReason(rc *Context) string {
	return fmt.Sprintf("Starter strip quantity should equal (Total Eaves + Total Rakes) / 100 (%.2f)", rc.Metrics.StarterQty)
}

// starterForRemoval floors existing starter lines when a tear-off without
// felt is on the estimate. It never inserts.
func starterForRemoval(rc *Context) error {
	if !rc.Store.Has(RemoveLaminatedNoFelt, RemoveThreeTabNoFelt) {
		return nil
	}
	reason := starterReason(rc)
	for _, description := range starters {
		rc.FloorToTarget(description, rc.Metrics.StarterQty, reason)
	}
	return nil
}

// starterCourse inserts the universal starter when the estimate has no
// starter line at all.
func starterCourse(rc *Context) error {
	rc.EnsurePresent(starters, StarterUniversal, rc.Metrics.StarterQty, "", starterReason(rc))
	return nil
}
