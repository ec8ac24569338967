package rules

import "fmt"

// dripEdge holds the first drip edge line found to the eaves plus rakes
// length in LF.
func dripEdge(rc *Context) error {
	target := rc.Metrics.DripEdgeLength
	reason := fmt.Sprintf("Drip edge quantity should equal (Total Eaves + Total Rakes) = %.2f LF", target)
	for _, description := range dripEdges {
		if rc.ExactToTarget(description, target, reason) {
			return nil
		}
	}
	rc.Log.Debug("No drip edge line on the estimate")
	return nil
}

func stepFlashing(rc *Context) error {
	target := rc.Metrics.StepFlashingLength
	reason := fmt.Sprintf("Step flashing quantity should equal Total Step Flashing Length = %.2f LF", target)
	rc.ExactToTarget(StepFlashing, target, reason)
	return nil
}

func aluminumFlashing(rc *Context) error {
	target := rc.Metrics.FlashingLength
	reason := fmt.Sprintf("Aluminum flashing quantity should equal Total Flashing Length = %.2f LF", target)
	rc.FloorToTarget(AluminumFlashing, target, reason)
	return nil
}

// valleyMetal floors the first valley metal line found to the valley length.
func valleyMetal(rc *Context) error {
	target := rc.Metrics.ValleysLength
	reason := fmt.Sprintf("Valley metal quantity should equal Total Valleys Length = %.2f LF", target)
	for _, description := range valleyMetals {
		if rc.FloorToTarget(description, target, reason) {
			return nil
		}
	}
	return nil
}
