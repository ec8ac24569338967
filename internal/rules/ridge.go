package rules

import (
	"fmt"
	"math"
)

func ridgeHipsReason(rc *Context) string {
	return fmt.Sprintf("Hip/Ridge cap quantity should equal Total Ridges/Hips Length / 100 (%.2f)", rc.Metrics.RidgesHipsQty)
}

func ridgesReason(rc *Context) string {
	return fmt.Sprintf("Hip/Ridge cap quantity should equal Total Line Lengths (Ridges) / 100 (%.2f)", rc.Metrics.RidgesQty)
}

// ridgeVentOrCap makes sure the ridge is covered. Without a high or
// standard profile cap the detach-and-reset ridge vent is floored or
// inserted; otherwise the caps themselves are floored.
func ridgeVentOrCap(rc *Context) error {
	target := rc.Metrics.RidgesHipsQty
	if !rc.Store.Has(profileCaps...) {
		reason := fmt.Sprintf("Ridge vent quantity should equal Total Ridges/Hips Length / 100 (%.2f)", target)
		rc.FloorOrInsert(RidgeVentDetachReset, target, "LF", reason)
		return nil
	}
	reason := ridgeHipsReason(rc)
	for _, description := range profileCaps {
		rc.FloorToTarget(description, target, reason)
	}
	return nil
}

func ridgeVentLength(rc *Context) error {
	target := rc.Metrics.RidgesQty
	reason := fmt.Sprintf("Ridge vent quantity should equal Total Line Lengths (Ridges) / 100 (%.2f)", target)
	rc.FloorToTarget(RidgeVentAluminum, target, reason)
	rc.FloorToTarget(RidgeVentShingleOver, target, reason)
	return nil
}

func hipRidgeCap(rc *Context) error {
	floorCaps(rc)
	return nil
}

func floorCaps(rc *Context) {
	reason := ridgeHipsReason(rc)
	for _, description := range allCaps {
		rc.FloorToTarget(description, rc.Metrics.RidgesHipsQty, reason)
	}
}

// =============================================================================
// VENT AND CAP CO-OCCURRENCE
// =============================================================================

func shingleOverVentCaps(rc *Context) error {
	if rc.Store.Has(RidgeVentShingleOver) {
		floorCaps(rc)
	}
	return nil
}

// aluminumVentCaps holds caps to exactly the ridge/hip quantity when an
// aluminum ridge vent is on the estimate. Quantities above target are kept.
func aluminumVentCaps(rc *Context) error {
	if !rc.Store.Has(RidgeVentAluminum) {
		return nil
	}
	reason := ridgeHipsReason(rc)
	for _, description := range allCaps {
		rc.ExactToTarget(description, rc.Metrics.RidgesHipsQty, reason)
	}
	return nil
}

func shingleOverThreeTabCap(rc *Context) error {
	if rc.Store.Has(RidgeVentShingleOver) && rc.Store.Has(ThreeTabFelt) {
		rc.FloorOrInsert(CapCutFromThreeTab, coOccurrenceCapTarget(rc), "", ridgesReason(rc))
	}
	return nil
}

func shingleOverLaminatedCap(rc *Context) error {
	if rc.Store.Has(RidgeVentShingleOver) && rc.Store.Has(RemoveLaminatedNoFelt, RemoveLaminatedFelt) {
		rc.FloorOrInsert(CapStandardProfile, coOccurrenceCapTarget(rc), "", ridgesReason(rc))
	}
	return nil
}

// coOccurrenceCapTarget is the ridge length, raised to the ridge/hip length
// when that is larger. Caps inserted here would otherwise be floored to the
// ridge/hip length by hip-ridge-cap on the next run.
func coOccurrenceCapTarget(rc *Context) float64 {
	return math.Max(rc.Metrics.RidgesQty, rc.Metrics.RidgesHipsQty)
}
