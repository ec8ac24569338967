package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// =============================================================================
// INPUT LOADING
// =============================================================================

// LoadClaim reads a combined input file holding both "line_items" and
// "roof_measurements". Either key may be missing.
func LoadClaim(path string) (*types.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read claim file: %w", err)
	}
	claim, err := DecodeClaim(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse claim file %s: %w", path, err)
	}
	return claim, nil
}

// DecodeClaim parses a claim document. An API gateway envelope whose "body"
// is the claim encoded as a JSON string is unwrapped first.
func DecodeClaim(data []byte) (*types.Claim, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("claim must be a JSON object: %w", err)
	}

	if body, ok := envelope["body"]; ok {
		var inner string
		if err := json.Unmarshal(body, &inner); err == nil {
			return DecodeClaim([]byte(inner))
		}
		return DecodeClaim(body)
	}

	claim := &types.Claim{}
	if err := json.Unmarshal(data, claim); err != nil {
		return nil, err
	}
	if claim.LineItems == nil {
		claim.LineItems = []types.LineItem{}
	}
	if claim.RoofMeasurements == nil {
		claim.RoofMeasurements = types.RoofMetrics{}
	}
	return claim, nil
}

// LoadLineItems reads a line items file: either a bare array or an object
// with a "line_items" array.
func LoadLineItems(path string) ([]types.LineItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read line items file: %w", err)
	}

	var items []types.LineItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		LineItems *[]types.LineItem `json:"line_items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.LineItems == nil {
		return nil, fmt.Errorf("invalid line items format in %s: expected an array or an object with line_items", path)
	}
	return *wrapped.LineItems, nil
}

// LoadRoofMeasurements reads a roof measurements file. The measurements may
// sit at the top level or under a "roof_measurements" key.
func LoadRoofMeasurements(path string) (types.RoofMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roof measurements file: %w", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid roof measurements format in %s: %w", path, err)
	}
	if inner, ok := envelope["roof_measurements"]; ok {
		data = inner
	}

	m := types.RoofMetrics{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid roof measurements format in %s: %w", path, err)
	}
	return m, nil
}
