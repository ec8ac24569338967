// =============================================================================
// Roof Adjustment Engine - Main Entry Point
// =============================================================================
//
// USAGE:
//   roofadj process   - Adjust a claim (or a directory of claims)
//   roofadj serve     - Serve the engine over HTTP
//   roofadj catalog   - Search the price catalog
//   roofadj validate  - Check configuration, catalog and claims
//   roofadj version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Engine, rules, catalog, adapters
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/roof-adjustment-engine/cmd"
)

func main() {
	cmd.Execute()
}
