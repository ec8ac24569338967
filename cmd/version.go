// =============================================================================
// Roof Adjustment Engine - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   roofadj version
//
// OUTPUT:
//   Roof Adjustment Engine
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//   Rules:      24 (+ carrier replacement, 54 mappings)
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/replacement"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/rules"
)

// These variables are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/roof-adjustment-engine/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, Go runtime version and rule set size.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Roof Adjustment Engine")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("Rules:      %d (+ carrier replacement, %d mappings)\n", len(rules.Default()), len(replacement.DefaultMappings()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
