package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
)

var searchLimit int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the price catalog",
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Fuzzy search catalog descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		defer logging.Sync(log)

		cat := loadCatalog(cfg, log)
		matches := cat.Suggest(strings.Join(args, " "), searchLimit)
		if len(matches) == 0 {
			fmt.Println("No matching catalog entries.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DESCRIPTION\tUNIT\tUNIT PRICE")
		for _, e := range matches {
			fmt.Fprintf(w, "%s\t%s\t%.2f\n", e.Description, e.Unit, e.UnitPrice)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSearchCmd)

	catalogSearchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results (0 for all)")
}
