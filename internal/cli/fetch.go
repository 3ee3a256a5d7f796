package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fetchCommand creates the fetch command for looking up disease targets.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		limit   int
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [disease]",
		Short: "Fetch disease-associated targets from Open Targets",
		Long: `Fetch the target association list for a disease from the Open Targets
platform. The argument is an ontology id (EFO_..., MONDO_..., ORPHA_...) or a
free-text search term resolved to its best match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newFetcher(cmd.Context(), noCache)

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Fetching targets for %q", args[0]))
			spinner.Start()
			disease, err := client.FetchDisease(cmd.Context(), args[0], refresh)
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Fetch failed: %v", err))
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("%s: %d associated targets", disease.Name, len(disease.Targets)))

			printNewline()
			printKeyValue("disease", disease.Name)
			printKeyValue("id", disease.ID)
			printNewline()

			shown := disease.Targets
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, t := range shown {
				fmt.Printf("  %s  %s %s\n",
					StyleNumber.Render(fmt.Sprintf("%.3f", t.Score)),
					StyleValue.Render(t.Symbol),
					StyleDim.Render(t.Name))
			}
			if len(shown) < len(disease.Targets) {
				printNewline()
				printInfo("%d more not shown (use --limit)", len(disease.Targets)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "maximum targets to display (0 for all)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
