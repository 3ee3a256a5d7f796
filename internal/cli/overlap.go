package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phytolab/herbnet/pkg/graph"
	"github.com/phytolab/herbnet/pkg/overlap"
)

// overlapCommand creates the overlap command, which compares the predicted
// targets of an exported graph against one or more disease target sets.
func (c *CLI) overlapCommand() *cobra.Command {
	var (
		diseases string
		outDir   string
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "overlap [graph.json]",
		Short: "Compare predicted targets against disease target sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := parseList(diseases)
			if len(ids) == 0 {
				ids = envDefaults().Diseases
			}
			if len(ids) == 0 {
				return fmt.Errorf("at least one disease is required (--disease)")
			}

			g, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}
			predicted := append(g.NodesOfType(graph.TypeTarget), g.NodesOfType(graph.TypeDiseaseTarget)...)
			if len(predicted) == 0 {
				return fmt.Errorf("graph %s has no target nodes", args[0])
			}
			c.Logger.Info("loaded graph", "nodes", g.NodeCount(), "targets", len(predicted))

			client := c.newFetcher(cmd.Context(), noCache)
			sets := []overlap.Set{overlap.NewSet("predicted", predicted)}
			for _, id := range ids {
				d, err := client.FetchDisease(cmd.Context(), id, refresh)
				if err != nil {
					return fmt.Errorf("fetch %s: %w", id, err)
				}
				symbols := make([]string, 0, len(d.Targets))
				for _, t := range d.Targets {
					symbols = append(symbols, t.Symbol)
				}
				sets = append(sets, overlap.NewSet(d.Name, symbols))
				printInfo("%s: %d targets", d.Name, len(symbols))
			}

			res, err := overlap.Analyze(sets...)
			if err != nil {
				return err
			}
			if err := overlap.WriteDumps(res, outDir); err != nil {
				return err
			}

			printNewline()
			printSuccess("%d identifiers in every set (%s strategy)", res.Intersection.Len(), res.Strategy)
			for _, id := range res.Intersection.Items() {
				fmt.Println("  " + StyleValue.Render(id))
			}
			printNewline()
			printKeyValue("predicted only", fmt.Sprintf("%d", res.PredictedOnly.Len()))
			printFile(outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&diseases, "disease", "d", "", "disease ids or search terms (comma-separated)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "overlap", "directory for the set dump files")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
