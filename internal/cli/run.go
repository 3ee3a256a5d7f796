package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phytolab/herbnet/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	config          string  // optional TOML config file
	input           string  // herb,molecule,target CSV
	diseases        string  // comma-separated disease ids or search terms
	ppiAliases      string  // protein alias mapping file
	ppiInteractions string  // protein interaction corpus file
	ppiConfidence   int     // minimum interaction confidence (0-1000)
	ppiDegree       int     // minimum combined degree after filtering
	topPercent      float64 // hub cut as a fraction of nodes
	formats         string  // comma-separated output formats
	outDir          string  // output directory
	fontSize        int     // label font size
	fontStyle       string  // label font style
	dpi             int     // raster resolution
	labelDegree     int     // minimum degree for labels on small graphs
	simplify        int     // node count triggering render simplification
	refresh         bool    // bypass cached upstream responses
	noCache         bool    // disable caching entirely
	redisURL        string  // shared cache backend (redis://...)
}

// runCommand creates the run command, which executes the full pipeline:
// build the interaction network, fetch disease associations, resolve the
// protein interaction layer, score hubs, compare target sets, render and
// export.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := buildRunOptions(&opts)
			if err != nil {
				return err
			}
			return c.runPipeline(cmd, popts, opts.noCache, opts.redisURL)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file (flags override file values)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "herb,molecule,target CSV file")
	cmd.Flags().StringVarP(&opts.diseases, "disease", "d", "", "disease ids or search terms (comma-separated)")
	cmd.Flags().StringVar(&opts.ppiAliases, "ppi-aliases", "", "protein alias mapping file")
	cmd.Flags().StringVar(&opts.ppiInteractions, "ppi-interactions", "", "protein interaction corpus file")
	cmd.Flags().IntVar(&opts.ppiConfidence, "ppi-confidence", 0, "minimum interaction confidence, 0-1000")
	cmd.Flags().IntVar(&opts.ppiDegree, "ppi-degree", 0, "prune proteins below this combined degree")
	cmd.Flags().Float64Var(&opts.topPercent, "top-percent", 0, "fraction of nodes marked as hubs")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", 0, "label font size")
	cmd.Flags().StringVar(&opts.fontStyle, "font-style", "", "label font style: normal, bold, italic")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution")
	cmd.Flags().IntVar(&opts.labelDegree, "label-degree", 0, "minimum degree for node labels on small graphs")
	cmd.Flags().IntVar(&opts.simplify, "simplify", 0, "node count triggering render simplification")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached upstream responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis cache backend URL")

	return cmd
}

// buildRunOptions merges the config file, environment defaults and flags
// into pipeline options. Precedence: flags > config file > environment.
func buildRunOptions(opts *runOpts) (pipeline.Options, error) {
	var popts pipeline.Options
	if opts.config != "" {
		cfg, err := pipeline.LoadConfig(opts.config)
		if err != nil {
			return popts, err
		}
		popts = cfg.Options()
	}

	env := envDefaults()
	applyIfZero(&popts.FontSize, env.FontSize)
	applyIfEmpty(&popts.FontStyle, env.FontStyle)
	applyIfZero(&popts.DPI, env.DPI)
	applyIfZero(&popts.PPIMinConfidence, env.PPIConfidence)
	applyIfZero(&popts.PPIMinDegree, env.PPIDegree)
	if len(popts.Diseases) == 0 {
		popts.Diseases = env.Diseases
	}

	overrideNonEmpty(&popts.Input, opts.input)
	if ds := parseList(opts.diseases); len(ds) > 0 {
		popts.Diseases = ds
	}
	overrideNonEmpty(&popts.PPIAliases, opts.ppiAliases)
	overrideNonEmpty(&popts.PPIInteractions, opts.ppiInteractions)
	overrideNonZero(&popts.PPIMinConfidence, opts.ppiConfidence)
	overrideNonZero(&popts.PPIMinDegree, opts.ppiDegree)
	if opts.topPercent > 0 {
		popts.TopPercent = opts.topPercent
	}
	if opts.formats != "" {
		popts.Formats = parseFormats(opts.formats)
	}
	overrideNonEmpty(&popts.OutDir, opts.outDir)
	overrideNonZero(&popts.FontSize, opts.fontSize)
	overrideNonEmpty(&popts.FontStyle, opts.fontStyle)
	overrideNonZero(&popts.DPI, opts.dpi)
	overrideNonZero(&popts.LabelMinDegree, opts.labelDegree)
	overrideNonZero(&popts.SimplifyThreshold, opts.simplify)
	popts.Refresh = opts.refresh

	return popts, nil
}

func applyIfZero(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func applyIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func overrideNonZero(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func overrideNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// runPipeline executes the pipeline and prints a styled summary.
func (c *CLI) runPipeline(cmd *cobra.Command, popts pipeline.Options, noCache bool, redisURL string) error {
	runner, err := c.newRunner(cmd.Context(), noCache, redisURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}

	printSummary(result)
	for _, mod := range result.Manifest.Modules {
		if mod.Status == pipeline.StatusFailed {
			printWarning("%s failed: %s", mod.Name, mod.Message)
		}
	}
	for _, name := range sortedArtifacts(result.Artifacts) {
		printFile(filepath.Join(popts.OutDir, name))
	}
	printNewline()
	printNextStep("Inspect the run manifest", fmt.Sprintf("cat %s", filepath.Join(popts.OutDir, "manifest.json")))
	return nil
}
