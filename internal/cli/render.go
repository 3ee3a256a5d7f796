package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phytolab/herbnet/pkg/graph"
	"github.com/phytolab/herbnet/pkg/layout"
	"github.com/phytolab/herbnet/pkg/pipeline"
	"github.com/phytolab/herbnet/pkg/render"
)

// renderCmdOpts holds the command-line flags for the render command.
type renderCmdOpts struct {
	output      string // output file (single format) or base path
	formats     string // comma-separated output formats
	fontSize    int    // label font size
	fontStyle   string // label font style
	dpi         int    // raster resolution
	labelDegree int    // minimum degree for node labels on small graphs
}

// renderCommand creates the render command, which re-renders an exported
// graph document with different styling without re-running the pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderCmdOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render an exported graph to DOT, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			for _, f := range formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			if opts.fontStyle != "" && !pipeline.ValidFontStyles[opts.fontStyle] {
				return fmt.Errorf("invalid font-style: %q", opts.fontStyle)
			}
			return c.runRender(cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", 0, "label font size")
	cmd.Flags().StringVar(&opts.fontStyle, "font-style", "", "label font style: normal, bold, italic")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "raster resolution")
	cmd.Flags().IntVar(&opts.labelDegree, "label-degree", 0, "minimum degree for node labels on small graphs")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, opts *renderCmdOpts) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return err
	}
	c.Logger.Info("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	env := envDefaults()
	var overrides []layout.Option
	if v := firstNonZero(opts.fontSize, env.FontSize); v > 0 {
		overrides = append(overrides, layout.WithFontSize(v))
	}
	if v := firstNonZero(opts.dpi, env.DPI); v > 0 {
		overrides = append(overrides, layout.WithDPI(v))
	}
	if v := firstNonEmpty(opts.fontStyle, env.FontStyle); v != "" {
		overrides = append(overrides, layout.WithFontStyle(v))
	}
	style := layout.NewStyle(overrides...)

	params := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, style)
	labelDegree := opts.labelDegree
	if labelDegree == 0 {
		labelDegree = pipeline.DefaultLabelMinDegree
	}
	dot := render.ToDOT(g, params, render.Options{LabelMinDegree: labelDegree, Style: style})

	base := renderBasePath(opts.output, input)
	for _, format := range formats {
		var data []byte
		switch format {
		case pipeline.FormatDOT:
			data = []byte(dot)
		case pipeline.FormatSVG:
			data, err = render.RenderSVG(cmd.Context(), dot)
		case pipeline.FormatPNG:
			data, err = render.RenderPNG(cmd.Context(), dot)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := base + "." + format
		if opts.output != "" && len(formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	printSuccess("Rendered %d format(s)", len(formats))
	return nil
}

func firstNonZero(vs ...int) int {
	for _, v := range vs {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

// renderBasePath derives the base output path: the output flag with any
// known format extension stripped, or the input path minus its extension.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
