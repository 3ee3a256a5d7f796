// Package cli implements the herbnet command-line interface.
//
// This package provides commands for running the network pharmacology
// pipeline, fetching disease-target associations, comparing target sets,
// re-rendering exported graphs, serving the pipeline over HTTP and managing
// the local cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Execute the full pipeline on a herb,molecule,target table
//   - fetch: Look up disease-associated targets from Open Targets
//   - overlap: Compare an exported graph's targets against disease sets
//   - render: Re-render an exported graph with different styling
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the local response and artifact cache
//
// # Example
//
//	import "github.com/phytolab/herbnet/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phytolab/herbnet/pkg/buildinfo"
	"github.com/phytolab/herbnet/pkg/cache"
	"github.com/phytolab/herbnet/pkg/opentargets"
	"github.com/phytolab/herbnet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "herbnet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "herbnet",
		Short:        "Herbnet maps herbal compounds onto disease target networks",
		Long:         `Herbnet builds herb-molecule-target interaction networks, scores hub targets, overlays disease associations and protein interaction data, and renders the result for network pharmacology analysis.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.overlapCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(backend, nil, c.Logger)
	if redisURL != "" {
		// A Redis instance may be shared with other applications; keep our
		// keys in their own namespace.
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, appName+":")
	}
	return runner, nil
}

// newFetcher creates a disease client backed by the CLI cache.
func (c *CLI) newFetcher(ctx context.Context, noCache bool) *opentargets.Client {
	backend, err := newCache(ctx, noCache, "")
	if err != nil {
		backend = cache.NewNullCache()
	}
	return opentargets.NewClient(backend, cache.TTLDisease)
}

func newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/herbnet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseList parses a comma-separated flag value into a slice.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	formats := parseList(s)
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}
