// Package pipeline provides the core analysis pipeline for Herbnet.
//
// This package implements the complete build → resolve → score → overlap →
// layout → render → export pipeline shared by the CLI and the HTTP server.
// By centralizing this logic, every entry point behaves identically.
//
// # Architecture
//
// The pipeline consists of sequential stages over plain data:
//
//  1. Input: read herb/molecule/target interaction records
//  2. Fetch: disease-target associations and the protein interaction layer
//     (these two are independent and run concurrently)
//  3. Build: assemble the typed provenance-preserving multigraph
//  4. Score: composite centrality hub scoring
//  5. Overlap: predicted vs disease target set analysis
//  6. Layout + Render: density-aware scaling and Graphviz output
//  7. Export: edge list and attribute tables
//
// A stage failure is captured at the stage boundary: the run continues
// without that stage's output and the final [Manifest] records per-module
// status. Only invalid options, unreadable input and an empty graph abort
// the whole run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "tcmnp_input.csv",
//	    Diseases: []string{"EFO_0000305"},
//	    Formats:  []string{"svg"},
//	    OutDir:   "outputs",
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultPPIMinConfidence is the minimum interaction confidence on the
	// 0-1000 corpus scale.
	DefaultPPIMinConfidence = 400

	// DefaultPPIMinDegree removes peripheral proteins below this combined
	// degree from the interaction layer.
	DefaultPPIMinDegree = 2

	// DefaultTopPercent marks the top decile of hub scores as hubs.
	DefaultTopPercent = 0.10

	// DefaultTopN bounds ranked summaries (top hubs in logs and manifest).
	DefaultTopN = 10

	// DefaultLabelMinDegree is the minimum degree for node labels on
	// small graphs.
	DefaultLabelMinDegree = 2

	// DefaultOutDir receives all run artifacts.
	DefaultOutDir = "outputs"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidFontStyles is the set of supported label font styles.
var ValidFontStyles = map[string]bool{
	"normal": true,
	"bold":   true,
	"italic": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Input    string   `json:"input"`              // Path to the herb,molecule,target CSV
	Diseases []string `json:"diseases,omitempty"` // Disease ids or search terms

	// Protein interaction layer (optional; skipped when paths are empty)
	PPIAliases       string `json:"ppi_aliases,omitempty"`      // Path to the alias mapping file
	PPIInteractions  string `json:"ppi_interactions,omitempty"` // Path to the interaction corpus
	PPIMinConfidence int    `json:"ppi_min_confidence,omitempty"`
	PPIMinDegree     int    `json:"ppi_min_degree,omitempty"`

	// Scoring options
	TopPercent float64 `json:"top_percent,omitempty"` // Hub cut as a fraction of nodes
	TopN       int     `json:"top_n,omitempty"`       // Entries in ranked summaries

	// Layout and render options
	SimplifyThreshold int      `json:"simplify_threshold,omitempty"` // Node count triggering render simplification
	LabelMinDegree    int      `json:"label_min_degree,omitempty"`
	Formats           []string `json:"formats,omitempty"`
	FontSize          int      `json:"font_size,omitempty"`
	FontStyle         string   `json:"font_style,omitempty"`
	DPI               int      `json:"dpi,omitempty"`

	// Output options
	OutDir string `json:"out_dir,omitempty"`

	// Refresh bypasses cached upstream responses.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run. Nil falls back
	// to the runner's own logger inside Execute.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if (o.PPIAliases == "") != (o.PPIInteractions == "") {
		return fmt.Errorf("ppi_aliases and ppi_interactions must be set together")
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.FontStyle != "" && !ValidFontStyles[o.FontStyle] {
		return fmt.Errorf("invalid font_style: %q (must be one of: normal, bold, italic)", o.FontStyle)
	}
	if o.TopPercent < 0 || o.TopPercent > 1 {
		return fmt.Errorf("top_percent must be in (0, 1], got %v", o.TopPercent)
	}

	if o.PPIMinConfidence == 0 {
		o.PPIMinConfidence = DefaultPPIMinConfidence
	}
	if o.PPIMinDegree == 0 {
		o.PPIMinDegree = DefaultPPIMinDegree
	}
	if o.TopPercent == 0 {
		o.TopPercent = DefaultTopPercent
	}
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.LabelMinDegree == 0 {
		o.LabelMinDegree = DefaultLabelMinDegree
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.FontStyle == "" {
		o.FontStyle = "bold"
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Manifest - Per-Module Run Outcome
// =============================================================================

// Status is the outcome of one pipeline module.
type Status string

// Module statuses.
const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ModuleResult records the outcome of one pipeline module.
type ModuleResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Manifest summarizes a pipeline run: which modules succeeded, partially
// succeeded, failed or were skipped. A completed run always has a manifest,
// never a silent gap.
type Manifest struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Modules    []ModuleResult `json:"modules"`
	TopHubs    []string       `json:"top_hubs,omitempty"`
}

// Module returns the result for the named module, or nil.
func (m *Manifest) Module(name string) *ModuleResult {
	for i := range m.Modules {
		if m.Modules[i].Name == name {
			return &m.Modules[i]
		}
	}
	return nil
}

func (m *Manifest) record(name string, start time.Time, status Status, msg string) {
	m.Modules = append(m.Modules, ModuleResult{
		Name:     name,
		Status:   status,
		Message:  msg,
		Duration: time.Since(start),
	})
}
