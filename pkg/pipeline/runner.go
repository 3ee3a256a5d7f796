package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phytolab/herbnet/pkg/cache"
	"github.com/phytolab/herbnet/pkg/centrality"
	"github.com/phytolab/herbnet/pkg/errors"
	"github.com/phytolab/herbnet/pkg/export"
	"github.com/phytolab/herbnet/pkg/graph"
	"github.com/phytolab/herbnet/pkg/layout"
	"github.com/phytolab/herbnet/pkg/opentargets"
	"github.com/phytolab/herbnet/pkg/overlap"
	"github.com/phytolab/herbnet/pkg/ppi"
	"github.com/phytolab/herbnet/pkg/render"
)

// DiseaseFetcher resolves a disease identifier to its associated targets.
// [opentargets.Client] is the production implementation.
type DiseaseFetcher interface {
	FetchDisease(ctx context.Context, id string, refresh bool) (*opentargets.Disease, error)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the analytical interaction graph. Set operations and
	// exports run against this graph.
	Graph *graph.Graph

	// Rendering is the graph actually drawn; equals Graph unless the
	// simplification pass ran.
	Rendering *graph.Graph

	// Combined is Graph merged with the protein interaction layer, when
	// one was resolved. Nil otherwise.
	Combined *graph.Graph

	// PPI is the resolved protein interaction layer, nil when skipped
	// or failed.
	PPI *ppi.Result

	// Diseases are the successfully fetched disease target lists.
	Diseases []*opentargets.Disease

	// Scores is the full hub score table, descending.
	Scores []centrality.Score

	// Overlap is the target set analysis, nil when no disease set was
	// available.
	Overlap *overlap.Result

	// Params are the layout parameters of the main network render.
	Params layout.Params

	// Artifacts contains rendered outputs keyed by file name.
	Artifacts map[string][]byte

	// Manifest records per-module outcomes.
	Manifest Manifest

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	FetchTime  time.Duration
	BuildTime  time.Duration
	ScoreTime  time.Duration
	RenderTime time.Duration
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating orchestration logic.
//
// The Runner is stateless except for the cache, fetcher and logger.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher DiseaseFetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache backend and disease
// fetcher. If cache is nil, a NullCache is used (caching disabled). If
// fetcher is nil, an Open Targets client backed by the same cache is used.
func NewRunner(c cache.Cache, fetcher DiseaseFetcher, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if fetcher == nil {
		fetcher = opentargets.NewClient(c, cache.TTLDisease)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Fetcher: fetcher,
		Logger:  logger,
	}
}

// Execute runs the complete pipeline. Module-local failures (a disease that
// cannot be fetched, an interaction corpus that filters down to nothing, a
// render error) are captured in the manifest and the run continues; only
// invalid options, unreadable input and an empty graph abort the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		Manifest: Manifest{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
	}
	m := &result.Manifest

	// Stage 1: input
	start := time.Now()
	rows, err := ReadRecords(opts.Input)
	if err != nil {
		m.record("input", start, StatusFailed, err.Error())
		r.finishManifest(opts, m)
		return nil, fmt.Errorf("read input: %w", err)
	}
	m.record("input", start, StatusSuccess, fmt.Sprintf("%d rows", len(rows)))
	targets := targetIDs(graph.CleanRecords(rows))

	// Stage 2: upstream fetches. Disease associations and the interaction
	// corpus are independent, so they run concurrently.
	fetchStart := time.Now()
	var (
		diseaseErrs []string
		ppiErr      error
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for _, id := range opts.Diseases {
			d, err := r.Fetcher.FetchDisease(egCtx, id, opts.Refresh)
			if err != nil {
				ferr := errors.Wrap(errors.ErrCodeExternalFetch, err, "disease %s", id)
				diseaseErrs = append(diseaseErrs, ferr.Error())
				opts.Logger.Warn("disease fetch failed", "id", id, "err", err)
				continue
			}
			opts.Logger.Info("fetched disease targets",
				"id", d.ID, "name", d.Name, "targets", len(d.Targets))
			result.Diseases = append(result.Diseases, d)
		}
		return nil
	})
	eg.Go(func() error {
		if opts.PPIAliases == "" {
			return nil
		}
		result.PPI, ppiErr = resolvePPI(targets, opts)
		if ppiErr != nil {
			opts.Logger.Warn("interaction layer unavailable", "err", ppiErr)
		}
		return nil
	})
	_ = eg.Wait()
	result.Stats.FetchTime = time.Since(fetchStart)
	ds, dmsg := diseaseStatus(opts, result, diseaseErrs)
	m.record("diseases", fetchStart, ds, dmsg)
	ps, pmsg := ppiStatus(opts, result, ppiErr)
	m.record("ppi", fetchStart, ps, pmsg)

	// Stage 3: build
	buildStart := time.Now()
	diseaseTargets := make(map[string]bool)
	for _, d := range result.Diseases {
		for _, t := range d.Targets {
			diseaseTargets[t.Symbol] = true
		}
	}
	bres, err := graph.Build(rows, graph.BuildOptions{
		DiseaseTargets:    diseaseTargets,
		SimplifyThreshold: opts.SimplifyThreshold,
	})
	if err != nil {
		m.record("build", buildStart, StatusFailed, err.Error())
		r.finishManifest(opts, m)
		return nil, fmt.Errorf("build graph: %w", err)
	}
	for _, d := range result.Diseases {
		attachDisease(bres.Graph, d)
		if bres.Rendering != bres.Graph {
			attachDisease(bres.Rendering, d)
		}
	}
	result.Graph = bres.Graph
	result.Rendering = bres.Rendering
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = bres.Graph.NodeCount()
	result.Stats.EdgeCount = bres.Graph.EdgeCount()
	buildStatus, buildMsg := StatusSuccess, fmt.Sprintf("%d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount)
	if len(bres.Warnings) > 0 {
		buildStatus = StatusPartial
		buildMsg = fmt.Sprintf("%s; %d unclassified nodes", buildMsg, len(bres.Warnings))
		for _, w := range bres.Warnings {
			opts.Logger.Warn("data quality", "warning", errors.UserMessage(w))
		}
	}
	m.record("build", buildStart, buildStatus, buildMsg)
	opts.Logger.Info("built graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	if result.PPI != nil {
		result.Combined = bres.Graph.Clone()
		result.Combined.Merge(result.PPI.Graph())
	}

	// Stage 4: score
	scoreStart := time.Now()
	result.Scores = centrality.Compute(bres.Graph.Projection())
	centrality.MarkTopPercent(result.Scores, opts.TopPercent)
	centrality.Apply(bres.Graph, result.Scores)
	if bres.Rendering != bres.Graph {
		centrality.Apply(bres.Rendering, result.Scores)
	}
	if result.Combined != nil {
		centrality.Apply(result.Combined, result.Scores)
	}
	m.TopHubs = topHubs(result.Scores, opts.TopN)
	result.Stats.ScoreTime = time.Since(scoreStart)
	m.record("score", scoreStart, StatusSuccess, fmt.Sprintf("%d nodes scored", len(result.Scores)))

	// Stage 5: overlap
	overlapStart := time.Now()
	switch {
	case len(result.Diseases) == 0:
		m.record("overlap", overlapStart, StatusSkipped, "no disease target sets")
	default:
		status, msg := r.runOverlap(result, targets, opts)
		m.record("overlap", overlapStart, status, msg)
	}

	// Stage 6: layout + render
	renderStart := time.Now()
	style := renderStyle(opts)
	result.Params = layout.Scale(result.Rendering.NodeCount(), result.Rendering.EdgeCount(), layout.ModeNetwork, style)
	status, msg := r.renderAll(ctx, result, style, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	m.record("render", renderStart, status, msg)

	// Stage 7: export
	exportStart := time.Now()
	exportGraph := result.Graph
	if result.Combined != nil {
		exportGraph = result.Combined
	}
	if err := exportAll(opts.OutDir, exportGraph); err != nil {
		m.record("export", exportStart, StatusFailed, err.Error())
	} else {
		m.record("export", exportStart, StatusSuccess, "")
	}

	r.finishManifest(opts, m)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// runOverlap analyzes predicted vs disease target sets and writes the flat
// dump files.
func (r *Runner) runOverlap(result *Result, predicted []string, opts Options) (Status, string) {
	sets := []overlap.Set{overlap.NewSet("predicted", predicted)}
	for _, d := range result.Diseases {
		name := d.Name
		if name == "" {
			name = d.ID
		}
		symbols := make([]string, 0, len(d.Targets))
		for _, t := range d.Targets {
			symbols = append(symbols, t.Symbol)
		}
		sets = append(sets, overlap.NewSet(name, symbols))
	}

	res, err := overlap.Analyze(sets...)
	if err != nil {
		return StatusFailed, err.Error()
	}
	result.Overlap = res

	msg := fmt.Sprintf("%d sets, %d in common, strategy %s", len(sets), res.Intersection.Len(), res.Strategy)
	if err := overlap.WriteDumps(res, filepath.Join(opts.OutDir, "overlap")); err != nil {
		return StatusPartial, fmt.Sprintf("%s; dump failed: %v", msg, err)
	}
	return StatusSuccess, msg
}

// renderAll renders the main network and, when present, the disjoint
// protein interaction subgraph, writing every artifact into OutDir.
func (r *Runner) renderAll(ctx context.Context, result *Result, style layout.Style, opts Options) (Status, string) {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return StatusFailed, err.Error()
	}

	graphs := []struct {
		name string
		g    *graph.Graph
	}{{"network", result.Rendering}}
	if result.PPI != nil {
		graphs = append(graphs, struct {
			name string
			g    *graph.Graph
		}{"ppi", result.PPI.Graph()})
	}

	var failures []string
	for _, spec := range graphs {
		if err := r.renderGraph(ctx, spec.name, spec.g, style, opts, result.Artifacts); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", spec.name, err))
		}
	}
	for name, data := range result.Artifacts {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			failures = append(failures, fmt.Sprintf("write %s: %v", name, err))
		}
	}

	switch {
	case len(failures) == 0:
		return StatusSuccess, fmt.Sprintf("%d artifacts", len(result.Artifacts))
	case len(result.Artifacts) > 0:
		return StatusPartial, fmt.Sprintf("%d artifacts; %v", len(result.Artifacts), failures)
	default:
		return StatusFailed, fmt.Sprintf("%v", failures)
	}
}

// renderGraph renders one graph into all requested formats. Rasterized
// formats are cached by graph content hash.
func (r *Runner) renderGraph(ctx context.Context, name string, g *graph.Graph, style layout.Style, opts Options, artifacts map[string][]byte) error {
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, style)
	dot := render.ToDOT(g, p, render.Options{LabelMinDegree: opts.LabelMinDegree, Style: style})

	var graphHash string
	if data, err := graph.Marshal(g); err == nil {
		graphHash = cache.Hash(data)
	}

	for _, format := range opts.Formats {
		if format == FormatDOT {
			artifacts[name+".dot"] = []byte(dot)
			continue
		}

		key := r.Keyer.ArtifactKey(graphHash, cache.ArtifactKeyOpts{
			Format: format,
			Mode:   name,
			Width:  int(p.Width),
			Height: int(p.Height),
		})
		if !opts.Refresh && graphHash != "" {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[name+"."+format] = data
				continue
			}
		}

		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		}
		if err != nil {
			return err
		}
		artifacts[name+"."+format] = data
		if graphHash != "" {
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		}
	}
	return nil
}

// exportAll writes the edge list, attribute tables and the canonical JSON
// graph document.
func exportAll(dir string, g *graph.Graph) error {
	if err := export.WriteFiles(dir, g); err != nil {
		return err
	}
	return graph.WriteFile(g, filepath.Join(dir, "graph.json"))
}

// finishManifest stamps the end time and writes manifest.json. Writing the
// manifest is best-effort: a run that produced results should not fail
// because the summary could not be written.
func (r *Runner) finishManifest(opts Options, m *Manifest) {
	m.FinishedAt = time.Now().UTC()
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		opts.Logger.Warn("manifest not written", "err", err)
		return
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(opts.OutDir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		opts.Logger.Warn("manifest not written", "err", err)
	}
}

// attachDisease adds a disease sink node linked to every disease target of
// d that is present in the graph, weighted by association score.
func attachDisease(g *graph.Graph, d *opentargets.Disease) {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	for _, t := range d.Targets {
		n := g.Node(t.Symbol)
		if n == nil || n.Type != graph.TypeDiseaseTarget {
			continue
		}
		_ = g.AddNode(graph.Node{ID: name, Type: graph.TypeDisease})
		_ = g.AddEdge(graph.Edge{From: name, To: n.ID, Type: graph.EdgeAssociates, Weight: t.Score})
	}
}

// resolvePPI reads the alias and interaction files and resolves the
// filtered interaction layer for the given local identifiers.
func resolvePPI(localIDs []string, opts Options) (*ppi.Result, error) {
	aliases, err := ppi.ReadAliasesFile(opts.PPIAliases)
	if err != nil {
		return nil, err
	}
	corpus, err := ppi.ReadInteractionsFile(opts.PPIInteractions)
	if err != nil {
		return nil, err
	}
	return ppi.Resolve(localIDs, aliases, corpus, ppi.Options{
		MinConfidence: opts.PPIMinConfidence,
		MinDegree:     opts.PPIMinDegree,
	})
}

// targetIDs returns the unique target identifiers from cleaned rows, in
// first-seen order. Feeding it the same cleaned records the builder uses
// keeps the predicted overlap set aligned with the graph: a row dropped
// during cleaning contributes no target here either.
func targetIDs(records []graph.Record) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		ids = append(ids, r.Target)
	}
	return ids
}

func topHubs(scores []centrality.Score, n int) []string {
	var hubs []string
	for _, s := range scores {
		if !s.IsHub || len(hubs) >= n {
			break
		}
		hubs = append(hubs, s.ID)
	}
	return hubs
}

func diseaseStatus(opts Options, result *Result, errs []string) (Status, string) {
	switch {
	case len(opts.Diseases) == 0:
		return StatusSkipped, "no diseases requested"
	case len(errs) == 0:
		return StatusSuccess, fmt.Sprintf("%d diseases fetched", len(result.Diseases))
	case len(result.Diseases) > 0:
		return StatusPartial, fmt.Sprintf("%d of %d fetched; %v", len(result.Diseases), len(opts.Diseases), errs)
	default:
		return StatusFailed, fmt.Sprintf("%v", errs)
	}
}

func ppiStatus(opts Options, result *Result, err error) (Status, string) {
	switch {
	case opts.PPIAliases == "":
		return StatusSkipped, "no interaction corpus configured"
	case err != nil:
		return StatusFailed, err.Error()
	default:
		return StatusSuccess, fmt.Sprintf("%d edges, %d proteins resolved", len(result.PPI.Edges), len(result.PPI.Resolved))
	}
}

func renderStyle(opts Options) layout.Style {
	var overrides []layout.Option
	if opts.FontSize > 0 {
		overrides = append(overrides, layout.WithFontSize(opts.FontSize))
	}
	if opts.FontStyle != "" {
		overrides = append(overrides, layout.WithFontStyle(opts.FontStyle))
	}
	if opts.DPI > 0 {
		overrides = append(overrides, layout.WithDPI(opts.DPI))
	}
	return layout.NewStyle(overrides...)
}
