package pipeline

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the TOML file representation of pipeline options. Flags set on
// the command line override values loaded from the file.
type Config struct {
	Input    string   `toml:"input"`
	Diseases []string `toml:"diseases"`
	OutDir   string   `toml:"out_dir"`
	Formats  []string `toml:"formats"`

	PPI struct {
		Aliases       string `toml:"aliases"`
		Interactions  string `toml:"interactions"`
		MinConfidence int    `toml:"min_confidence"`
		MinDegree     int    `toml:"min_degree"`
	} `toml:"ppi"`

	Scoring struct {
		TopPercent float64 `toml:"top_percent"`
		TopN       int     `toml:"top_n"`
	} `toml:"scoring"`

	Render struct {
		FontSize          int    `toml:"font_size"`
		FontStyle         string `toml:"font_style"`
		DPI               int    `toml:"dpi"`
		LabelMinDegree    int    `toml:"label_min_degree"`
		SimplifyThreshold int    `toml:"simplify_threshold"`
	} `toml:"render"`
}

// LoadConfig reads a TOML config file. Unknown keys are an error so typos
// surface instead of silently falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, nil
}

// Options converts the file representation into pipeline options.
// Zero-valued fields stay zero and pick up defaults in
// [Options.ValidateAndSetDefaults].
func (c *Config) Options() Options {
	return Options{
		Input:             c.Input,
		Diseases:          c.Diseases,
		OutDir:            c.OutDir,
		Formats:           c.Formats,
		PPIAliases:        c.PPI.Aliases,
		PPIInteractions:   c.PPI.Interactions,
		PPIMinConfidence:  c.PPI.MinConfidence,
		PPIMinDegree:      c.PPI.MinDegree,
		TopPercent:        c.Scoring.TopPercent,
		TopN:              c.Scoring.TopN,
		FontSize:          c.Render.FontSize,
		FontStyle:         c.Render.FontStyle,
		DPI:               c.Render.DPI,
		LabelMinDegree:    c.Render.LabelMinDegree,
		SimplifyThreshold: c.Render.SimplifyThreshold,
	}
}
