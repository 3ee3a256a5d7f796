package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "herbnet.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
input = "data/compounds.csv"
diseases = ["EFO_0000270", "rheumatoid arthritis"]
formats = ["svg", "png"]
out_dir = "results"

[ppi]
aliases = "string/aliases.tsv"
interactions = "string/links.tsv"
min_confidence = 700

[scoring]
top_percent = 0.05
top_n = 15

[render]
font_size = 12
dpi = 150
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	opts := cfg.Options()

	if opts.Input != "data/compounds.csv" {
		t.Errorf("input = %q", opts.Input)
	}
	if len(opts.Diseases) != 2 || opts.Diseases[1] != "rheumatoid arthritis" {
		t.Errorf("diseases = %v", opts.Diseases)
	}
	if opts.PPIMinConfidence != 700 {
		t.Errorf("min confidence = %d", opts.PPIMinConfidence)
	}
	if opts.TopPercent != 0.05 {
		t.Errorf("top percent = %v", opts.TopPercent)
	}
	if opts.FontSize != 12 || opts.DPI != 150 {
		t.Errorf("render: font %d dpi %d", opts.FontSize, opts.DPI)
	}

	// Unset fields pick up defaults during validation.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.PPIMinDegree != DefaultPPIMinDegree {
		t.Errorf("min degree should default, got %d", opts.PPIMinDegree)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
input = "data.csv"
disaeses = ["asthma"]
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("misspelled key should be rejected")
	}
	if !strings.Contains(err.Error(), "disaeses") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing file should error")
	}
}
