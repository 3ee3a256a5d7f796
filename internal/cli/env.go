package cli

import (
	"os"
	"strconv"
)

// Environment variables recognized as option defaults. They fill in values
// the user did not set via flags or config file, and are resolved exactly
// once, here at the CLI boundary; nothing below internal/cli reads the
// environment.
const (
	envFontSize      = "TCMNP_FONT_SIZE"
	envFontStyle     = "TCMNP_FONT_STYLE"
	envDPI           = "TCMNP_DPI"
	envPPIConfidence = "TCMNP_PPI_CONFIDENCE"
	envPPIDegree     = "TCMNP_PPI_DEGREE_FILTER"
	envDiseaseIDs    = "TCMNP_DISEASE_IDS"
)

// envOptions captures the environment-derived option defaults.
type envOptions struct {
	FontSize      int
	FontStyle     string
	DPI           int
	PPIConfidence int
	PPIDegree     int
	Diseases      []string
}

// envDefaults reads the recognized environment variables. Unset and
// unparseable values are left zero and fall through to built-in defaults.
func envDefaults() envOptions {
	return envOptions{
		FontSize:      envInt(envFontSize),
		FontStyle:     os.Getenv(envFontStyle),
		DPI:           envInt(envDPI),
		PPIConfidence: envInt(envPPIConfidence),
		PPIDegree:     envInt(envPPIDegree),
		Diseases:      parseList(os.Getenv(envDiseaseIDs)),
	}
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
