package overlap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDumps persists an analysis to dir as flat identifier lists, one file
// per named input set plus "intersection_all.txt" and "predicted_only.txt".
// Files are written with a trailing newline per identifier and nothing else,
// so identical inputs always produce byte-identical dumps.
func WriteDumps(res *Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, s := range res.Sets {
		if err := writeList(filepath.Join(dir, fileName(s.Name)), s.Items()); err != nil {
			return err
		}
	}
	if err := writeList(filepath.Join(dir, "intersection_all.txt"), res.Intersection.Items()); err != nil {
		return err
	}
	return writeList(filepath.Join(dir, "predicted_only.txt"), res.PredictedOnly.Items())
}

func writeList(path string, ids []string) error {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fileName turns a set name into a safe flat-list file name.
func fileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.ToLower(clean) + ".txt"
}
