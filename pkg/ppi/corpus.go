package ppi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Interaction is one raw record from a bulk interaction corpus: two corpus
// identifiers and a confidence score on the 0-1000 scale.
type Interaction struct {
	A, B       string
	Confidence int
}

// Alias maps one local identifier (e.g. a gene symbol) to a corpus
// identifier.
type Alias struct {
	Local  string
	Corpus string
}

// ReadAliases parses a two-column (local, corpus) alias table. Columns are
// tab- or whitespace-separated; a leading header row and comment lines
// starting with '#' are skipped. Rows with missing fields are dropped -
// the corpus is external and unvalidated.
func ReadAliases(r io.Reader) ([]Alias, error) {
	var out []Alias
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if first {
			first = false
			if !looksLikeData(fields[1]) && strings.EqualFold(fields[0], "local") {
				continue // header
			}
		}
		out = append(out, Alias{Local: fields[0], Corpus: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	return out, nil
}

// ReadInteractions parses a bulk interaction edge table with three columns:
// endpoint A, endpoint B, combined confidence score (0-1000). Records with
// missing endpoints, empty strings or unparseable scores are discarded.
func ReadInteractions(r io.Reader) ([]Interaction, error) {
	var out []Interaction
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if fields[0] == "" || fields[1] == "" {
			continue
		}
		score, err := strconv.Atoi(fields[2])
		if err != nil {
			continue // header row or malformed score
		}
		out = append(out, Interaction{A: fields[0], B: fields[1], Confidence: score})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read interactions: %w", err)
	}
	return out, nil
}

// ReadInteractionsFile reads a bulk corpus file from disk.
func ReadInteractionsFile(path string) ([]Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	return ReadInteractions(f)
}

// ReadAliasesFile reads an alias table from disk.
func ReadAliasesFile(path string) ([]Alias, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open aliases %s: %w", path, err)
	}
	defer f.Close()
	return ReadAliases(f)
}

func looksLikeData(s string) bool {
	return strings.ContainsAny(s, "0123456789.")
}
