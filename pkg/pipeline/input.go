package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phytolab/herbnet/pkg/graph"
)

// ReadRecords reads herb,molecule,target interaction rows from a CSV file.
// A header row is detected by its column names and skipped. Rows need at
// least three columns; extra columns are ignored.
func ReadRecords(path string) ([]graph.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRecords(f)
}

func readRecords(r io.Reader) ([]graph.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column counts validated per row below
	cr.TrimLeadingSpace = true

	var records []graph.Record
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("input line %d: expected at least 3 columns, got %d", line, len(row))
		}
		records = append(records, graph.Record{
			Source:       row[0],
			Intermediate: row[1],
			Target:       row[2],
		})
	}
	return records, nil
}

func isHeader(row []string) bool {
	if len(row) < 3 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "herb" || first == "source"
}
