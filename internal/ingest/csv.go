// Package ingest reads raw minutiae tables from uploaded files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadTable parses a headerless CSV of minutiae rows. Rows may have
// varying widths; cells are returned as raw strings, with numeric
// coercion left to point normalization. Blank lines are skipped.
func ReadTable(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse minutiae table: %w", err)
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		table = append(table, row)
	}
	return table, nil
}

// ReadTableFile reads a minutiae table from a CSV file on disk.
func ReadTableFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open minutiae file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadTable(f)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
