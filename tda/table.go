package tda

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Missing is the 2DA placeholder for an empty cell.
const Missing = "****"

var (
	ErrNoRows   = errors.New("no rows")
	ErrNoHeader = errors.New("no header row")
)

// table is a classified sheet: a header row plus data rows already padded,
// truncated and normalised to the header's column count.
type table struct {
	header []string
	rows   [][]string
}

// parse reads the raw CSV text and classifies the rows. Comment rows (first
// cell starting with //) and blank rows are discarded before classification;
// the first surviving row is the header and everything after it is data.
func parse(text string) (*table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV (%v)", err)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}

	var header []string
	rows := [][]string{}

	for _, record := range records {
		if blank(record) || comment(record) {
			continue
		}

		trimmed := make([]string, len(record))
		for i, cell := range record {
			trimmed[i] = strings.TrimSpace(cell)
		}

		if header == nil {
			header = trimmed
		} else {
			rows = append(rows, normalise(trimmed, len(header)))
		}
	}

	if header == nil {
		return nil, ErrNoHeader
	}

	return &table{header: header, rows: rows}, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func comment(record []string) bool {
	return len(record) > 0 && strings.HasPrefix(strings.TrimSpace(record[0]), "//")
}

// normalise pads/truncates a data row to 'columns' cells, substitutes the
// **** placeholder for empty cells and replaces embedded whitespace with '_'
// (2DA cells cannot contain spaces).
func normalise(row []string, columns int) []string {
	cells := make([]string, columns)

	for i := 0; i < columns; i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}

		if cell == "" {
			cells[i] = Missing
		} else {
			cells[i] = strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return '_'
				}
				return r
			}, cell)
		}
	}

	return cells
}
