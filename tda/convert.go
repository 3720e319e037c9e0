package tda

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Options modifies the formatting of a converted table.
type Options struct {
	// ForcedWidths maps column names to a minimum column width. Columns
	// without an entry size to their content.
	ForcedWidths map[string]int

	// Now supplies the timestamp for the 'Last sync' comment line. Defaults
	// to time.Now.
	Now func() time.Time
}

// Convert renders CSV text as a 2DA V2.0 table. The first non-blank,
// non-comment row of the CSV supplies the column names; every row after it
// becomes a numbered data row. Apart from the timestamp comment the output
// is deterministic for identical input and options.
func Convert(text string, name string, opts Options) (string, error) {
	t, err := parse(text)
	if err != nil {
		return "", err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return t.render(name, opts.ForcedWidths, now()), nil
}

func (t *table) render(name string, forced map[string]int, timestamp time.Time) string {
	widths := t.widths(forced)
	ixwidth := indexWidth(len(t.rows))

	var b strings.Builder

	b.WriteString("2DA V2.0\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "// Auto-generated by sheets2da  |  Source: %s\n", name)
	fmt.Fprintf(&b, "// Last sync: %s\n", timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("// DO NOT EDIT MANUALLY - edit the Google Sheet and re-sync\n")
	b.WriteString("\n")

	line := make([]string, 0, len(t.header)+1)

	line = append(line, strings.Repeat(" ", ixwidth))
	for i, column := range t.header {
		line = append(line, pad(column, widths[i]))
	}
	b.WriteString(strings.TrimRight(strings.Join(line, ""), " "))
	b.WriteString("\n")

	for ix, row := range t.rows {
		line = line[:0]
		line = append(line, pad(strconv.Itoa(ix), ixwidth))
		for i, cell := range row {
			line = append(line, pad(cell, widths[i]))
		}
		b.WriteString(strings.TrimRight(strings.Join(line, ""), " "))
		b.WriteString("\n")
	}

	return b.String()
}

// widths computes the per-column widths: the longest cell in the column
// (header label included) or the forced minimum, whichever is wider, plus
// two characters of padding. All rows are scanned before anything is
// emitted - widths cannot be decided per-row.
func (t *table) widths(forced map[string]int) []int {
	widths := make([]int, len(t.header))

	for i, column := range t.header {
		w := len(column)
		for _, row := range t.rows {
			if len(row[i]) > w {
				w = len(row[i])
			}
		}

		if minimum := forced[column]; minimum > w {
			w = minimum
		}

		widths[i] = w + 2
	}

	return widths
}

// indexWidth sizes the leading row number pseudo-column.
func indexWidth(rows int) int {
	w := len(strconv.Itoa(rows-1)) + 2
	if w < 6 {
		w = 6
	}

	return w
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
