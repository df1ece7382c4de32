package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ledgerline/mfin/internal/datatable"
)

// PrintJSONResults writes the given records as a JSON array of objects,
// keyed by column key and holding raw (unrendered) values.
func PrintJSONResults(w io.Writer, columns []datatable.Column, records []datatable.Record) error {
	results := make([]map[string]any, len(records))

	for i, r := range records {
		obj := make(map[string]any, len(columns))
		for _, c := range columns {
			obj[c.Key] = c.Value(r)
		}
		results[i] = obj
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// PrintRaw writes rendered cells as tab-separated lines (for piping).
func PrintRaw(w io.Writer, rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

// PrintPlainTable prints an aligned table for non-TTY output.
// Shows full content without truncation.
func PrintPlainTable(w io.Writer, colNames []string, rows [][]string) {
	if len(colNames) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	colWidths := make([]int, len(colNames))
	for i, name := range colNames {
		colWidths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], runewidth.StringWidth(val))
			}
		}
	}

	writeLine := func(cells []string) {
		for i, val := range cells {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, pad(val, colWidths[i]))
		}
		fmt.Fprintln(w)
	}

	writeLine(colNames)

	seps := make([]string, len(colWidths))
	for i, cw := range colWidths {
		seps[i] = strings.Repeat("─", cw)
	}
	writeLine(seps)

	for _, row := range rows {
		writeLine(row)
	}
}

// pad adds spaces to reach the desired display width (no truncation).
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Truncate shortens a string to fit width, adding "..." if needed.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width > 3 {
		return runewidth.Truncate(s, width, "...")
	}
	return runewidth.Truncate(s, width, "")
}

// PadOrTruncate pads or truncates to exact display width (for TUI table).
func PadOrTruncate(s string, width int) string {
	return pad(Truncate(s, width), width)
}
