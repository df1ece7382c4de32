package datatable

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// WriteCSV writes records as comma-separated text: a header line with the
// column labels, then one line per record. Cells hold the raw column value,
// never the rendered one. A string cell containing a comma is wrapped in
// double quotes; embedded quotes and newlines are written as-is so files stay
// byte-compatible with earlier exports. Lines are separated by "\n" and the
// last line has no terminator.
func WriteCSV(w io.Writer, columns []Column, records []Record) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(Labels(columns), ","))
	for _, r := range records {
		bw.WriteByte('\n')
		for i, c := range columns {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(csvCell(c.Value(r)))
		}
	}

	return bw.Flush()
}

// FormatCSV is WriteCSV into a string.
func FormatCSV(columns []Column, records []Record) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, columns, records)
	return sb.String()
}

func csvCell(v any) string {
	if s, ok := v.(string); ok {
		if strings.Contains(s, ",") {
			return `"` + s + `"`
		}
		return s
	}
	return Stringify(v)
}

// ExportFilename returns "{title}_{yyyy-mm-dd}.csv" for the UTC date of now.
// An empty title becomes "export".
func ExportFilename(title string, now time.Time) string {
	if title == "" {
		title = "export"
	}
	return title + "_" + now.UTC().Format(time.DateOnly) + ".csv"
}
