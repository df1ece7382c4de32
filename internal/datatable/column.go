package datatable

// Column describes one table column.
type Column struct {
	// Key addresses the record property shown in this column. Keys must be
	// unique within a table.
	Key string
	// Label is the header text, also used as the CSV header.
	Label string
	// Sortable enables click-to-sort on this column.
	Sortable bool
	// Render optionally formats the cell for display. CSV export ignores it.
	Render func(value any, row Record) string
	// Accessor optionally replaces the direct row[Key] lookup.
	Accessor func(row Record) any
}

// Value returns the raw cell value for row.
func (c Column) Value(row Record) any {
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return row[c.Key]
}

// Display returns the rendered cell text for row.
func (c Column) Display(row Record) string {
	v := c.Value(row)
	if c.Render != nil {
		return c.Render(v, row)
	}
	return Stringify(v)
}

// Labels returns the header labels in column order.
func Labels(columns []Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Label
	}
	return out
}

// findColumn returns the column with the given key.
func findColumn(columns []Column, key string) (Column, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
