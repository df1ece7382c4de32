package datatable

import "github.com/ledgerline/mfin/internal/pagination"

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No records found"

// Controls lists which toolbar affordances a renderer should draw.
type Controls struct {
	Search       bool
	FilterButton bool
	FilterSlot   string
	// FilterKey and FilterValue describe the active column filter.
	FilterKey   string
	FilterValue string
	Export      bool
	Add         bool
}

// View is a render-ready snapshot of a table.
type View struct {
	Title   string
	Loading bool
	Columns []Column
	// Rows are the records of the current page.
	Rows []Record
	// Cells holds the rendered text of Rows, one slice per row.
	Cells [][]string
	// Empty is set when the filtered set has no records; renderers show
	// EmptyMessage across all columns.
	Empty          bool
	Pagination     pagination.Info
	ShowPagination bool
	PageSizes      []int
	State          ViewState
	Controls       Controls
}

// View builds a snapshot of the current page. While loading, no pipeline
// work is done and only the loading flag and toolbar are populated.
func (t *Table) View() View {
	v := View{
		Title:     t.title,
		Loading:   t.loading,
		Columns:   t.columns,
		PageSizes: t.pageSizes,
		State:     t.state,
		Controls: Controls{
			Search:       t.searchable,
			FilterButton: t.filterable && t.filterSlot == "",
			FilterKey:    t.state.FilterKey,
			FilterValue:  t.state.FilterValue,
			Export:       t.exportable,
			Add:          t.addable,
		},
	}
	if t.filterable {
		v.Controls.FilterSlot = t.filterSlot
	}
	if t.loading {
		return v
	}

	res := t.Process()
	v.Rows = res.Page
	v.Cells = make([][]string, len(res.Page))
	for i, row := range res.Page {
		cells := make([]string, len(t.columns))
		for j, c := range t.columns {
			cells[j] = c.Display(row)
		}
		v.Cells[i] = cells
	}
	v.Empty = len(res.Filtered) == 0
	v.Pagination = res.Pagination
	v.ShowPagination = res.Pagination.Visible()
	return v
}
