package datatable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/ledgerline/mfin/internal/pagination"
)

var (
	ErrExportDisabled = errors.New("export is disabled for this table")
	ErrRowOutOfRange  = errors.New("row index outside the current page")
)

// Table owns the view state of one list screen and runs the pipeline over
// its records. A Table is not safe for concurrent use.
type Table struct {
	title     string
	columns   []Column
	records   []Record
	state     ViewState
	loading   bool
	pageSizes []int
	locale    language.Tag

	searchable bool
	filterable bool
	exportable bool
	addable    bool
	filterSlot string

	onAdd            func()
	onRowClick       func(Record)
	onPageChange     func(int)
	onPageSizeChange func(int)

	log *zap.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithTitle sets the title used in headers and export filenames.
func WithTitle(title string) Option {
	return func(t *Table) { t.title = title }
}

func WithSearchable(v bool) Option { return func(t *Table) { t.searchable = v } }
func WithFilterable(v bool) Option { return func(t *Table) { t.filterable = v } }
func WithExportable(v bool) Option { return func(t *Table) { t.exportable = v } }
func WithAddable(v bool) Option    { return func(t *Table) { t.addable = v } }

// WithFilterSlot names the column an externally supplied filter control
// works on. When the table is filterable, the slot replaces the built-in
// filter button and column filters are limited to that column.
func WithFilterSlot(name string) Option {
	return func(t *Table) { t.filterSlot = name }
}

// WithPageSize sets the initial page size.
func WithPageSize(size int) Option {
	return func(t *Table) { t.state = t.state.ApplyPageSize(size) }
}

// WithPageSizes overrides the options offered by the page size selector.
func WithPageSizes(sizes []int) Option {
	return func(t *Table) {
		if len(sizes) > 0 {
			t.pageSizes = slices.Clone(sizes)
		}
	}
}

// WithLocale sets the collation locale used for string sorting.
func WithLocale(tag language.Tag) Option {
	return func(t *Table) { t.locale = tag }
}

func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

func WithOnAdd(fn func()) Option               { return func(t *Table) { t.onAdd = fn } }
func WithOnRowClick(fn func(Record)) Option    { return func(t *Table) { t.onRowClick = fn } }
func WithOnPageChange(fn func(int)) Option     { return func(t *Table) { t.onPageChange = fn } }
func WithOnPageSizeChange(fn func(int)) Option { return func(t *Table) { t.onPageSizeChange = fn } }

// New creates a table over the given columns with no records.
func New(columns []Column, opts ...Option) *Table {
	t := &Table{
		columns:    slices.Clone(columns),
		state:      NewViewState(),
		pageSizes:  slices.Clone(pagination.DefaultPageSizes),
		locale:     language.Und,
		searchable: true,
		filterable: true,
		exportable: true,
		addable:    true,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(zap.String("table", t.title))
	return t
}

// Title returns the table title.
func (t *Table) Title() string { return t.title }

// Columns returns the column descriptors.
func (t *Table) Columns() []Column { return t.columns }

// Records returns the source records as supplied to SetData.
func (t *Table) Records() []Record { return t.records }

// State returns the current view state.
func (t *Table) State() ViewState { return t.state }

// PageSizes returns the page size options.
func (t *Table) PageSizes() []int { return t.pageSizes }

// Loading reports whether the table is waiting for records.
func (t *Table) Loading() bool { return t.loading }

// SetData replaces the source records and returns to the first page.
// The slice is kept by reference and never modified.
func (t *Table) SetData(records []Record) {
	t.records = records
	t.state = t.state.ApplyDataChange()
	t.log.Debug("data replaced", zap.Int("records", len(records)))
}

// SetLoading toggles the loading state.
func (t *Table) SetLoading(v bool) {
	t.loading = v
}

// Search sets the search term. It does nothing on a non-searchable table.
func (t *Table) Search(term string) {
	if !t.searchable {
		return
	}
	t.state = t.state.ApplySearch(term)
	t.log.Debug("search", zap.String("term", term))
}

// FilterBy keeps only records whose key value equals value, case-insensitively.
// An empty value clears the filter. It reports false, leaving the state
// alone, on a non-filterable table or when key is not the filter slot's
// column.
func (t *Table) FilterBy(key, value string) bool {
	if !t.filterable || key == "" {
		return false
	}
	if t.filterSlot != "" && key != t.filterSlot {
		return false
	}
	t.state = t.state.ApplyColumnFilter(key, value)
	t.log.Debug("filter", zap.String("key", key), zap.String("value", value))
	return true
}

// FilterValues returns the distinct values key takes across all records.
func (t *Table) FilterValues(key string) []string {
	return ColumnValues(t.records, key)
}

// FilterSlot returns the column of the external filter control, if any.
func (t *Table) FilterSlot() string { return t.filterSlot }

// SortBy toggles sorting on the column with the given key. Unknown and
// non-sortable columns are ignored. It reports whether the sort changed.
func (t *Table) SortBy(key string) bool {
	col, ok := findColumn(t.columns, key)
	if !ok || !col.Sortable {
		return false
	}
	t.state = t.state.ApplySort(key)
	t.log.Debug("sort", zap.String("field", key), zap.Stringer("dir", t.state.SortDir))
	return true
}

// GoToPage moves to page, clamped into the range of the filtered set, and
// notifies the page change callback. Staying on the current page is a no-op.
func (t *Table) GoToPage(page int) {
	total := pagination.TotalPages(len(t.filtered()), t.state.PageSize)
	page = pagination.Clamp(page, total)
	if page == t.state.Page {
		return
	}
	t.state = t.state.ApplyPage(page)
	t.log.Debug("page", zap.Int("page", page))
	if t.onPageChange != nil {
		t.onPageChange(page)
	}
}

// PrevPage moves one page back.
func (t *Table) PrevPage() {
	t.GoToPage(t.state.Page - 1)
}

// NextPage moves one page forward.
func (t *Table) NextPage() {
	t.GoToPage(t.state.Page + 1)
}

// SetPageSize changes the page size, returns to the first page and notifies
// the page size callback. The current size is a no-op.
func (t *Table) SetPageSize(size int) {
	if size <= 0 || size == t.state.PageSize {
		return
	}
	t.state = t.state.ApplyPageSize(size)
	t.log.Debug("page size", zap.Int("size", size))
	if t.onPageSizeChange != nil {
		t.onPageSizeChange(size)
	}
}

// Add triggers the add action. It reports whether a handler ran.
func (t *Table) Add() bool {
	if !t.addable || t.onAdd == nil {
		return false
	}
	t.onAdd()
	return true
}

// ClickRow hands the record at index i of the current page to the row click
// callback.
func (t *Table) ClickRow(i int) (Record, error) {
	page := t.Process().Page
	if i < 0 || i >= len(page) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	row := page[i]
	if t.onRowClick != nil {
		t.onRowClick(row)
	}
	return row, nil
}

// Process runs the pipeline for the current state.
func (t *Table) Process() Result {
	return ProcessLocale(t.records, t.state, t.locale)
}

func (t *Table) filtered() []Record {
	return Filter(FilterColumn(t.records, t.state.FilterKey, t.state.FilterValue), t.state.Search)
}

// Export writes the filtered, sorted set (all pages) as CSV to w.
func (t *Table) Export(w io.Writer) error {
	if !t.exportable {
		return ErrExportDisabled
	}
	return WriteCSV(w, t.columns, t.Process().Filtered)
}

// ExportTo writes the CSV export into dir and returns the file path.
func (t *Table) ExportTo(dir string, now time.Time) (string, error) {
	if !t.exportable {
		return "", ErrExportDisabled
	}

	path := filepath.Join(dir, ExportFilename(t.title, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := t.Export(f); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	t.log.Info("exported", zap.String("path", path))
	return path, nil
}
