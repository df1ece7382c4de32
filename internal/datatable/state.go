package datatable

// Direction is the sort order of the active sort column.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// DefaultPageSize is the page size of a freshly mounted table.
const DefaultPageSize = 10

// ViewState is the search/sort/page state of a single table. It is a value:
// every transition returns a new state and leaves the receiver untouched.
type ViewState struct {
	Search    string
	SortField string
	SortDir   Direction
	Page      int
	PageSize  int
	// FilterKey and FilterValue narrow the records to those whose FilterKey
	// value equals FilterValue, before the search runs.
	FilterKey   string
	FilterValue string
}

// NewViewState returns the initial state.
func NewViewState() ViewState {
	return ViewState{Page: 1, PageSize: DefaultPageSize, SortDir: Asc}
}

// ApplySearch sets the search term and returns to the first page.
func (s ViewState) ApplySearch(term string) ViewState {
	s.Search = term
	s.Page = 1
	return s
}

// ApplyColumnFilter keeps only records whose key value equals value and
// returns to the first page. An empty value clears the filter.
func (s ViewState) ApplyColumnFilter(key, value string) ViewState {
	if value == "" {
		key = ""
	}
	s.FilterKey = key
	s.FilterValue = value
	s.Page = 1
	return s
}

// ApplySort activates sorting on field. Re-applying the active field flips
// the direction; any other field starts ascending.
func (s ViewState) ApplySort(field string) ViewState {
	if s.SortField == field {
		if s.SortDir == Asc {
			s.SortDir = Desc
		} else {
			s.SortDir = Asc
		}
		return s
	}
	s.SortField = field
	s.SortDir = Asc
	return s
}

// ApplyPage moves to page. The page is not clamped against the filtered set;
// callers go through pagination.Clamp when the target comes from user input.
func (s ViewState) ApplyPage(page int) ViewState {
	s.Page = page
	return s
}

// ApplyPageSize changes the page size and returns to the first page.
// Non-positive sizes and the current size are ignored.
func (s ViewState) ApplyPageSize(size int) ViewState {
	if size <= 0 || size == s.PageSize {
		return s
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// ApplyDataChange records that the source records were replaced.
func (s ViewState) ApplyDataChange() ViewState {
	s.Page = 1
	return s
}
