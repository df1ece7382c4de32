package datatable

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ledgerline/mfin/internal/pagination"
)

// Filter keeps the records where at least one value, rendered as text,
// contains term case-insensitively. All record values are searched, not only
// the ones shown as columns. An empty term keeps everything.
func Filter(records []Record, term string) []Record {
	out := make([]Record, 0, len(records))
	if term == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterColumn keeps the records whose key value, rendered as text, equals
// value case-insensitively. An empty key keeps everything.
func FilterColumn(records []Record, key, value string) []Record {
	if key == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(Stringify(r.Get(key)), value) {
			out = append(out, r)
		}
	}
	return out
}

// ColumnValues returns the distinct non-empty text values of key in records,
// sorted.
func ColumnValues(records []Record, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v := Stringify(r.Get(key))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func matches(r Record, needle string) bool {
	for _, v := range r {
		if strings.Contains(strings.ToLower(Stringify(v)), needle) {
			return true
		}
	}
	return false
}

// Sort returns a copy of records ordered by field using the root locale.
// See SortLocale.
func Sort(records []Record, field string, dir Direction) []Record {
	return SortLocale(records, field, dir, language.Und)
}

// SortLocale returns a copy of records stably ordered by field.
//
// nil values are the minimum under the active direction: first when
// ascending, last when descending. Two strings are compared with the
// collation rules of tag; numbers, times and bools compare naturally; any
// other pairing compares equal and keeps its input order. An empty field
// returns the records in input order.
func SortLocale(records []Record, field string, dir Direction, tag language.Tag) []Record {
	out := slices.Clone(records)
	if out == nil {
		out = []Record{}
	}
	if field == "" {
		return out
	}

	coll := collate.New(tag)
	slices.SortStableFunc(out, func(a, b Record) int {
		return compareValues(a[field], b[field], dir, coll)
	})
	return out
}

func compareValues(a, b any, dir Direction, coll *collate.Collator) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if dir == Asc {
			return -1
		}
		return 1
	case b == nil:
		if dir == Asc {
			return 1
		}
		return -1
	}

	c := compareDefined(a, b, coll)
	if dir == Desc {
		return -c
	}
	return c
}

func compareDefined(a, b any, coll *collate.Collator) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return coll.CompareString(as, bs)
		}
		return 0
	}
	if c, ok := compareIntegers(a, b); ok {
		return c
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
		return 0
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
		return 0
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

// compareIntegers orders two integer values exactly, so int64 and uint64
// values beyond float64 precision keep their order. It reports false unless
// both values are integers.
func compareIntegers(a, b any) (int, bool) {
	ai, aSigned, ok := toInteger(a)
	if !ok {
		return 0, false
	}
	bi, bSigned, ok := toInteger(b)
	if !ok {
		return 0, false
	}
	switch {
	case aSigned && bSigned:
		return cmp.Compare(int64(ai), int64(bi)), true
	case !aSigned && !bSigned:
		return cmp.Compare(ai, bi), true
	case aSigned:
		if int64(ai) < 0 {
			return -1, true
		}
		return cmp.Compare(ai, bi), true
	default:
		if int64(bi) < 0 {
			return 1, true
		}
		return cmp.Compare(ai, bi), true
	}
}

// toInteger returns the bits of an integer value and whether it is signed.
func toInteger(v any) (uint64, bool, bool) {
	switch x := v.(type) {
	case int:
		return uint64(x), true, true
	case int8:
		return uint64(x), true, true
	case int16:
		return uint64(x), true, true
	case int32:
		return uint64(x), true, true
	case int64:
		return uint64(x), true, true
	case uint:
		return uint64(x), false, true
	case uint8:
		return uint64(x), false, true
	case uint16:
		return uint64(x), false, true
	case uint32:
		return uint64(x), false, true
	case uint64:
		return x, false, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return uint64(i), true, true
		}
	}
	return 0, false, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// Paginate returns the records of the given 1-based page. A page outside the
// range of records yields an empty slice.
func Paginate(records []Record, page, pageSize int) []Record {
	if pageSize <= 0 || page < 1 {
		return []Record{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []Record{}
	}
	end := min(start+pageSize, len(records))
	return records[start:end:end]
}

// Result is the output of one pass of the search/sort/paginate pipeline.
type Result struct {
	// Filtered holds the searched and sorted records, before pagination.
	Filtered []Record
	// Page holds the records of the current page.
	Page []Record
	// Pagination describes the position of Page within Filtered.
	Pagination pagination.Info
}

// Process runs filter, sort and paginate for the given state. It never
// modifies records and returns identical output for identical input.
func Process(records []Record, state ViewState) Result {
	return ProcessLocale(records, state, language.Und)
}

// ProcessLocale is Process with an explicit collation locale.
func ProcessLocale(records []Record, state ViewState, tag language.Tag) Result {
	filtered := Filter(FilterColumn(records, state.FilterKey, state.FilterValue), state.Search)
	sorted := SortLocale(filtered, state.SortField, state.SortDir, tag)
	return Result{
		Filtered:   sorted,
		Page:       Paginate(sorted, state.Page, state.PageSize),
		Pagination: pagination.New(state.Page, state.PageSize, len(sorted)),
	}
}
