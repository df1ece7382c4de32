// Package datatable is the engine behind every list screen: it filters a set
// of schema-less records by a search term, orders them by a column, cuts out
// one page and exports the filtered set as comma-separated text.
//
// Everything here is pure data manipulation. Rendering lives in
// internal/ui/table; page button arithmetic lives in internal/pagination.
package datatable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Record is one row of domain data. Records are not required to share keys.
type Record map[string]any

// Get returns the value stored under key, or nil when the key is absent.
func (r Record) Get(key string) any {
	return r[key]
}

// Stringify converts a value to the text used for searching, CSV cells and
// default rendering. nil becomes the empty string; whole floats drop the
// fractional part; dates without a time of day render as yyyy-mm-dd.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
