package screens

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/ui/styles"
	"github.com/ledgerline/mfin/internal/util"
)

// INR formats an amount in rupees with Indian digit grouping
// (₹12,34,567.50). Values that are not numbers are returned as text.
func INR(v any) string {
	f, ok := number(v)
	if !ok {
		return datatable.Stringify(v)
	}

	neg := f < 0
	if neg {
		f = -f
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	out := "₹" + groupIndian(whole) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts separators after the last three digits and then every
// two digits (lakh/crore grouping).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

// Date renders a time.Time or date string as dd-mm-yyyy.
func Date(v any) string {
	switch x := v.(type) {
	case time.Time:
		return util.FormatDate(x)
	case string:
		if t, err := util.ParseDate(x); err == nil {
			return util.FormatDate(t)
		}
		return x
	default:
		return datatable.Stringify(v)
	}
}

// Percent renders a rate such as 24.5 as "24.50%".
func Percent(v any) string {
	f, ok := number(v)
	if !ok {
		return datatable.Stringify(v)
	}
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}

// MaskAccount keeps the last four characters of an account number.
func MaskAccount(v any) string {
	s := datatable.Stringify(v)
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("X", len(s)-4) + s[len(s)-4:]
}

func renderINR(v any, _ datatable.Record) string     { return INR(v) }
func renderDate(v any, _ datatable.Record) string    { return Date(v) }
func renderPercent(v any, _ datatable.Record) string { return Percent(v) }
func renderAccount(v any, _ datatable.Record) string { return MaskAccount(v) }
func renderStatus(v any, _ datatable.Record) string {
	return styles.Status(datatable.Stringify(v))
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
