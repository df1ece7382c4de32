package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the dd-mm-yyyy layout used on every back-office screen.
const DateLayout = "02-01-2006"

// FormatDate renders t as dd-mm-yyyy. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate accepts dd-mm-yyyy, yyyy-mm-dd and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want dd-mm-yyyy)", s)
}

// DaysPastDue returns the number of whole days from due to asOf, or 0 when
// due is not yet in the past.
func DaysPastDue(due, asOf time.Time) int {
	if !asOf.After(due) {
		return 0
	}
	return int(asOf.Sub(due).Hours() / 24)
}
