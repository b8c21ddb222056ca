// Package timeutil normalizes calendar dates to India Standard Time, the
// canonical zone for invoice dates, numbering windows and payroll months.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DisplayLayout is used in exports and rendered documents.
const DisplayLayout = "02 Jan 2006"

// IST is India Standard Time. A fixed zone keeps the service independent of
// the host's tzdata; IST has no daylight saving.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// ParseDate parses a YYYY-MM-DD string as midnight IST.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToIST returns the calendar date of t in IST, truncated to midnight.
func ToIST(t time.Time) time.Time {
	in := t.In(IST)
	return time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, IST)
}

// Today returns the current IST calendar date.
func Today() time.Time {
	return ToIST(time.Now())
}

// MonthAbbr returns the uppercase three-letter month of t in IST, e.g. "DEC".
func MonthAbbr(t time.Time) string {
	return strings.ToUpper(t.In(IST).Month().String()[:3])
}

// SameMonth reports whether a and b fall in the same IST calendar month and year.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.In(IST).Date()
	by, bm, _ := b.In(IST).Date()
	return ay == by && am == bm
}

// MonthRange returns [first day, first day of next month) for year/month in IST.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, IST)
	return start, start.AddDate(0, 1, 0)
}

// FormatDate formats an optional date for display, "" when nil or zero.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(IST).Format(DisplayLayout)
}

// ValidMonth reports whether year/month are usable as a payroll or numbering period.
func ValidMonth(year, month int) bool {
	return year >= 2000 && year <= 9999 && month >= 1 && month <= 12
}
