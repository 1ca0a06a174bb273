// Package dates provides the calendar primitives the ledger engine
// computes with: day-granular UTC dates and "YYYY-MM" year-months.
package dates

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for day-granular dates.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC. All ledger dates are stored at day
// granularity so range comparisons never depend on time of day or zone.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string into a day-granular UTC time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// YearStart returns January 1 of year at midnight UTC.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31 of year at midnight UTC.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// OverlapDays counts the days shared by two inclusive day ranges.
// Returns 0 when the ranges do not touch.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := Day(aStart)
	if b := Day(bStart); b.After(start) {
		start = b
	}
	end := Day(aEnd)
	if b := Day(bEnd); b.Before(end) {
		end = b
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
