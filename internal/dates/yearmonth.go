package dates

import (
	"fmt"
	"time"
)

// YearMonthLayout is the wire format for year-months.
const YearMonthLayout = "2006-01"

// YearMonth identifies one calendar month. The zero value is invalid;
// construct with NewYearMonth or ParseYearMonth.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth from a year and a 1-based month.
func NewYearMonth(year, month int) YearMonth {
	return YearMonth{Year: year, Month: time.Month(month)}
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.ParseInLocation(YearMonthLayout, s, time.UTC)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Ordinal returns a total ordering key: months since year 0 January.
func (ym YearMonth) Ordinal() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Compare returns -1, 0 or 1 ordering ym against other.
func (ym YearMonth) Compare(other YearMonth) int {
	switch a, b := ym.Ordinal(), other.Ordinal(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ym YearMonth) Before(other YearMonth) bool { return ym.Ordinal() < other.Ordinal() }

func (ym YearMonth) After(other YearMonth) bool { return ym.Ordinal() > other.Ordinal() }

// AddMonths returns the month n steps away, n may be negative.
func (ym YearMonth) AddMonths(n int) YearMonth {
	o := ym.Ordinal() + n
	return YearMonth{Year: o / 12, Month: time.Month(o%12 + 1)}
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// At returns the given day of the month at midnight UTC.
func (ym YearMonth) At(day int) time.Time {
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
}

// Start returns the first day of the month.
func (ym YearMonth) Start() time.Time {
	return ym.At(1)
}

// End returns the last day of the month.
func (ym YearMonth) End() time.Time {
	return ym.Next().Start().AddDate(0, 0, -1)
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return ym.End().Day()
}

// MonthsThrough lists every month from ym through last inclusive, in
// order. Returns nil when last precedes ym.
func (ym YearMonth) MonthsThrough(last YearMonth) []YearMonth {
	if last.Before(ym) {
		return nil
	}
	months := make([]YearMonth, 0, last.Ordinal()-ym.Ordinal()+1)
	for m := ym; !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}
