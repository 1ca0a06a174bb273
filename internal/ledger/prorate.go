// Package ledger implements the aggregation core of the bookkeeping
// engine: annual-amount proration, the category tree index, sign
// normalization, and the combined itemized-plus-prorated rollup. All
// functions here are pure over already-loaded rows; report builders may
// run them concurrently without locks.
package ledger

import (
	"time"

	"github.com/Jlford67/landlord-sub001/internal/dates"
)

// Prorate returns the day-weighted share of an annual amount that falls
// inside [rangeStart, rangeEnd], both ends inclusive at day granularity.
// A range covering the whole calendar year returns the amount unchanged,
// a range not touching the year returns exactly zero. The result is
// rounded half-up to the cent (away from zero for negative amounts);
// this is the engine's single rounding point.
func Prorate(amount int64, year int, rangeStart, rangeEnd time.Time) int64 {
	overlap := dates.OverlapDays(rangeStart, rangeEnd, dates.YearStart(year), dates.YearEnd(year))
	if overlap <= 0 {
		return 0
	}
	days := dates.DaysInYear(year)
	if overlap >= days {
		return amount
	}
	return roundHalfUp(amount*int64(overlap), int64(days))
}

// roundHalfUp divides num by den rounding halves away from zero.
// den must be positive.
func roundHalfUp(num, den int64) int64 {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}
	return -((-2*num + den) / (2 * den))
}
