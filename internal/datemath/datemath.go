// Package datemath provides the pure calendar arithmetic the planner is
// built on. All functions are total: any finite date and any integer n
// (positive, negative, or zero) produce a result, never an error.
package datemath

import (
	"fmt"
	"time"
)

// AddMonths returns d shifted by n calendar months, keeping the day of the
// month when it exists in the target month and clamping to the target
// month's last day when it does not (Jan 31 + 1 month = Feb 28/29).
//
// Note this is not time.AddDate, which normalizes overflow forward into the
// next month (Jan 31 + 1 month = Mar 2/3). Phase boundaries must land inside
// the intended month, so the overflow direction here is a clamp, not a roll.
func AddMonths(d time.Time, n int) time.Time {
	year, month, day := d.Date()

	// Work in zero-based months so the division rounds correctly for
	// negative offsets.
	m := int(month) - 1 + n
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	month = time.Month(m + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}

	h, min, sec := d.Clock()
	return time.Date(year, month, day, h, min, sec, d.Nanosecond(), d.Location())
}

// AddWeeks returns d shifted by 7n days.
func AddWeeks(d time.Time, n int) time.Time {
	return AddDays(d, 7*n)
}

// AddDays returns d shifted by n days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// FormatShort renders d as DD.MM.YY with zero padding. Display only; it is
// never parsed back or used for comparisons.
func FormatShort(d time.Time) string {
	return fmt.Sprintf("%02d.%02d.%02d", d.Day(), int(d.Month()), d.Year()%100)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
