/*
calendar.go - Business-day duration calculation

PURPOSE:
  Converts a date range plus a half-day flag into a leave-day count.
  Saturdays and Sundays never count. A half-day request is always exactly
  0.5 days regardless of the dates; the validator separately enforces that
  a half-day request spans a single calendar date.

EDGE CASES:
  - A range that falls entirely on a weekend yields 0. Such requests are
    still accepted upstream and debit nothing (behavior preserved from the
    system this engine replaces; the service tests flag it).
  - A reversed range (end before start) yields 0 here; the validator
    rejects it before the calculator runs.

SEE ALSO:
  - validate.go: Rejects reversed ranges and half-day/date mismatches
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// HalfDayCount is the fixed duration of a half-day request.
var HalfDayCount = decimal.NewFromFloat(0.5)

// Duration returns the leave-day count for the inclusive range
// [start, end]. Pure and deterministic.
func Duration(start, end time.Time, halfDay bool) decimal.Decimal {
	if halfDay {
		return HalfDayCount
	}

	days := 0
	for d := dayOf(start); !d.After(dayOf(end)); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d) {
			days++
		}
	}
	return decimal.NewFromInt(int64(days))
}

// isBusinessDay reports whether d is neither Saturday nor Sunday.
func isBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// dayOf truncates t to its calendar date in UTC.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameDay reports whether a and b denote the same calendar date.
func sameDay(a, b time.Time) bool {
	return dayOf(a).Equal(dayOf(b))
}
