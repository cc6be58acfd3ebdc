// Package dateutil provides day-granularity calendar math for due dates.
package dateutil

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// ISODate is the calendar date layout used everywhere.
const ISODate = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict yyyy-mm-dd calendar date in the local zone.
// Anything that is not exactly 4-2-2 digits, or not a real calendar day,
// is an error.
func ParseDate(s string) (time.Time, error) {
	if !isoDateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q: want yyyy-mm-dd", s)
	}
	t, err := time.ParseInLocation(ISODate, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the signed whole-day count from today to due.
// Positive means future, negative past, zero today. Both sides are
// truncated to midnight first and the difference is rounded to the nearest
// day, so a DST transition inside the span cannot skew the count.
func DaysUntil(due, today time.Time) int {
	diff := Midnight(due).Sub(Midnight(today))
	return int(math.Round(diff.Hours() / 24))
}

// DaysUntilDate is DaysUntil for an ISO date string. The second return is
// false when the string does not parse.
func DaysUntilDate(due string, today time.Time) (int, bool) {
	t, err := ParseDate(due)
	if err != nil {
		return 0, false
	}
	return DaysUntil(t, today), true
}

// NextOccurrence advances due by one recurrence step.
//
// Rollover policy: the day of month is clamped to the last valid day of the
// target month. Jan 31 + monthly = Feb 28 (29 in leap years); Feb 29 + yearly
// lands on Feb 28. RecurNone returns due unchanged.
func NextOccurrence(due time.Time, rec model.Recurrence) time.Time {
	switch rec {
	case model.RecurMonthly:
		y, m, d := due.Date()
		return clampedDate(y, m+1, d, due.Location())
	case model.RecurYearly:
		y, m, d := due.Date()
		return clampedDate(y+1, m, d, due.Location())
	default:
		return due
	}
}

// NextOccurrenceDate is NextOccurrence over ISO date strings.
func NextOccurrenceDate(due string, rec model.Recurrence) (string, error) {
	t, err := ParseDate(due)
	if err != nil {
		return "", err
	}
	return FormatDate(NextOccurrence(t, rec)), nil
}

func clampedDate(y int, m time.Month, d int, loc *time.Location) time.Time {
	if last := lastDayOfMonth(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// lastDayOfMonth handles out-of-range months via time.Date normalization,
// so m may be 13 (January of the next year).
func lastDayOfMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
