// Package dateutil keeps all streak arithmetic on calendar-date granularity.
// Every date that crosses a service boundary goes through Day first so that
// time-of-day and timezone offsets can never flip a comparison.
package dateutil

import "time"

const Layout = "2006-01-02"

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in UTC.
func Today() time.Time {
	return Day(time.Now())
}

// DaysBetween returns the whole-calendar-day difference to - from.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// LastNDays returns the n calendar days ending today, oldest first.
func LastNDays(n int, today time.Time) []time.Time {
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, Day(today).AddDate(0, 0, -i))
	}
	return days
}
