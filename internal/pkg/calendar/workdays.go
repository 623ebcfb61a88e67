package calendar

import (
	"context"
	"time"
)

// HolidayProvider supplies public holiday dates. Implementations may call out
// to an external calendar service; the engine only needs the dates. A nil or
// empty result means zero holidays, never an error condition.
type HolidayProvider interface {
	HolidaysInRange(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// IsWorkingDay reports whether t is neither a weekend day nor one of the
// supplied holiday dates.
func IsWorkingDay(t time.Time, holidays []time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	for _, h := range holidays {
		if sameDate(t, h) {
			return false
		}
	}
	return true
}

// CountNonWorkingDays counts the weekend days in [start, end] plus the
// supplied holiday dates falling inside the range, deduplicated by calendar
// date. A holiday on a weekend counts once.
func CountNonWorkingDays(start, end time.Time, holidays []time.Time) int {
	count := 0
	seen := make(map[string]bool, len(holidays))

	for d := SetMinTimeOnDate(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			count++
			seen[dateKey(d)] = true
		}
	}

	for _, h := range holidays {
		if h.Before(SetMinTimeOnDate(start)) || h.After(SetMaxTimeOnDate(end)) {
			continue
		}
		if seen[dateKey(h)] {
			continue
		}
		seen[dateKey(h)] = true
		count++
	}

	return count
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
