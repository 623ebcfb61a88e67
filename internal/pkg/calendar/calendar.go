package calendar

import (
	"errors"
	"fmt"
	"time"
)

// TimePeriod is the unit of time being framed by a TimeMode.
type TimePeriod string

const (
	TimePeriodDay    TimePeriod = "day"
	TimePeriodWeek   TimePeriod = "week"
	TimePeriodMonth  TimePeriod = "month"
	TimePeriodYear   TimePeriod = "year"
	TimePeriodCustom TimePeriod = "custom"
)

// TimeMode is the relative framing applied to a TimePeriod.
type TimeMode string

const (
	TimeModeLast    TimeMode = "last"
	TimeModeCurrent TimeMode = "current"
	TimeModeRolling TimeMode = "rolling"
	TimeModeCustom  TimeMode = "custom"
)

var (
	ErrUnknownTimePeriod = errors.New("unknown time period")
	ErrUnknownTimeMode   = errors.New("unknown time mode")
)

// ParseTimePeriod parses a time period string. Unknown values fail explicitly.
func ParseTimePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(s) {
	case TimePeriodDay, TimePeriodWeek, TimePeriodMonth, TimePeriodYear, TimePeriodCustom:
		return TimePeriod(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimePeriod, s)
}

// ParseTimeMode parses a time mode string. Unknown values fail explicitly.
func ParseTimeMode(s string) (TimeMode, error) {
	switch TimeMode(s) {
	case TimeModeLast, TimeModeCurrent, TimeModeRolling, TimeModeCustom:
		return TimeMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeMode, s)
}

// SetMinTimeOnDate normalizes an instant to 00:00:00.000 of its calendar day,
// preserving the instant's offset.
func SetMinTimeOnDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SetMaxTimeOnDate normalizes an instant to 23:59:59.999 of its calendar day,
// preserving the instant's offset.
func SetMaxTimeOnDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfWeek returns 00:00:00.000 of the Monday of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return SetMinTimeOnDate(t.AddDate(0, 0, -(weekday - 1)))
}

// WeekNumber returns the ISO-8601 week number of t (Monday start, first
// four-day week).
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ResolveRange converts an abstract period selector into a concrete
// [start, end] range. All arithmetic happens in reference's location, so a
// fixed UTC offset on the reference is preserved through the result. The
// current time is an explicit parameter; ResolveRange never reads it from
// ambient state.
//
// Mode "current" with period day or month ends the range at now rather than
// at the calendar end of the unit, and "current" week resolves to the most
// recently completed ISO week. Both quirks are load-bearing for callers that
// replay stored queries, so they are kept as-is.
func ResolveRange(reference, now time.Time, period TimePeriod, mode TimeMode) (time.Time, time.Time, error) {
	if period == TimePeriodCustom {
		return reference, SetMaxTimeOnDate(now), nil
	}

	switch mode {
	case TimeModeCurrent:
		return resolveCurrent(reference, now, period)
	case TimeModeLast:
		return resolveLast(reference, period)
	case TimeModeRolling:
		return resolveRolling(reference, now, period)
	case TimeModeCustom:
		return reference, SetMaxTimeOnDate(now), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimeMode, mode)
}

func resolveCurrent(reference, now time.Time, period TimePeriod) (time.Time, time.Time, error) {
	switch period {
	case TimePeriodDay:
		return SetMinTimeOnDate(reference), now, nil
	case TimePeriodWeek:
		start := StartOfWeek(reference).AddDate(0, 0, -7)
		return start, SetMaxTimeOnDate(start.AddDate(0, 0, 6)), nil
	case TimePeriodMonth:
		start := SetMinTimeOnDate(time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location()))
		return start, now, nil
	case TimePeriodYear:
		start := time.Date(reference.Year(), time.January, 1, 0, 0, 0, 0, reference.Location())
		return start, SetMaxTimeOnDate(start.AddDate(1, 0, -1)), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimePeriod, period)
}

func resolveLast(reference time.Time, period TimePeriod) (time.Time, time.Time, error) {
	switch period {
	case TimePeriodDay:
		yesterday := reference.AddDate(0, 0, -1)
		return SetMinTimeOnDate(yesterday), SetMaxTimeOnDate(yesterday), nil
	case TimePeriodWeek:
		start := StartOfWeek(reference).AddDate(0, 0, -7)
		return start, SetMaxTimeOnDate(start.AddDate(0, 0, 6)), nil
	case TimePeriodMonth:
		firstOfMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
		return firstOfMonth.AddDate(0, -1, 0), SetMaxTimeOnDate(firstOfMonth.AddDate(0, 0, -1)), nil
	case TimePeriodYear:
		start := time.Date(reference.Year()-1, time.January, 1, 0, 0, 0, 0, reference.Location())
		return start, SetMaxTimeOnDate(start.AddDate(1, 0, -1)), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimePeriod, period)
}

func resolveRolling(reference, now time.Time, period TimePeriod) (time.Time, time.Time, error) {
	switch period {
	case TimePeriodDay:
		return reference.AddDate(0, 0, -1), now, nil
	case TimePeriodWeek:
		return reference.AddDate(0, 0, -7), now, nil
	case TimePeriodMonth:
		return reference.AddDate(0, -1, 0), now, nil
	case TimePeriodYear:
		return reference.AddDate(-1, 0, 0), now, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimePeriod, period)
}
