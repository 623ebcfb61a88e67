package overview

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/overview"
	"github.com/timelog-hq/timelog-backend-go/internal/domain/registration"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
)

// periodUnit orders the period dimensions from finest to coarsest. The order
// drives then-by narrowing.
type periodUnit int

const (
	unitDay periodUnit = iota
	unitWeek
	unitMonth
	unitYear
)

func groupByUnit(gb overview.GroupBy) (periodUnit, bool) {
	switch gb {
	case overview.GroupByDay:
		return unitDay, true
	case overview.GroupByWeek:
		return unitWeek, true
	case overview.GroupByMonth:
		return unitMonth, true
	case overview.GroupByYear:
		return unitYear, true
	}
	return 0, false
}

func thenByUnit(tb overview.ThenBy) (periodUnit, bool) {
	switch tb {
	case overview.ThenByDay:
		return unitDay, true
	case overview.ThenByWeek:
		return unitWeek, true
	case overview.ThenByMonth:
		return unitMonth, true
	case overview.ThenByYear:
		return unitYear, true
	}
	return 0, false
}

func unitToThenBy(u periodUnit) overview.ThenBy {
	switch u {
	case unitDay:
		return overview.ThenByDay
	case unitWeek:
		return overview.ThenByWeek
	case unitMonth:
		return overview.ThenByMonth
	}
	return overview.ThenByYear
}

// isGroupByValid reports whether grouping by gb produces more than one
// possible bucket over [start, end]. Day and client grouping always do. The
// week check compares week number, year and month together so that a week
// crossing a month boundary stays valid despite an identical week number.
// Year grouping additionally accepts an exact full-calendar-year range, the
// result of resolving a year selector.
func isGroupByValid(gb overview.GroupBy, start, end time.Time) bool {
	switch gb {
	case overview.GroupByDay, overview.GroupByClient:
		return true
	case overview.GroupByWeek:
		return calendar.WeekNumber(start) != calendar.WeekNumber(end) ||
			start.Year() != end.Year() ||
			start.Month() != end.Month()
	case overview.GroupByMonth:
		return start.Month() != end.Month() || start.Year() != end.Year()
	case overview.GroupByYear:
		return start.Year() != end.Year() || isFullCalendarYear(start, end)
	}
	return false
}

func isFullCalendarYear(start, end time.Time) bool {
	return start.Month() == time.January && start.Day() == 1 &&
		end.Month() == time.December && end.Day() == 31
}

func validateGroupBy(gb overview.GroupBy, start, end time.Time) error {
	if isGroupByValid(gb, start, end) {
		return nil
	}
	return fmt.Errorf("%w: grouping by %s over %s - %s",
		overview.ErrGroupByInvalidForRange, gb,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// narrowThenBy prevents a second-level period coarser than or equal to the
// top-level one: such a then-by narrows to one step finer than the group-by
// (day stays day). Client and none pass through, as does any then-by under a
// client group-by.
func narrowThenBy(tb overview.ThenBy, gb overview.GroupBy) overview.ThenBy {
	tu, tok := thenByUnit(tb)
	gu, gok := groupByUnit(gb)
	if !tok || !gok {
		return tb
	}
	if tu >= gu {
		if gu == unitDay {
			return overview.ThenByDay
		}
		return unitToThenBy(gu - 1)
	}
	return tb
}

// clientContext carries the client display names and the caller's accessible
// client set, both resolved up front so that grouping stays pure.
type clientContext struct {
	names   map[string]string
	allowed map[string]bool
}

func (c clientContext) displayName(id *string) string {
	if id == nil {
		return "No Client"
	}
	if name, ok := c.names[*id]; ok {
		return name
	}
	return "Unknown Client"
}

func (c clientContext) includes(reg registration.Registration) bool {
	return reg.ClientID == nil || c.allowed[*reg.ClientID]
}

// rawBucket is a bucket before totals and sub-buckets are computed.
type rawBucket struct {
	key     int64
	name    string
	members []registration.Registration
}

// periodKey maps a registration start to its bucket: a sortable ordinal and
// the display name. Day ordinals are calendar dates in the instant's own
// offset, so no normalization to a common zone happens.
func periodKey(t time.Time, unit periodUnit, locale calendar.Locale) (int64, string) {
	switch unit {
	case unitDay:
		return int64(t.Year()*10000 + int(t.Month())*100 + t.Day()), t.Format("02/01/2006")
	case unitWeek:
		isoYear, week := t.ISOWeek()
		return int64(isoYear*100 + week), fmt.Sprintf("Week %d, %d", week, isoYear)
	case unitMonth:
		return int64(t.Year()*100 + int(t.Month())), locale.MonthName(t.Month()) + " " + strconv.Itoa(t.Year())
	}
	return int64(t.Year()), strconv.Itoa(t.Year())
}

// periodBuckets groups registrations by a period unit, ascending by period.
func periodBuckets(regs []registration.Registration, unit periodUnit, locale calendar.Locale) []rawBucket {
	var buckets []rawBucket
	index := make(map[int64]int)

	for _, reg := range regs {
		key, name := periodKey(reg.Start, unit, locale)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, rawBucket{key: key, name: name})
		}
		buckets[i].members = append(buckets[i].members, reg)
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })
	return buckets
}

// clientBuckets groups registrations by client in first-occurrence order of
// the (chronologically sorted) input.
func clientBuckets(regs []registration.Registration, clients clientContext) []rawBucket {
	var buckets []rawBucket
	index := make(map[string]int)

	for _, reg := range regs {
		id := ""
		if reg.ClientID != nil {
			id = *reg.ClientID
		}
		i, ok := index[id]
		if !ok {
			i = len(buckets)
			index[id] = i
			buckets = append(buckets, rawBucket{name: clients.displayName(reg.ClientID)})
		}
		buckets[i].members = append(buckets[i].members, reg)
	}
	return buckets
}

func sumMinutes(regs []registration.Registration) int {
	total := 0
	for _, reg := range regs {
		total += reg.Minutes()
	}
	return total
}

// thenByBuckets computes the second-level breakdown of one top-level bucket.
// An unrecognized then-by yields no sub-buckets rather than an error.
func thenByBuckets(members []registration.Registration, tb overview.ThenBy, locale calendar.Locale, clients clientContext) []overview.ThenByBucket {
	var raw []rawBucket
	if unit, ok := thenByUnit(tb); ok {
		raw = periodBuckets(members, unit, locale)
	} else if tb == overview.ThenByClient {
		raw = clientBuckets(members, clients)
	}

	sub := make([]overview.ThenByBucket, 0, len(raw))
	for _, b := range raw {
		sub = append(sub, overview.ThenByBucket{Name: b.name, Total: sumMinutes(b.members)})
	}
	return sub
}

// groupRegistrations partitions effective registrations into ordered
// top-level buckets with totals and second-level breakdowns. Buckets come
// out ascending; descending order is the caller reversing this construction
// order, never a re-sort by value.
func groupRegistrations(regs []registration.Registration, gb overview.GroupBy, tb overview.ThenBy, start, end time.Time, showEmptyUnits bool, locale calendar.Locale, clients clientContext) []overview.GroupByBucket {
	sorted := make([]registration.Registration, len(regs))
	copy(sorted, regs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].CreationTime.Before(sorted[j].CreationTime)
	})

	var raw []rawBucket
	if unit, ok := groupByUnit(gb); ok {
		raw = periodBuckets(sorted, unit, locale)
		if showEmptyUnits && gb == overview.GroupByDay {
			raw = fillEmptyDays(raw, start, end, locale)
		}
	} else {
		raw = clientBuckets(sorted, clients)
	}

	tb = narrowThenBy(tb, gb)

	buckets := make([]overview.GroupByBucket, 0, len(raw))
	for _, b := range raw {
		buckets = append(buckets, overview.GroupByBucket{
			Name:       b.name,
			Total:      sumMinutes(b.members),
			SubBuckets: thenByBuckets(b.members, tb, locale, clients),
		})
	}
	return buckets
}

// fillEmptyDays synthesizes zero-total buckets for every calendar date in
// [start, end] missing from the grouped result, then restores ascending date
// order across real and synthetic buckets alike.
func fillEmptyDays(buckets []rawBucket, start, end time.Time, locale calendar.Locale) []rawBucket {
	present := make(map[int64]bool, len(buckets))
	for _, b := range buckets {
		present[b.key] = true
	}

	for d := calendar.SetMinTimeOnDate(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		key, name := periodKey(d, unitDay, locale)
		if present[key] {
			continue
		}
		present[key] = true
		buckets = append(buckets, rawBucket{key: key, name: name})
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })
	return buckets
}

// reverseBuckets flips the top-level bucket order and every sub-bucket list
// in place.
func reverseBuckets(buckets []overview.GroupByBucket) {
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	for i := range buckets {
		sub := buckets[i].SubBuckets
		for a, b := 0, len(sub)-1; a < b; a, b = a+1, b-1 {
			sub[a], sub[b] = sub[b], sub[a]
		}
	}
}
